package probe

import (
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single network attempt when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Result is the outcome of the most recent ping.
//
// Fields:
//   - Success: the target answered within the timeout.
//   - Duration: elapsed time, only meaningful when Success is true.
//   - Err: why the ping failed; nil on success.
//   - Warning: non-fatal anomaly noticed during a successful ping, if any.
type Result struct {
	Success  bool
	Duration time.Duration
	Err      error
	Warning  string
}

// Pinger is implemented by every probe strategy (HTTP, TCP, ICMP).
type Pinger interface {
	// Ping performs one bounded check and reports whether the target is alive.
	Ping() bool
	// Alive is Ping under another name; it performs a fresh check.
	Alive() bool
	// PingEcho is Ping under another name; it performs a fresh check.
	PingEcho() bool

	Duration() (float64, bool)
	Exception() error
	Warning() string
	Result() Result
}

// Probe holds the configuration and last-call state shared by all strategies.
// It is embedded by the concrete probes and is not useful on its own.
type Probe struct {
	Host    string
	Port    int
	Timeout time.Duration

	// Logger receives per-call debug events. nil disables logging.
	Logger *zap.Logger

	last Result
}

// Duration returns the elapsed seconds of the last successful ping.
// The second value is false when the last ping failed or none ran yet.
func (p *Probe) Duration() (float64, bool) {
	if !p.last.Success {
		return 0, false
	}
	return p.last.Duration.Seconds(), true
}

// Exception returns the failure recorded by the last ping, or nil.
func (p *Probe) Exception() error { return p.last.Err }

// Warning returns the last non-fatal anomaly, or "".
func (p *Probe) Warning() string { return p.last.Warning }

// Result returns a copy of the last ping outcome.
func (p *Probe) Result() Result { return p.last }

func (p *Probe) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

func (p *Probe) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *Probe) reset() { p.last = Result{} }

func (p *Probe) succeed(strategy string, d time.Duration) bool {
	if d < 0 {
		d = 0
	}
	p.last.Success = true
	p.last.Duration = d
	p.last.Err = nil
	p.logger().Debug("ping_ok",
		zap.String("strategy", strategy),
		zap.String("host", p.Host),
		zap.Float64("duration_s", d.Seconds()),
		zap.String("warning", p.last.Warning),
	)
	return true
}

func (p *Probe) fail(strategy string, err error) bool {
	p.last = Result{Err: err}
	p.logger().Debug("ping_failed",
		zap.String("strategy", strategy),
		zap.String("host", p.Host),
		zap.Error(err),
	)
	return false
}
