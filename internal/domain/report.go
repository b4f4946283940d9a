package domain

import (
	"time"

	"github.com/hamed0406/netping/internal/probe"
)

// Strategy names a probe transport.
type Strategy string

const (
	StrategyHTTP Strategy = "http"
	StrategyTCP  Strategy = "tcp"
	StrategyICMP Strategy = "icmp"
)

// Report is the printable record of one ping call.
type Report struct {
	Strategy   Strategy  `json:"strategy"`
	Target     string    `json:"target"`
	Port       int       `json:"port,omitempty"`
	Alive      bool      `json:"alive"`
	DurationMS *float64  `json:"duration_ms,omitempty"` // nil when the ping failed
	StatusCode int       `json:"status_code,omitempty"`
	Exception  string    `json:"exception,omitempty"`
	Warning    string    `json:"warning,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

// NewReport builds a Report from the last result of a probe.
func NewReport(s Strategy, target string, port int, r probe.Result) Report {
	rep := Report{
		Strategy:  s,
		Target:    target,
		Port:      port,
		Alive:     r.Success,
		Warning:   r.Warning,
		CheckedAt: time.Now().UTC(),
	}
	if r.Success {
		ms := r.Duration.Seconds() * 1000
		rep.DurationMS = &ms
	}
	if r.Err != nil {
		rep.Exception = r.Err.Error()
	}
	return rep
}
