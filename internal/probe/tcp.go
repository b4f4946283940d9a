package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// DefaultTCPPort is the echo service port.
const DefaultTCPPort = 7

// TCPProbe checks that a host accepts, or actively refuses, a TCP connection.
type TCPProbe struct {
	Probe

	// ServiceCheck requires the port to accept the connection. When false a
	// refused connection still proves the host is up.
	ServiceCheck bool
}

var _ Pinger = (*TCPProbe)(nil)

// NewTCPProbe returns a probe for host:port. Zero values select
// DefaultTCPPort and DefaultTimeout.
func NewTCPProbe(host string, port int, timeout time.Duration) *TCPProbe {
	if port <= 0 {
		port = DefaultTCPPort
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TCPProbe{Probe: Probe{Host: host, Port: port, Timeout: timeout}}
}

// Alive is identical to Ping.
func (t *TCPProbe) Alive() bool { return t.Ping() }

// PingEcho is identical to Ping.
func (t *TCPProbe) PingEcho() bool { return t.Ping() }

// Ping dials the target once and closes the connection straight away.
func (t *TCPProbe) Ping() bool {
	t.reset()

	host := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(t.Host), "["), "]")
	if host == "" {
		return t.fail("tcp", errors.New("host is required"))
	}
	port := t.Port
	if port <= 0 {
		port = DefaultTCPPort
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout())
	defer cancel()

	start := time.Now()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	elapsed := time.Since(start)
	if err != nil {
		if !t.ServiceCheck && errors.Is(err, syscall.ECONNREFUSED) {
			return t.succeed("tcp", elapsed)
		}
		return t.fail("tcp", err)
	}
	_ = conn.Close()
	return t.succeed("tcp", elapsed)
}
