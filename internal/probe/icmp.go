package probe

import (
	"errors"
	"fmt"
	"strings"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// ICMPProbe sends ICMP echo requests and waits for replies.
type ICMPProbe struct {
	Probe

	// Count is the number of echo requests sent per ping; values below 1 mean 1.
	Count int
	// Size is the payload size in bytes; 0 keeps the library default.
	Size int
	// Interval separates consecutive echo requests when Count > 1.
	Interval time.Duration
	// Privileged uses raw sockets instead of unprivileged datagram pings.
	Privileged bool
}

var _ Pinger = (*ICMPProbe)(nil)

// NewICMPProbe returns a probe for host sending a single echo request.
func NewICMPProbe(host string, timeout time.Duration) *ICMPProbe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ICMPProbe{
		Probe: Probe{Host: host, Timeout: timeout},
		Count: 1,
	}
}

// Alive is identical to Ping.
func (i *ICMPProbe) Alive() bool { return i.Ping() }

// PingEcho is identical to Ping.
func (i *ICMPProbe) PingEcho() bool { return i.Ping() }

// Ping sends Count echo requests within Timeout. It succeeds when at least
// one reply arrives and warns when some were lost.
func (i *ICMPProbe) Ping() bool {
	i.reset()

	host := strings.TrimSpace(i.Host)
	if host == "" {
		return i.fail("icmp", errors.New("host is required"))
	}

	pinger, err := probing.NewPinger(host)
	if err != nil {
		return i.fail("icmp", err)
	}
	pinger.Count = i.Count
	if pinger.Count < 1 {
		pinger.Count = 1
	}
	if i.Size > 0 {
		pinger.Size = i.Size
	}
	if i.Interval > 0 {
		pinger.Interval = i.Interval
	}
	pinger.Timeout = i.timeout()
	pinger.SetPrivileged(i.Privileged)

	if err := pinger.Run(); err != nil {
		return i.fail("icmp", err)
	}

	ok, rtt, warning := echoOutcome(pinger.Statistics())
	if !ok {
		return i.fail("icmp", fmt.Errorf("no echo reply from %s within %s", host, pinger.Timeout))
	}
	i.last.Warning = warning
	return i.succeed("icmp", rtt)
}

// echoOutcome turns echo statistics into success, the average round trip
// and a partial-loss warning.
func echoOutcome(stats *probing.Statistics) (bool, time.Duration, string) {
	if stats == nil || stats.PacketsRecv == 0 {
		return false, 0, ""
	}
	var warning string
	if lost := stats.PacketsSent - stats.PacketsRecv; lost > 0 {
		warning = fmt.Sprintf("%d of %d echo requests lost", lost, stats.PacketsSent)
	}
	return true, stats.AvgRtt, warning
}
