package probe

import (
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

func TestICMPProbe_Defaults(t *testing.T) {
	p := NewICMPProbe("localhost", 0)
	if p.Timeout != DefaultTimeout || p.Count != 1 {
		t.Fatalf("unexpected defaults: timeout=%s count=%d", p.Timeout, p.Count)
	}
	if p.Port != 0 {
		t.Fatalf("icmp has no port, got %d", p.Port)
	}

	p = NewICMPProbe("localhost", 2*time.Second)
	if p.Timeout != 2*time.Second {
		t.Fatalf("want explicit timeout, got %s", p.Timeout)
	}
}

func TestICMPProbe_BadHost(t *testing.T) {
	for _, host := range []string{"", "www.blabfoobarurghxxxx.invalid"} {
		p := NewICMPProbe(host, time.Second)
		if p.Ping() {
			t.Fatalf("host %q: want failure", host)
		}
		assertFailure(t, p)
		if p.Warning() != "" {
			t.Fatalf("host %q: want no warning on failure, got %q", host, p.Warning())
		}
	}
}

func TestEchoOutcome(t *testing.T) {
	cases := []struct {
		name        string
		stats       *probing.Statistics
		wantOK      bool
		wantRTT     time.Duration
		wantWarning string
	}{
		{"all lost", &probing.Statistics{PacketsSent: 3, PacketsRecv: 0, AvgRtt: 0}, false, 0, ""},
		{"some lost", &probing.Statistics{PacketsSent: 3, PacketsRecv: 2, AvgRtt: 4 * time.Millisecond}, true, 4 * time.Millisecond, "1 of 3 echo requests lost"},
		{"none lost", &probing.Statistics{PacketsSent: 3, PacketsRecv: 3, AvgRtt: 2 * time.Millisecond}, true, 2 * time.Millisecond, ""},
		{"no stats", nil, false, 0, ""},
	}
	for _, c := range cases {
		ok, rtt, warning := echoOutcome(c.stats)
		if ok != c.wantOK || rtt != c.wantRTT || warning != c.wantWarning {
			t.Fatalf("%s: got (%v, %s, %q) want (%v, %s, %q)",
				c.name, ok, rtt, warning, c.wantOK, c.wantRTT, c.wantWarning)
		}
	}
}

func TestICMPProbe_Loopback(t *testing.T) {
	p := NewICMPProbe("127.0.0.1", 2*time.Second)
	if !p.Ping() {
		err := p.Exception()
		if errors.Is(err, os.ErrPermission) ||
			errors.Is(err, syscall.EPROTONOSUPPORT) ||
			errors.Is(err, syscall.EAFNOSUPPORT) ||
			strings.Contains(err.Error(), "permission denied") ||
			strings.Contains(err.Error(), "not permitted") {
			t.Skipf("unprivileged ping not permitted here: %v", err)
		}
		t.Fatalf("want loopback echo reply, got %v", err)
	}
	assertSuccess(t, p)
	if p.Warning() != "" {
		t.Fatalf("want no warning for a single answered echo, got %q", p.Warning())
	}
}
