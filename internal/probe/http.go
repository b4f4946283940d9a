package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultRedirectLimit is the number of redirect hops followed per ping.
	DefaultRedirectLimit = 5

	// maxDrain caps how much of a response body is read before closing it.
	maxDrain = 64 << 10
)

var (
	// ErrRedirectLimit is recorded when a ping runs out of redirect hops.
	// The text is part of the contract and is matched literally by callers.
	ErrRedirectLimit = errors.New("Redirect limit exceeded")

	// ErrRedirectNotFollowed is recorded when a redirect arrives while
	// FollowRedirect is false.
	ErrRedirectNotFollowed = errors.New("redirect not followed")
)

// HTTPProbe checks that a URL answers an HTTP GET. Any non-redirect
// response, including 4xx and 5xx, counts as alive.
//
// Host carries the full URL; URI and SetURI address the same field.
type HTTPProbe struct {
	Probe

	UserAgent      string
	RedirectLimit  int
	FollowRedirect bool

	// Transport performs the requests. nil uses a clone of
	// http.DefaultTransport with keep-alives disabled.
	Transport http.RoundTripper

	// InsecureTLS skips certificate verification on the default transport.
	// It has no effect when Transport is set.
	InsecureTLS bool

	status int

	// portSet marks Port as chosen by the caller; derived is the value
	// worked out from the URL when it was not.
	portSet bool
	derived int
}

var _ Pinger = (*HTTPProbe)(nil)

// NewHTTPProbe returns a probe for uri. A zero port is derived from the URL
// (its explicit port, else 443 for https and 80 otherwise); a zero timeout
// means DefaultTimeout. No network I/O happens here.
func NewHTTPProbe(uri string, port int, timeout time.Duration) *HTTPProbe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	h := &HTTPProbe{
		Probe:          Probe{Host: uri, Port: port, Timeout: timeout},
		RedirectLimit:  DefaultRedirectLimit,
		FollowRedirect: true,
		portSet:        port > 0,
	}
	if !h.portSet {
		h.derivePort()
	}
	return h
}

// URI returns the configured URL. It is the same value as Host.
func (h *HTTPProbe) URI() string { return h.Host }

// SetURI replaces the configured URL. It is the same as assigning Host;
// a port that was not set explicitly follows the new URL.
func (h *HTTPProbe) SetURI(uri string) {
	h.Host = uri
	if !h.explicitPort() {
		h.derivePort()
	}
}

// explicitPort reports whether Port was chosen by the caller, either at
// construction or by assigning a value other than the derived one.
func (h *HTTPProbe) explicitPort() bool {
	return h.Port > 0 && (h.portSet || h.Port != h.derived)
}

// derivePort sets Port from Host: its explicit port, else the scheme default.
func (h *HTTPProbe) derivePort() {
	h.Port, h.derived, h.portSet = 0, 0, false
	if u, err := parseTarget(h.Host); err == nil {
		h.Port = urlPort(u)
		h.derived = h.Port
	}
}

// StatusCode returns the terminal response status of the last successful
// ping, or 0.
func (h *HTTPProbe) StatusCode() int { return h.status }

// Alive is identical to Ping.
func (h *HTTPProbe) Alive() bool { return h.Ping() }

// PingEcho is identical to Ping.
func (h *HTTPProbe) PingEcho() bool { return h.Ping() }

// Ping issues GET requests to the configured URL, following up to
// RedirectLimit redirects, and records the outcome.
func (h *HTTPProbe) Ping() bool {
	h.reset()
	h.status = 0

	target, err := h.target()
	if err != nil {
		return h.fail("http", err)
	}

	client, done := h.client()
	defer done()

	limit := h.RedirectLimit
	if limit < 0 {
		limit = 0
	}

	start := time.Now()
	current := target
	for hops := 0; ; hops++ {
		status, location, err := h.fetch(client, current)
		if err != nil {
			return h.fail("http", err)
		}
		if status/100 != 3 || location == "" {
			h.status = status
			return h.succeed("http", time.Since(start))
		}
		if !h.FollowRedirect {
			return h.fail("http", fmt.Errorf("%w: %d to %s", ErrRedirectNotFollowed, status, location))
		}
		if hops >= limit {
			return h.fail("http", ErrRedirectLimit)
		}
		next, err := current.Parse(location)
		if err != nil {
			return h.fail("http", fmt.Errorf("invalid redirect location %q: %w", location, err))
		}
		h.logger().Debug("http_redirect",
			zap.String("from", current.String()),
			zap.String("to", next.String()),
			zap.Int("status", status),
			zap.Int("hop", hops+1),
		)
		current = next
	}
}

// fetch performs one GET and releases the connection before returning.
func (h *HTTPProbe) fetch(client *http.Client, u *url.URL) (int, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, "", err
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	h.logger().Debug("http_attempt", zap.String("url", u.String()))
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	return resp.StatusCode, resp.Header.Get("Location"), nil
}

// client builds a client that never follows redirects on its own. The
// returned func releases idle connections held by the default transport.
func (h *HTTPProbe) client() (*http.Client, func()) {
	noFollow := func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	if h.Transport != nil {
		return &http.Client{Transport: h.Transport, CheckRedirect: noFollow}, func() {}
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DisableKeepAlives = true
	if h.InsecureTLS {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{Transport: t, CheckRedirect: noFollow}, t.CloseIdleConnections
}

// target resolves Host and Port into the first URL to fetch.
func (h *HTTPProbe) target() (*url.URL, error) {
	u, err := parseTarget(h.Host)
	if err != nil {
		return nil, err
	}
	if !h.explicitPort() {
		h.Port = urlPort(u)
		h.derived, h.portSet = h.Port, false
	}
	port := h.Port
	if u.Port() != "" || port != defaultPort(u.Scheme) {
		u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(port))
	}
	return u, nil
}

func parseTarget(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("host is required")
	}
	if !strings.Contains(raw, "://") {
		if ip := net.ParseIP(raw); ip != nil && ip.To4() == nil {
			raw = "[" + raw + "]"
		}
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("no host in %q", raw)
	}
	return u, nil
}

func urlPort(u *url.URL) int {
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			return n
		}
	}
	return defaultPort(u.Scheme)
}

func defaultPort(scheme string) int {
	if scheme == "https" {
		return 443
	}
	return 80
}
