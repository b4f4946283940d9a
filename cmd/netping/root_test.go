package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hamed0406/netping/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_DIR", "")
	t.Setenv("PING_METRICS_TEXTFILE", "")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHTTPCommand_JSON(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer s.Close()

	out, err := execute(t, "http", s.URL+"/old", "--json")
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	var rep domain.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !rep.Alive || rep.StatusCode != http.StatusNoContent || rep.DurationMS == nil {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.Strategy != domain.StrategyHTTP || rep.Target != s.URL+"/old" {
		t.Fatalf("unexpected target: %+v", rep)
	}
}

func TestHTTPCommand_RedirectLimitFlag(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer s.Close()

	out, err := execute(t, "http", s.URL, "--redirect-limit", "0")
	if !errors.Is(err, errNotAlive) {
		t.Fatalf("want errNotAlive, got %v", err)
	}
	if !strings.Contains(out, "Redirect limit exceeded") {
		t.Fatalf("want redirect limit message, got %q", out)
	}

	out, err = execute(t, "http", s.URL, "--no-follow")
	if !errors.Is(err, errNotAlive) {
		t.Fatalf("want errNotAlive, got %v", err)
	}
	if !strings.Contains(out, "redirect not followed") {
		t.Fatalf("want not-followed message, got %q", out)
	}
}

func TestHTTPCommand_MetricsTextfile(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer s.Close()

	path := filepath.Join(t.TempDir(), "netping.prom")
	out, err := execute(t, "http", s.URL, "--metrics-textfile", path)
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if !strings.Contains(out, "is alive") {
		t.Fatalf("unexpected output: %q", out)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(b), "netping_pings_total") {
		t.Fatalf("metrics missing:\n%s", b)
	}
}

func TestTCPCommand_Refused(t *testing.T) {
	out, err := execute(t, "tcp", "127.0.0.1", "--port", "1", "--service-check", "--timeout", "1s")
	if !errors.Is(err, errNotAlive) {
		t.Fatalf("want errNotAlive, got %v (%s)", err, out)
	}
	if !strings.Contains(out, "is down") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "netping "+Version) {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestRootCommand_RejectsBadTimeout(t *testing.T) {
	_, err := execute(t, "tcp", "127.0.0.1", "--timeout", "0s")
	if err == nil || errors.Is(err, errNotAlive) {
		t.Fatalf("want validation error, got %v", err)
	}
}
