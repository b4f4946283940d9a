// Package metrics records ping outcomes as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hamed0406/netping/internal/probe"
)

// Recorder owns a private registry so output holds only netping series.
type Recorder struct {
	registry *prometheus.Registry
	pings    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	up       *prometheus.GaugeVec
}

// NewRecorder registers the netping collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		pings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netping",
			Name:      "pings_total",
			Help:      "Ping calls by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "netping",
			Name:      "ping_duration_seconds",
			Help:      "Duration of successful pings.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"strategy"}),
		up: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "netping",
			Name:      "target_up",
			Help:      "1 if the last ping of the target succeeded.",
		}, []string{"strategy", "target"}),
	}
	r.registry.MustRegister(r.pings, r.duration, r.up)
	return r
}

// Observe records one ping result.
func (r *Recorder) Observe(strategy, target string, res probe.Result) {
	outcome := "failure"
	up := 0.0
	if res.Success {
		outcome = "success"
		up = 1
		r.duration.WithLabelValues(strategy).Observe(res.Duration.Seconds())
	}
	r.pings.WithLabelValues(strategy, outcome).Inc()
	r.up.WithLabelValues(strategy, target).Set(up)
}

// Gatherer exposes the registry for tests and exporters.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes the current metrics in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
