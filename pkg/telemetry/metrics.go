package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for azrid.
type Metrics struct {
	config MetricsConfig

	// Identifier operation metrics
	idsParsed   *prometheus.CounterVec
	idsBuilt    *prometheus.CounterVec
	validations *prometheus.CounterVec

	// Lint metrics
	lintRuns        *prometheus.CounterVec
	lintRunDuration prometheus.Histogram
	lintedIDs       *prometheus.CounterVec
	lintFindings    *prometheus.CounterVec

	// Watch metrics
	activeWatches prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		// Return a no-op metrics instance
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		idsParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ids_parsed_total",
				Help:      "Total number of identifiers parsed",
			},
			[]string{"outcome"},
		),
		idsBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ids_built_total",
				Help:      "Total number of identifiers composed",
			},
			[]string{"outcome"},
		),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of validations performed",
			},
			[]string{"kind", "result"},
		),

		lintRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lint_runs_total",
				Help:      "Total number of lint runs",
			},
			[]string{"status"},
		),
		lintRunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "lint_run_duration_seconds",
				Help:      "Duration of lint runs in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		lintedIDs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "linted_ids_total",
				Help:      "Total number of identifiers examined by lint runs",
			},
			[]string{"result"},
		),
		lintFindings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lint_findings_total",
				Help:      "Total number of policy findings raised by lint runs",
			},
			[]string{"policy", "severity"},
		),

		activeWatches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_watches",
				Help:      "Current number of active lint watches",
			},
		),
	}

	registry.MustRegister(
		m.idsParsed,
		m.idsBuilt,
		m.validations,
		m.lintRuns,
		m.lintRunDuration,
		m.lintedIDs,
		m.lintFindings,
		m.activeWatches,
	)

	return m, nil
}

// RecordParse records the outcome of a parse, e.g. "ok" or "invalid".
func (m *Metrics) RecordParse(outcome string) {
	if m.idsParsed == nil {
		return
	}
	m.idsParsed.WithLabelValues(outcome).Inc()
}

// RecordBuild records the outcome of a compose: "ok" or "error".
func (m *Metrics) RecordBuild(outcome string) {
	if m.idsBuilt == nil {
		return
	}
	m.idsBuilt.WithLabelValues(outcome).Inc()
}

// RecordValidation records a validation of the given kind ("identifier"
// or "name") and its result ("valid" or "invalid").
func (m *Metrics) RecordValidation(kind, result string) {
	if m.validations == nil {
		return
	}
	m.validations.WithLabelValues(kind, result).Inc()
}

// RecordLintRun records a completed lint run with its status and duration.
func (m *Metrics) RecordLintRun(status string, duration time.Duration) {
	if m.lintRuns == nil {
		return
	}
	m.lintRuns.WithLabelValues(status).Inc()
	m.lintRunDuration.Observe(duration.Seconds())
}

// RecordLintedID records one identifier examined during a lint run.
func (m *Metrics) RecordLintedID(result string) {
	if m.lintedIDs == nil {
		return
	}
	m.lintedIDs.WithLabelValues(result).Inc()
}

// RecordLintFinding records one policy finding.
func (m *Metrics) RecordLintFinding(policy, severity string) {
	if m.lintFindings == nil {
		return
	}
	m.lintFindings.WithLabelValues(policy, severity).Inc()
}

// WatchStarted increments the active watch gauge.
func (m *Metrics) WatchStarted() {
	if m.activeWatches == nil {
		return
	}
	m.activeWatches.Inc()
}

// WatchStopped decrements the active watch gauge.
func (m *Metrics) WatchStopped() {
	if m.activeWatches == nil {
		return
	}
	m.activeWatches.Dec()
}

// Timer provides a convenient way to time operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// StartMetricsServer starts an HTTP server exposing /metrics. It is a
// no-op when metrics are disabled, which is the case for every one-shot
// command.
func (m *Metrics) StartMetricsServer() error {
	if !m.config.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("metrics server error: %v\n", err)
		}
	}()

	return nil
}
