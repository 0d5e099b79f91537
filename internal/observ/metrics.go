package observ

import (
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Outcomes for pyrint_files_analyzed_total.
const (
	OutcomeClean       = "clean"
	OutcomeIssues      = "issues"
	OutcomeSyntaxError = "syntax_error"
	OutcomeReadError   = "read_error"
	OutcomeCancelled   = "cancelled"
)

// Metrics owns a private registry so several drivers (and tests) never
// collide on the global one. All collectors are safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	filesAnalyzed *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
	issues        *prometheus.CounterVec
	watchRuns     prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		filesAnalyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pyrint_files_analyzed_total",
			Help: "Files processed, by outcome.",
		}, []string{"outcome"}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pyrint_file_analysis_seconds",
			Help:    "Time spent per file in each analysis phase.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pyrint_issues_total",
			Help: "Issues reported, by rule code.",
		}, []string{"code"}),
		watchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pyrint_watch_runs_total",
			Help: "Re-analysis rounds triggered by file changes.",
		}),
	}
	reg.MustRegister(m.filesAnalyzed, m.phaseDuration, m.issues, m.watchRuns)
	return m
}

// The recording methods accept a nil receiver so callers can run without metrics.

func (m *Metrics) FileAnalyzed(outcome string) {
	if m == nil {
		return
	}
	m.filesAnalyzed.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (m *Metrics) Issue(code string) {
	if m == nil {
		return
	}
	m.issues.WithLabelValues(code).Inc()
}

func (m *Metrics) WatchRun() {
	if m == nil {
		return
	}
	m.watchRuns.Inc()
}

// Registry exposes the private registry, e.g. for testutil.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteText dumps every metric family in text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
