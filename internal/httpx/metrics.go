package httpx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts report activity for the /metrics endpoint.
type Metrics struct {
	ReportRuns     prometheus.Counter
	ReportFailures prometheus.Counter
	SourceWarnings prometheus.Counter
	RunDuration    prometheus.Histogram
}

// NewMetrics registers the report metrics on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReportRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "funnelcast_report_runs_total",
			Help: "Completed report runs.",
		}),
		ReportFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "funnelcast_report_failures_total",
			Help: "Report runs that returned an error.",
		}),
		SourceWarnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "funnelcast_source_warnings_total",
			Help: "Degraded-source warnings across all runs.",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "funnelcast_report_run_seconds",
			Help:    "Wall time of one report run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
