package report

// Metrics are a snapshot of one report run: job counts by severity and the
// spread of completed durations. They live on a private registry so a run
// never leaks into process-wide collectors.

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DurationBuckets are histogram upper bounds in seconds
var DurationBuckets = []float64{60, 300, 600, 1800, 3600, 4 * 3600}

// Metrics holds the collectors for one report run
type Metrics struct {
	registry  *prometheus.Registry
	jobs      *prometheus.GaugeVec
	durations prometheus.Histogram
}

// NewMetrics creates collectors with every severity pre-set to zero
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jobs: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "jobhealth_jobs",
				Help: "Jobs in the last report by severity",
			},
			[]string{"severity"},
		),
		durations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "jobhealth_job_duration_seconds",
				Help:    "Run duration of jobs with both START and END events",
				Buckets: DurationBuckets,
			},
		),
	}
	m.registry.MustRegister(m.jobs, m.durations)

	for _, sev := range Severities {
		m.jobs.WithLabelValues(string(sev)).Set(0)
	}
	return m
}

// RecordResult updates all collectors from a single Result
func (m *Metrics) RecordResult(r Result) {
	m.jobs.WithLabelValues(string(r.Severity)).Inc()
	if r.Duration != nil {
		m.durations.Observe(r.Duration.Seconds())
	}
}

// RecordAll records every result
func (m *Metrics) RecordAll(results []Result) {
	for _, r := range results {
		m.RecordResult(r)
	}
}
