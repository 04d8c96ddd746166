package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "noshow"

// PipelineMetrics holds the Prometheus collectors for cleaning runs.
// Collectors live in a private registry so tests can create as many as they need.
type PipelineMetrics struct {
	Registry *prometheus.Registry

	RunsTotal    *prometheus.CounterVec
	RowsLoaded   prometheus.Gauge
	RowsCleaned  prometheus.Gauge
	RowsRemoved  *prometheus.CounterVec
	StepDuration *prometheus.HistogramVec
}

// NewPipelineMetrics creates and registers the cleaning run collectors
func NewPipelineMetrics() *PipelineMetrics {
	m := &PipelineMetrics{
		Registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Cleaning runs by outcome.",
		}, []string{"status"}),
		RowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows_loaded",
			Help:      "Records read from the source file by the last run.",
		}),
		RowsCleaned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows_cleaned",
			Help:      "Records in the cleaned dataset of the last run.",
		}),
		RowsRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_removed_total",
			Help:      "Records removed by each cleaning step.",
		}, []string{"step"}),
		StepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "step_duration_seconds",
			Help:      "Cleaning step duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"step", "status"}),
	}

	m.Registry.MustRegister(m.RunsTotal, m.RowsLoaded, m.RowsCleaned, m.RowsRemoved, m.StepDuration)
	return m
}

// ObserveStep records the outcome of one step
func (m *PipelineMetrics) ObserveStep(step string, removed int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.StepDuration.WithLabelValues(step, status).Observe(duration.Seconds())
	if removed > 0 {
		m.RowsRemoved.WithLabelValues(step).Add(float64(removed))
	}
}

// ObserveRun records the outcome of a whole run
func (m *PipelineMetrics) ObserveRun(loaded, cleaned int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.RunsTotal.WithLabelValues("failure").Inc()
		return
	}
	m.RunsTotal.WithLabelValues("success").Inc()
	m.RowsLoaded.Set(float64(loaded))
	m.RowsCleaned.Set(float64(cleaned))
}

// WriteTextfile writes the registry in the node_exporter textfile format
func (m *PipelineMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
