// Package metrics records processing counters on a private Prometheus
// registry and exports them in the node-exporter textfile format.
//
// A nil *Recorder is valid and records nothing, so callers that do not want
// metrics can pass nil through.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "halog"

// Outcome labels for FilesProcessed.
const (
	OutcomeParsed   = "parsed"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Recorder holds the processing metrics.
type Recorder struct {
	registry *prometheus.Registry

	FilesProcessed     *prometheus.CounterVec
	Fallbacks          *prometheus.CounterVec
	LinesRead          *prometheus.CounterVec
	RowsProduced       prometheus.Counter
	ProcessingDuration prometheus.Histogram
}

// NewRecorder creates a Recorder on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		FilesProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_processed_total",
				Help:      "Files processed by detected format and outcome",
			},
			[]string{"format", "outcome"},
		),
		Fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallbacks_total",
				Help:      "Sample-data fallbacks by reason",
			},
			[]string{"reason"},
		),
		LinesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_read_total",
				Help:      "Lines or CSV rows examined by format",
			},
			[]string{"format"},
		),
		RowsProduced: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_produced_total",
				Help:      "Result table rows produced, including sample rows",
			},
		),
		ProcessingDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "processing_duration_seconds",
				Help:      "Wall time of a single file processing run",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60},
			},
		),
	}
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordFile counts one processed file.
func (r *Recorder) RecordFile(format, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.FilesProcessed.WithLabelValues(format, outcome).Inc()
	r.ProcessingDuration.Observe(elapsed.Seconds())
}

// RecordFallback counts a fallback to sample data.
func (r *Recorder) RecordFallback(reason string) {
	if r == nil {
		return
	}
	r.Fallbacks.WithLabelValues(reason).Inc()
}

// RecordLines adds to the lines-read counter.
func (r *Recorder) RecordLines(format string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.LinesRead.WithLabelValues(format).Add(float64(n))
}

// RecordRows adds to the rows-produced counter.
func (r *Recorder) RecordRows(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.RowsProduced.Add(float64(n))
}

// WriteTextfile writes the registry to path in the textfile collector format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
