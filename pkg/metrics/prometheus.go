// Package metrics provides Prometheus metrics for the ranking pipeline.
//
// The pipeline is a batch process with no scrape window, so metrics are
// exported in text exposition format to a file that a node_exporter style
// textfile collector can pick up.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Pipeline stage labels used with the stage duration histogram.
const (
	StageLoad        = "load"
	StageQuality     = "quality"
	StageValueScore  = "value_score"
	StageComposite   = "composite"
	StageRank        = "rank"
	StageWrite       = "write"
	textfilePermMask = 0o755
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer
	gatherer         prometheus.Gatherer

	// Run outcome metrics
	pipelineRuns     prometheus.Counter
	pipelineFailures prometheus.Counter
	lastRunUnix      prometheus.Gauge

	// Table metrics
	rowsLoaded          prometheus.Counter
	rowsRanked          prometheus.Counter
	curvePoints         prometheus.Gauge
	missingPriceRows    prometheus.Counter
	missingSubScoreRows prometheus.Counter

	// Stage performance metrics
	stageDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fairway",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
		gatherer:         prometheus.DefaultGatherer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.pipelineRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of pipeline runs started.",
	})
	m.pipelineFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "failures_total",
		Help:      "Total number of pipeline runs that aborted with a fatal error.",
	})
	m.lastRunUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_unix",
		Help:      "Unix timestamp of the last completed run.",
	})
	m.rowsLoaded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_loaded_total",
		Help:      "Ratings rows loaded from the input table.",
	})
	m.rowsRanked = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_ranked_total",
		Help:      "Rows written to the ranked output table.",
	})
	m.curvePoints = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "curve_points",
		Help:      "Control points in the loaded price curve.",
	})
	m.missingPriceRows = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "missing_price_rows_total",
		Help:      "Rows whose price was missing; their value_score is undefined.",
	})
	m.missingSubScoreRows = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "missing_subscore_rows_total",
		Help:      "Rows with at least one missing quality sub-score.",
	})
	m.stageDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Duration of each pipeline stage.",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})
}

// RecordRun counts a pipeline run start.
func RecordRun() {
	if globalManager.enabled {
		globalManager.pipelineRuns.Inc()
	}
}

// RecordFailure counts a fatal pipeline failure.
func RecordFailure() {
	if globalManager.enabled {
		globalManager.pipelineFailures.Inc()
	}
}

// SetLastRun records the completion time of a run.
func SetLastRun(t time.Time) {
	if globalManager.enabled {
		globalManager.lastRunUnix.Set(float64(t.Unix()))
	}
}

// AddRowsLoaded counts ratings rows loaded.
func AddRowsLoaded(n int) {
	if globalManager.enabled {
		globalManager.rowsLoaded.Add(float64(n))
	}
}

// AddRowsRanked counts rows written to the ranked output.
func AddRowsRanked(n int) {
	if globalManager.enabled {
		globalManager.rowsRanked.Add(float64(n))
	}
}

// SetCurvePoints records the size of the loaded price curve.
func SetCurvePoints(n int) {
	if globalManager.enabled {
		globalManager.curvePoints.Set(float64(n))
	}
}

// AddMissingPriceRows counts rows lacking a price observation.
func AddMissingPriceRows(n int) {
	if globalManager.enabled {
		globalManager.missingPriceRows.Add(float64(n))
	}
}

// AddMissingSubScoreRows counts rows lacking a quality sub-score.
func AddMissingSubScoreRows(n int) {
	if globalManager.enabled {
		globalManager.missingSubScoreRows.Add(float64(n))
	}
}

// RecordStageDuration records how long a pipeline stage took.
func RecordStageDuration(stage string, d time.Duration) {
	if globalManager.enabled {
		globalManager.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// WriteTextfile exports all registered metrics to path in Prometheus text
// exposition format, creating missing parent directories.
func WriteTextfile(path string) error {
	return globalManager.WriteTextfile(path)
}

// WriteTextfile exports this manager's metrics to path.
func (m *Manager) WriteTextfile(path string) error {
	if path == "" {
		return ErrEmptyTextfilePath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, textfilePermMask); err != nil {
			return fmt.Errorf("create metrics dir: %w", err)
		}
	}

	families, err := m.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics textfile: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return f.Close()
}

// GetManager returns the global metrics manager for testing.
func GetManager() *Manager {
	return globalManager
}
