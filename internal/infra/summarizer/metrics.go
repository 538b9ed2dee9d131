package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OracleMetricsRecorder defines the interface for recording oracle-call metrics.
// This interface abstracts the metrics recording implementation, enabling:
//   - Mocking in unit tests (inject mock recorder instead of Prometheus)
//   - Swapping metrics systems without touching the adapters
//   - Reusability across oracle providers (Claude, OpenAI)
type OracleMetricsRecorder interface {
	// RecordLength records the length of a generated summary in words.
	RecordLength(words int)

	// RecordBudgetExceeded increments the counter when a summary exceeds its
	// requested maximum word budget.
	RecordBudgetExceeded()

	// RecordCompliance records whether a summary stayed within its word budget.
	RecordCompliance(withinBudget bool)

	// RecordDuration records the time taken by one oracle call.
	RecordDuration(duration time.Duration)
}

// PrometheusOracleMetrics implements OracleMetricsRecorder using Prometheus metrics.
type PrometheusOracleMetrics struct {
	lengthHistogram   prometheus.Histogram
	exceededCounter   prometheus.Counter
	complianceGauge   prometheus.Gauge
	durationHistogram prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusOracleMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogram gets an existing histogram or creates a new one if it doesn't exist
func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		return promauto.NewHistogram(opts)
	}
	return h
}

// getOrCreateCounter gets an existing counter or creates a new one if it doesn't exist
func getOrCreateCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		return promauto.NewCounter(opts)
	}
	return c
}

// getOrCreateGauge gets an existing gauge or creates a new one if it doesn't exist
func getOrCreateGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	if err := prometheus.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Gauge)
		}
		return promauto.NewGauge(opts)
	}
	return g
}

// NewPrometheusOracleMetrics creates a new Prometheus-based metrics recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusOracleMetrics() *PrometheusOracleMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusOracleMetrics{
			lengthHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "oracle_summary_length_words",
				Help:    "Distribution of oracle summary lengths in whitespace-delimited words",
				Buckets: []float64{25, 50, 100, 200, 300, 400, 500, 750},
			}),
			exceededCounter: getOrCreateCounter(prometheus.CounterOpts{
				Name: "oracle_summary_budget_exceeded_total",
				Help: "Total number of summaries exceeding their requested word budget",
			}),
			complianceGauge: getOrCreateGauge(prometheus.GaugeOpts{
				Name: "oracle_summary_budget_compliance_ratio",
				Help: "Whether the last summary stayed within its word budget (0 or 1)",
			}),
			durationHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "oracle_call_duration_seconds",
				Help:    "Time taken by one summarization oracle call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements OracleMetricsRecorder.RecordLength
func (p *PrometheusOracleMetrics) RecordLength(words int) {
	p.lengthHistogram.Observe(float64(words))
}

// RecordBudgetExceeded implements OracleMetricsRecorder.RecordBudgetExceeded
func (p *PrometheusOracleMetrics) RecordBudgetExceeded() {
	p.exceededCounter.Inc()
}

// RecordCompliance implements OracleMetricsRecorder.RecordCompliance
func (p *PrometheusOracleMetrics) RecordCompliance(withinBudget bool) {
	if withinBudget {
		p.complianceGauge.Set(1.0)
	} else {
		p.complianceGauge.Set(0.0)
	}
}

// RecordDuration implements OracleMetricsRecorder.RecordDuration
func (p *PrometheusOracleMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}
