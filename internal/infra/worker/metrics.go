package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"podcast-digest/internal/pkg/config"
)

// Metrics provides Prometheus metrics for the pipeline worker. It embeds
// the shared configuration metrics and adds run tracking:
//   - worker_pipeline_runs_total: total runs by trigger (cron/watch) and status
//   - worker_pipeline_run_duration_seconds: run duration histogram
//   - worker_pipeline_files_processed_total: files processed by stage
//   - worker_pipeline_last_success_timestamp: Unix time of last successful run
type Metrics struct {
	*config.ConfigMetrics

	PipelineRunsTotal *prometheus.CounterVec

	PipelineRunDurationSeconds prometheus.Histogram

	PipelineFilesProcessedTotal *prometheus.CounterVec

	PipelineLastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates the worker metrics. Registration with the Prometheus
// default registry happens here via promauto; create it once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		PipelineRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_pipeline_runs_total",
			Help: "Total number of pipeline runs by trigger and status",
		}, []string{"trigger", "status"}),

		PipelineRunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_pipeline_run_duration_seconds",
			Help:    "Duration of pipeline runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800, 3600, 7200},
		}),

		PipelineFilesProcessedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_pipeline_files_processed_total",
			Help: "Total number of files processed by pipeline stage",
		}, []string{"stage"}),

		PipelineLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_pipeline_last_success_timestamp",
			Help: "Unix timestamp of the last successful pipeline run",
		}),
	}
}

// RecordRun increments the run counter. trigger is "cron" or "watch";
// status is "started", "success" or "failure".
func (m *Metrics) RecordRun(trigger, status string) {
	m.PipelineRunsTotal.WithLabelValues(trigger, status).Inc()
}

// RecordRunDuration observes the duration of one pipeline run in seconds.
func (m *Metrics) RecordRunDuration(seconds float64) {
	m.PipelineRunDurationSeconds.Observe(seconds)
}

// RecordFilesProcessed adds the number of files a stage processed.
func (m *Metrics) RecordFilesProcessed(stage string, count int) {
	m.PipelineFilesProcessedTotal.WithLabelValues(stage).Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *Metrics) RecordLastSuccess() {
	m.PipelineLastSuccessTimestamp.SetToCurrentTime()
}
