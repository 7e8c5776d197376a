package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screenshot_api_jobs_total",
		Help: "Total number of screenshot jobs, by outcome",
	}, []string{"outcome"})

	JobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "screenshot_api_job_duration_seconds",
		Help:    "Duration of screenshot pipeline stages",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})

	ScreenshotsExtractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screenshot_api_screenshots_extracted_total",
		Help: "Total number of screenshots extracted across all jobs",
	})

	ActiveJobs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "screenshot_api_active_jobs",
		Help: "Number of jobs currently being processed",
	})
)
