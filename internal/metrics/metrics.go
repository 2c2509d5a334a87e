package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fontfetch_runs_started_total",
		Help: "Total number of pipeline runs started",
	})

	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fontfetch_runs_completed_total",
		Help: "Total number of pipeline runs completed",
	})

	StylesheetsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fontfetch_stylesheets_in_flight",
		Help: "Number of stylesheet fetch tasks currently running",
	})

	Outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fontfetch_outcomes_total",
		Help: "Total number of fetch outcomes by kind",
	}, []string{"kind"})

	FontDownloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fontfetch_font_download_duration_seconds",
		Help:    "Font binary download duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	FontBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fontfetch_font_bytes_total",
		Help: "Total bytes of font binaries saved",
	})
)
