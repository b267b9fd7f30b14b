// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"route", "method"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cgpa_predictions_total",
			Help: "Total number of successful predictions by interpretation band",
		},
		[]string{"band"},
	)

	PredictionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cgpa_predictions_failed_total",
			Help: "Total number of failed predictions by error code",
		},
		[]string{"error_code"},
	)

	ArtifactsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cgpa_artifact_loaded",
			Help: "1 when the named artifact was loaded at startup",
		},
		[]string{"artifact"},
	)
)
