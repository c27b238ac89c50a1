package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oneorbit_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "oneorbit_request_duration_seconds",
			Help: "Request duration in seconds",
		},
		[]string{"method", "path"},
	)

	AnalysisCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oneorbit_analysis_calls_total",
			Help: "Calls to the text-analysis service by outcome",
		},
		[]string{"operation", "outcome"},
	)
)

func Register() {
	prometheus.MustRegister(RequestCount, RequestDuration, AnalysisCount)
}
