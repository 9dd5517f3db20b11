package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ledintent",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "API requests, by huma operation ID and status code",
}, []string{"operation", "status"})

// RecordHTTPRequest counts one served API request.
func RecordHTTPRequest(operation, status string) {
	httpRequests.WithLabelValues(operation, status).Inc()
}
