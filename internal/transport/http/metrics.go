package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "registry_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})

	contributionsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registry_contributions_submitted_total",
		Help: "Contributions accepted as unconfirmed",
	})

	contributionsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registry_contributions_confirmed_total",
		Help: "Contributions whose confirmation applied to gift aggregates",
	})

	capacityRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_capacity_rejected_total",
		Help: "Requests rejected because a gift's unit capacity was reached",
	}, []string{"phase"})
)

// Metrics records request counts and latency per endpoint group. Only the
// first path segment is used as the endpoint label to keep cardinality flat.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := endpointLabel(r.URL.Path)
		timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues(r.Method, endpoint))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		timer.ObserveDuration()
		httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
	})
}

func endpointLabel(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}
	segment, _, _ := strings.Cut(trimmed, "/")
	return "/" + segment
}
