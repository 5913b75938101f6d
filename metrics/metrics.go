package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "songboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songboard_store_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"operation"},
	)

	RatingsUpdated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songboard_ratings_updated_total",
			Help: "Total number of successful rating updates by value",
		},
		[]string{"rating"},
	)

	SongsLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "songboard_songs_loaded_total",
			Help: "Total number of songs inserted by the loader",
		},
	)
)

// RecordRequest observes one finished HTTP request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func RecordRequest(method, route string, status int, d time.Duration) {
	s := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, s).Observe(d.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, s).Inc()
}

func RecordStoreError(operation string) {
	StoreQueryErrors.WithLabelValues(operation).Inc()
}

func RecordRating(rating int) {
	RatingsUpdated.WithLabelValues(strconv.Itoa(rating)).Inc()
}

func RecordSongsLoaded(n int) {
	SongsLoaded.Add(float64(n))
}
