// Package metrics exposes Prometheus collectors for the splitkaro backend.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests labeled by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	overviewComputationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_overview_computations_total",
			Help: "Total number of group overview ledger computations",
		},
	)
	invitesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invites_sent_total",
			Help: "Total number of group invites split by outcome",
		},
		[]string{"outcome"},
	)
	transactionsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_recorded_total",
			Help: "Total number of transactions recorded labeled by type",
		},
		[]string{"type"},
	)
)

// RecordHTTPRequest observes one completed HTTP request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordOverviewComputation counts one ledger summary build.
func RecordOverviewComputation() {
	overviewComputationsTotal.Inc()
}

// RecordInvite counts one invite by outcome ("member_added" or "sms_sent").
func RecordInvite(outcome string) {
	invitesSentTotal.WithLabelValues(outcome).Inc()
}

// RecordTransaction counts one recorded transaction by type.
func RecordTransaction(txnType string) {
	transactionsRecordedTotal.WithLabelValues(txnType).Inc()
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
