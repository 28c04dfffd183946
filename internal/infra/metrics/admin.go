package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(adminRequestsTotal, adminRateLimitedTotal) }

var (
	adminRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Admin API requests by route pattern and status code.",
		},
		[]string{"route", "code"},
	)

	adminRateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "admin_rate_limited_total",
			Help: "Admin API requests rejected by the rate limiter.",
		},
	)
)

func IncAdminRequest(route string, code int) {
	adminRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func IncAdminRateLimited() {
	adminRateLimitedTotal.Inc()
}
