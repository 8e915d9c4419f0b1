package prometheus

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var CreateOrderCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "gateway_order_create_total",
		Help: "Total number of orders created",
	},
)

var CreatePaymentCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_payment_create_total",
		Help: "Total number of payments created, by method",
	},
	[]string{"method"},
)

var SettlementOutcomeCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_settlement_outcome_total",
		Help: "Total number of settled payments, by method and terminal status",
	},
	[]string{"method", "status"},
)

// SettlementWriteFailureCounter counts settlement tasks whose database
// write failed. Such payments stay in processing and are surfaced nowhere
// else, so this counter is the alerting signal for them.
var SettlementWriteFailureCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "gateway_settlement_write_failures_total",
		Help: "Total number of settlement tasks that failed to persist their outcome",
	},
)

var RequestDurationHistogram = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "gateway_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

func init() {
	prometheus.MustRegister(CreateOrderCounter)
	prometheus.MustRegister(CreatePaymentCounter)
	prometheus.MustRegister(SettlementOutcomeCounter)
	prometheus.MustRegister(SettlementWriteFailureCounter)
	prometheus.MustRegister(RequestDurationHistogram)
}

func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware is an Echo middleware function that records HTTP request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			// Record metrics after the request is processed
			method := c.Request().Method
			path := c.Path()

			// Record the request duration
			duration := time.Since(start).Seconds()
			RequestDurationHistogram.WithLabelValues(method, path).Observe(duration)

			return err
		}
	}
}
