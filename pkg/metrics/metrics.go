package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "subnetcalc"

// Metrics holds the Prometheus collectors for the application
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
	authAttempts    *prometheus.CounterVec
	authFailures    *prometheus.CounterVec
	loginsTotal     *prometheus.CounterVec
}

var (
	globalMetrics *Metrics
	once          sync.Once
)

// GetMetrics returns the singleton metrics instance
func GetMetrics() *Metrics {
	once.Do(func() {
		globalMetrics = newMetrics(prometheus.DefaultRegisterer)
	})
	return globalMetrics
}

func newMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by path, method and status code",
		}, []string{"path", "method", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),

		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "Number of requests currently being served",
		}),

		authAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Authentication attempts by method and outcome",
		}, []string{"method", "outcome"}),

		authFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Authentication failures by method and failure kind",
		}, []string{"method", "kind"}),

		loginsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),
	}
}

// RecordAuthAttempt records an authentication attempt outcome
func (m *Metrics) RecordAuthAttempt(method string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.authAttempts.WithLabelValues(method, outcome).Inc()
}

// RecordAuthFailure records an authentication failure with its kind
// (e.g. MISSING_CREDENTIAL, EXPIRED). Kinds are a closed set, so the
// label cardinality stays bounded.
func (m *Metrics) RecordAuthFailure(method, kind string) {
	m.authFailures.WithLabelValues(method, kind).Inc()
}

// RecordLogin records a login attempt outcome
func (m *Metrics) RecordLogin(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.loginsTotal.WithLabelValues(outcome).Inc()
}

// Middleware tracks request count, latency and active connections
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m := GetMetrics()

			m.activeRequests.Inc()
			start := time.Now()

			err := next(c)

			m.activeRequests.Dec()

			// Use the route pattern, not the raw URL, to bound cardinality
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			m.requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(path, c.Request().Method, strconv.Itoa(status)).Inc()

			return err
		}
	}
}

// Handler returns the Prometheus metrics endpoint handler
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
