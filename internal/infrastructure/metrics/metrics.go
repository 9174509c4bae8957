package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClientMetrics holds Prometheus metrics for outbound banking API calls.
type ClientMetrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Retries         *prometheus.CounterVec
	Transfers       *prometheus.CounterVec
	AuthAttempts    *prometheus.CounterVec
}

// NewClient creates client metrics and registers them on reg.
func NewClient(reg prometheus.Registerer) *ClientMetrics {
	factory := promauto.With(reg)

	return &ClientMetrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankctl_client_requests_total",
				Help: "Total HTTP attempts made to the banking API",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankctl_client_request_duration_seconds",
				Help:    "Duration of HTTP attempts to the banking API",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "endpoint"},
		),
		Retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankctl_client_retries_total",
				Help: "Total retries after transient failures",
			},
			[]string{"endpoint"},
		),
		Transfers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankctl_client_transfers_total",
				Help: "Transfer outcomes by status",
			},
			[]string{"status"},
		),
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankctl_client_auth_attempts_total",
				Help: "Authentication attempts by outcome",
			},
			[]string{"status"},
		),
	}
}

// ServerMetrics holds Prometheus metrics for the fixture banking server.
type ServerMetrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	HTTPInFlight      prometheus.Gauge
	TransfersExecuted prometheus.Counter
	AuthFailures      prometheus.Counter
}

// NewServer creates server metrics and registers them on reg.
func NewServer(reg prometheus.Registerer) *ServerMetrics {
	factory := promauto.With(reg)

	return &ServerMetrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankctl_server_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankctl_server_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bankctl_server_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
		TransfersExecuted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankctl_server_transfers_total",
			Help: "Total number of transfers executed",
		}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankctl_server_auth_failures_total",
			Help: "Total failed authentication attempts",
		}),
	}
}

// NormalizePath replaces account ids in API paths to avoid high cardinality.
// /accounts/balance/ACC1000 -> /accounts/balance/:id
func NormalizePath(path string) string {
	for _, prefix := range []string{"/accounts/validate/", "/accounts/balance/"} {
		if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
			return prefix + ":id"
		}
	}
	return path
}
