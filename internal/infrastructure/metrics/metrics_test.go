package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewClientRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewClient(registry)

	if m.Requests == nil || m.Retries == nil || m.Transfers == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.Requests.WithLabelValues("GET", "/accounts", "200").Inc()
	m.Retries.WithLabelValues("/transfer").Add(2)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.Retries.WithLabelValues("/transfer")); got != 2 {
		t.Fatalf("expected 2 retries, got %v", got)
	}
}

func TestNewServerRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewServer(registry)
	m.TransfersExecuted.Inc()

	if got := testutil.ToFloat64(m.TransfersExecuted); got != 1 {
		t.Fatalf("expected 1 transfer, got %v", got)
	}

	if _, err := registry.Gather(); err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
}

func TestClientAndServerMetricsShareRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("expected distinct metric names, registration panicked: %v", r)
		}
	}()

	NewClient(registry)
	NewServer(registry)
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/accounts/balance/ACC1000":  "/accounts/balance/:id",
		"/accounts/validate/ACC2000": "/accounts/validate/:id",
		"/accounts/validate/":        "/accounts/validate/",
		"/accounts":                  "/accounts",
		"/transfer":                  "/transfer",
	}

	for in, want := range tests {
		if got := NormalizePath(in); got != want {
			t.Fatalf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
