package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	healthy := NewHealthHandler(map[string]Pinger{
		"redis": PingFunc(func(ctx context.Context) error { return nil }),
	})
	unhealthy := NewHealthHandler(map[string]Pinger{
		"redis": PingFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
	})

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
	}{
		{"liveness", healthy.Liveness, http.StatusOK},
		{"liveness ignores deps", unhealthy.Liveness, http.StatusOK},
		{"readiness", healthy.Readiness, http.StatusOK},
		{"readiness without deps", NewHealthHandler(nil).Readiness, http.StatusOK},
		{"readiness with failing dep", unhealthy.Readiness, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		tt.handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.want, rec.Code)
		}
	}
}
