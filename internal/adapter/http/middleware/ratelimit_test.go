package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected burst of 2 then 429, got %v", codes)
	}

	// Other clients have their own bucket.
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected other client to pass, got %d", rr.Code)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(time.Hour)
	rl.getLimiter("10.0.0.2")

	rl.Cleanup(30 * time.Minute)

	if _, ok := rl.limiters["10.0.0.1"]; ok {
		t.Fatalf("expected idle limiter to be removed")
	}
	if _, ok := rl.limiters["10.0.0.2"]; !ok {
		t.Fatalf("expected recent limiter to be kept")
	}
}
