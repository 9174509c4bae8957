package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/bankctl/internal/infrastructure/auth"
)

func TestRequireAuth(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	token, _, err := manager.Generate("admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	expired, _, _ := auth.NewJWTManager("secret", -time.Minute).Generate("admin")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantUser: "admin"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			handler := RequireAuth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UsernameFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/transactions/history", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if gotUser != tt.wantUser {
				t.Fatalf("expected user %q, got %q", tt.wantUser, gotUser)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	token, _, _ := manager.Generate("alice")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "anonymous", header: "", wantStatus: http.StatusOK},
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantUser: "alice"},
		{name: "invalid token", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			handler := OptionalAuth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UsernameFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/transfer", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if gotUser != tt.wantUser {
				t.Fatalf("expected user %q, got %q", tt.wantUser, gotUser)
			}
		})
	}
}
