package redis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	running := miniredis.RunT(t)
	stopped := miniredis.RunT(t)
	stoppedURL := fmt.Sprintf("redis://%s", stopped.Addr())
	stopped.Close()

	tests := []struct {
		name      string
		url       string
		wantErr   bool
		errSubstr string
	}{
		{name: "reachable server", url: fmt.Sprintf("redis://%s/0", running.Addr())},
		{name: "invalid url", url: "://bad-url", wantErr: true, errSubstr: "parse"},
		{name: "server down", url: stoppedURL, wantErr: true, errSubstr: "ping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Fatalf("expected error containing %q, got %v", tt.errSubstr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected client, got error: %v", err)
			}
			defer client.Close()

			if err := client.Ping(context.Background()).Err(); err != nil {
				t.Fatalf("ping failed: %v", err)
			}
		})
	}
}
