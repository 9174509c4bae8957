package banking

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_sender.go -package=mocks

import (
	"context"

	"github.com/iho/bankctl/internal/infrastructure/session"
)

// Sender issues requests against the banking API.
type Sender interface {
	Send(ctx context.Context, method, path string, body any, opts ...session.RequestOption) (*session.Response, error)
	SetToken(token string)
	Close() error
}
