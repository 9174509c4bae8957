package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/bankctl/internal/domain"
)

// AuthUseCase exchanges credentials for bearer tokens.
type AuthUseCase struct {
	userRepo UserRepository
	tokens   TokenIssuer
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(userRepo UserRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Authenticate checks the password and issues a token.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, password string) (string, time.Time, error) {
	if err := domain.ValidateCredentials(username, password); err != nil {
		return "", time.Time{}, domain.ErrInvalidCredential
	}

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Unknown users look like wrong passwords.
			return "", time.Time{}, domain.ErrInvalidCredential
		}
		return "", time.Time{}, err
	}

	if !checkPassword(password, user.HashedPassword) {
		return "", time.Time{}, domain.ErrInvalidCredential
	}

	return uc.tokens.Generate(user.Username)
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// checkPassword checks if password matches hash
func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
