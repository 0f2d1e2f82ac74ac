package ports

import (
	"context"

	"github.com/branchbank/wallet-system/internal/core/domain"
)

// RegisterInput carries the data needed to open a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Authenticated is returned by a successful login.
type Authenticated struct {
	Username string
	// Token is a signed session token (HS256 JWT).
	Token string
}

// AuthService manages the account lifecycle and credential checks.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (*Authenticated, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, username string) error
}
