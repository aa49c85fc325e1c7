package ports

import (
	"context"

	"github.com/devsquad/devlog-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements the registration and login use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.UserView, error)
	Login(ctx context.Context, email, password string) (string, *domain.UserView, error)
}
