package ports

import (
	"context"

	"github.com/devsquad/devlog-api/internal/core/domain"
)

// UpdateUserInput is a partial profile patch: nil fields are left untouched.
// Password and role are deliberately absent — no code path may alter them
// through a profile update.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Team  *string
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken when the
	// normalized email already exists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns the user including the password hash. Login only.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UpdateUserInput) (*domain.User, error)
	// List returns up to limit users with the password hash omitted.
	List(ctx context.Context, limit int64) ([]*domain.User, error)
}
