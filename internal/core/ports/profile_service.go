package ports

import (
	"context"

	"github.com/devsquad/devlog-api/internal/core/domain"
)

// ProfileService exposes the authenticated user's own record.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.UserView, error)
	Update(ctx context.Context, userID string, patch UpdateUserInput) (*domain.UserView, error)
}
