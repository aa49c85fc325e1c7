package service

import (
	"context"

	"github.com/devsquad/devlog-api/internal/core/domain"
	"github.com/devsquad/devlog-api/internal/core/ports"
)

// ProfileService exposes read and patch of the caller's own account.
// Password and role are not patchable through this path.
type ProfileService struct {
	users ports.UserRepository
}

func NewProfileService(users ports.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.UserView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.View(), nil
}

// Update applies a partial patch; only present fields overwrite. A changed
// email is normalized and still subject to the uniqueness invariant.
func (s *ProfileService) Update(ctx context.Context, userID string, patch ports.UpdateUserInput) (*domain.UserView, error) {
	if patch.Email != nil {
		normalized := domain.NormalizeEmail(*patch.Email)
		patch.Email = &normalized
	}

	updated, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	return updated.View(), nil
}
