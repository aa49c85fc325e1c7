package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devsquad/devlog-api/internal/core/domain"
	"github.com/devsquad/devlog-api/internal/core/ports"
)

// EntryService implements work-log entry CRUD with the author-only mutation
// invariant. Reads are team-wide: the feed is visible to every authenticated
// user, so single-entry reads are not ownership-checked either.
type EntryService struct {
	entries ports.EntryRepository
	log     zerolog.Logger
}

func NewEntryService(entries ports.EntryRepository, log zerolog.Logger) *EntryService {
	return &EntryService{entries: entries, log: log}
}

// Create persists a new entry owned by userID. A zero Date defaults to now.
func (s *EntryService) Create(ctx context.Context, input ports.CreateEntryInput, userID string) (*domain.Entry, error) {
	now := time.Now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	entry := &domain.Entry{
		UserID:           userID,
		WorkDone:         input.WorkDone,
		Blockers:         input.Blockers,
		Learnings:        input.Learnings,
		GithubCommitLink: input.GithubCommitLink,
		Date:             date,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to create entry")
		return nil, err
	}

	s.log.Info().Str("entry_id", created.ID).Str("user_id", userID).Msg("entry created")
	return created, nil
}

// List returns the team feed, newest date first.
func (s *EntryService) List(ctx context.Context) ([]*domain.Entry, error) {
	return s.entries.List(ctx)
}

// Get returns a single entry by id, visible to any authenticated user.
func (s *EntryService) Get(ctx context.Context, id string) (*domain.Entry, error) {
	return s.entries.FindByID(ctx, id)
}

// Update applies a partial patch to an entry after the ownership check.
// The check and the write are separate store operations; a concurrent owner
// change is impossible (owner is immutable), so the gap is harmless.
func (s *EntryService) Update(ctx context.Context, id string, patch ports.UpdateEntryInput, userID string) (*domain.Entry, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.entries.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("entry_id", id).Str("user_id", userID).Msg("entry updated")
	return updated, nil
}

// Delete removes an entry after the ownership check.
func (s *EntryService) Delete(ctx context.Context, id, userID string) error {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !entry.OwnedBy(userID) {
		return domain.ErrForbidden
	}

	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("entry_id", id).Str("user_id", userID).Msg("entry deleted")
	return nil
}
