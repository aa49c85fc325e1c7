package ports

import (
	"context"

	"github.com/devsquad/devlog-api/internal/core/domain"
)

// UpdateEntryInput is a partial entry patch: nil fields are left untouched.
// The owner reference is not patchable.
type UpdateEntryInput struct {
	WorkDone         *string
	Blockers         *string
	Learnings        *string
	GithubCommitLink *string
}

// EntryRepository defines persistence for work-log entries. Read operations
// return entries annotated with the author's display name.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	FindByID(ctx context.Context, id string) (*domain.Entry, error)
	// List returns every entry, newest date first with insertion order as
	// the tie-break for equal dates.
	List(ctx context.Context) ([]*domain.Entry, error)
	Update(ctx context.Context, id string, patch UpdateEntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}
