package ports

import (
	"context"
	"time"

	"github.com/devsquad/devlog-api/internal/core/domain"
)

// CreateEntryInput carries the data for a new work-log entry. Date is
// optional; the service defaults it to the creation time.
type CreateEntryInput struct {
	WorkDone         string
	Blockers         string
	Learnings        string
	GithubCommitLink string
	Date             time.Time
}

// EntryService defines the ownership-guarded entry use cases. Reads are
// team-wide; Update and Delete are owner-only.
type EntryService interface {
	Create(ctx context.Context, input CreateEntryInput, userID string) (*domain.Entry, error)
	List(ctx context.Context) ([]*domain.Entry, error)
	Get(ctx context.Context, id string) (*domain.Entry, error)
	Update(ctx context.Context, id string, patch UpdateEntryInput, userID string) (*domain.Entry, error)
	Delete(ctx context.Context, id, userID string) error
}
