package domain

import "time"

// Entry is a single daily work-log record. UserID is set at creation and
// immutable afterwards; AuthorName is denormalized onto read views by the
// repository and is never written back.
type Entry struct {
	ID               string
	UserID           string
	AuthorName       string
	WorkDone         string
	Blockers         string
	Learnings        string
	GithubCommitLink string
	Date             time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OwnedBy reports whether userID is the entry's owner, the only identity
// permitted to mutate or delete it.
func (e *Entry) OwnedBy(userID string) bool {
	return e.UserID == userID
}
