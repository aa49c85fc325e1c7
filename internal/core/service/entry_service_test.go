package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devsquad/devlog-api/internal/core/domain"
	"github.com/devsquad/devlog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubEntryRepo struct {
	entries map[string]*domain.Entry
	order   []string // insertion order, for the equal-date tie-break
	nextID  int
}

func newStubEntryRepo() *stubEntryRepo {
	return &stubEntryRepo{entries: make(map[string]*domain.Entry)}
}

func cloneEntry(e *domain.Entry) *domain.Entry {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEntryRepo) Create(_ context.Context, entry *domain.Entry) (*domain.Entry, error) {
	r.nextID++
	created := cloneEntry(entry)
	created.ID = fmt.Sprintf("entry_%d", r.nextID)
	created.AuthorName = "Author " + created.UserID
	r.entries[created.ID] = created
	r.order = append(r.order, created.ID)
	return cloneEntry(created), nil
}

func (r *stubEntryRepo) FindByID(_ context.Context, id string) (*domain.Entry, error) {
	if e, ok := r.entries[id]; ok {
		return cloneEntry(e), nil
	}
	return nil, domain.ErrEntryNotFound
}

func (r *stubEntryRepo) List(_ context.Context) ([]*domain.Entry, error) {
	out := make([]*domain.Entry, 0, len(r.entries))
	// Newest insertion first, then stable-sort by date descending: equal
	// dates keep reverse insertion order, mirroring the Mongo sort on
	// {date: -1, _id: -1}.
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, cloneEntry(r.entries[r.order[i]]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *stubEntryRepo) Update(_ context.Context, id string, patch ports.UpdateEntryInput) (*domain.Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	if patch.WorkDone != nil {
		e.WorkDone = *patch.WorkDone
	}
	if patch.Blockers != nil {
		e.Blockers = *patch.Blockers
	}
	if patch.Learnings != nil {
		e.Learnings = *patch.Learnings
	}
	if patch.GithubCommitLink != nil {
		e.GithubCommitLink = *patch.GithubCommitLink
	}
	e.UpdatedAt = time.Now().UTC()
	return cloneEntry(e), nil
}

func (r *stubEntryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *stubEntryRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, e := range r.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func newEntryService(repo ports.EntryRepository) *EntryService {
	return NewEntryService(repo, zerolog.Nop())
}

func strptr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Create / Get
// ---------------------------------------------------------------------------

func TestEntryService_Create_DefaultsDateAndOwner(t *testing.T) {
	svc := newEntryService(newStubEntryRepo())

	entry, err := svc.Create(context.Background(), ports.CreateEntryInput{
		WorkDone: "A", Blockers: "B", Learnings: "C",
	}, "user_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if entry.UserID != "user_1" {
		t.Fatalf("expected owner user_1, got %s", entry.UserID)
	}
	if entry.Date.IsZero() {
		t.Fatalf("expected date to default to creation time")
	}
	if entry.AuthorName == "" {
		t.Fatalf("expected author name on the created view")
	}
}

func TestEntryService_Get_NotFound(t *testing.T) {
	svc := newEntryService(newStubEntryRepo())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryService_Get_TeamWideRead(t *testing.T) {
	repo := newStubEntryRepo()
	svc := newEntryService(repo)

	created, _ := svc.Create(context.Background(), ports.CreateEntryInput{WorkDone: "A", Blockers: "B", Learnings: "C"}, "user_1")

	// Any authenticated user may read any entry; Get takes no requester id.
	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.WorkDone != "A" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Ownership guard
// ---------------------------------------------------------------------------

func TestEntryService_Update_ForbiddenForNonOwner(t *testing.T) {
	svc := newEntryService(newStubEntryRepo())

	created, _ := svc.Create(context.Background(), ports.CreateEntryInput{WorkDone: "A", Blockers: "B", Learnings: "C"}, "jane")

	_, err := svc.Update(context.Background(), created.ID, ports.UpdateEntryInput{WorkDone: strptr("X")}, "bob")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestEntryService_Update_PartialMerge(t *testing.T) {
	svc := newEntryService(newStubEntryRepo())

	created, _ := svc.Create(context.Background(), ports.CreateEntryInput{
		WorkDone: "A", Blockers: "B", Learnings: "C", GithubCommitLink: "https://github.com/x/y/commit/abc",
	}, "jane")

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateEntryInput{WorkDone: strptr("X")}, "jane")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.WorkDone != "X" {
		t.Fatalf("expected workDone X, got %q", updated.WorkDone)
	}
	// Absent patch fields stay untouched.
	if updated.Blockers != "B" || updated.Learnings != "C" || updated.GithubCommitLink != "https://github.com/x/y/commit/abc" {
		t.Fatalf("unexpected merge result: %+v", updated)
	}
}

func TestEntryService_Update_NotFound(t *testing.T) {
	svc := newEntryService(newStubEntryRepo())

	if _, err := svc.Update(context.Background(), "missing", ports.UpdateEntryInput{}, "jane"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryService_Delete_ForbiddenForNonOwner(t *testing.T) {
	svc := newEntryService(newStubEntryRepo())

	created, _ := svc.Create(context.Background(), ports.CreateEntryInput{WorkDone: "A", Blockers: "B", Learnings: "C"}, "jane")

	if err := svc.Delete(context.Background(), created.ID, "bob"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestEntryService_Delete_OwnerThenGone(t *testing.T) {
	svc := newEntryService(newStubEntryRepo())

	created, _ := svc.Create(context.Background(), ports.CreateEntryInput{WorkDone: "A", Blockers: "B", Learnings: "C"}, "jane")

	if err := svc.Delete(context.Background(), created.ID, "jane"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound after delete, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Feed ordering
// ---------------------------------------------------------------------------

func TestEntryService_List_NewestFirstStable(t *testing.T) {
	svc := newEntryService(newStubEntryRepo())

	day := func(d int) time.Time {
		return time.Date(2026, time.August, d, 9, 0, 0, 0, time.UTC)
	}
	mk := func(work string, date time.Time) {
		_, err := svc.Create(context.Background(), ports.CreateEntryInput{
			WorkDone: work, Blockers: "-", Learnings: "-", Date: date,
		}, "jane")
		if err != nil {
			t.Fatalf("create %s failed: %v", work, err)
		}
	}

	mk("old", day(1))
	mk("tie-first", day(2))
	mk("tie-second", day(2))
	mk("new", day(3))

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	got := make([]string, len(list))
	for i, e := range list {
		got[i] = e.WorkDone
	}
	want := []string{"new", "tie-second", "tie-first", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", got, want)
		}
	}

	// Idempotent listing: same sequence with no intervening writes.
	again, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	for i := range list {
		if again[i].ID != list[i].ID {
			t.Fatalf("listing not stable at index %d: %s vs %s", i, again[i].ID, list[i].ID)
		}
	}
}
