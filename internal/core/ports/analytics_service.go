package ports

import "context"

// UserStats is the per-user usage summary.
type UserStats struct {
	TotalEntries int64 `json:"totalEntries"`
}

// Member is a single row of the team overview. No password hash, ever.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Team  string `json:"team"`
}

// TeamOverview lists known users. Despite the name it is not filtered by
// team label; it is a bounded listing of everyone.
type TeamOverview struct {
	Members []Member `json:"members"`
}

// AnalyticsService derives read-only counts and listings from the stores.
type AnalyticsService interface {
	UserStats(ctx context.Context, userID string) (*UserStats, error)
	TeamOverview(ctx context.Context) (*TeamOverview, error)
}
