package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devsquad/devlog-api/internal/core/ports"
)

const (
	teamOverviewLimit = 50
	analyticsCacheTTL = 30 * time.Second
)

// AnalyticsCache abstracts the short-TTL read cache (Redis). A cache failure
// is never fatal: reads fall through to the stores.
type AnalyticsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// AnalyticsService derives usage counts and the member listing.
type AnalyticsService struct {
	entries ports.EntryRepository
	users   ports.UserRepository
	cache   AnalyticsCache
	log     zerolog.Logger
}

func NewAnalyticsService(entries ports.EntryRepository, users ports.UserRepository, cache AnalyticsCache, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{entries: entries, users: users, cache: cache, log: log}
}

// UserStats counts the entries owned by userID.
func (s *AnalyticsService) UserStats(ctx context.Context, userID string) (*ports.UserStats, error) {
	key := "analytics:stats:" + userID

	var cached ports.UserStats
	if hit := s.cacheGet(ctx, key, &cached); hit {
		return &cached, nil
	}

	total, err := s.entries.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &ports.UserStats{TotalEntries: total}
	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// TeamOverview lists up to 50 known users. Not filtered by team label.
func (s *AnalyticsService) TeamOverview(ctx context.Context) (*ports.TeamOverview, error) {
	const key = "analytics:team"

	var cached ports.TeamOverview
	if hit := s.cacheGet(ctx, key, &cached); hit {
		return &cached, nil
	}

	users, err := s.users.List(ctx, teamOverviewLimit)
	if err != nil {
		return nil, err
	}

	members := make([]ports.Member, 0, len(users))
	for _, u := range users {
		members = append(members, ports.Member{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Team:  u.Team,
		})
	}

	overview := &ports.TeamOverview{Members: members}
	s.cacheSet(ctx, key, overview)
	return overview, nil
}

func (s *AnalyticsService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("analytics cache read failed")
		return false
	}
	return hit
}

func (s *AnalyticsService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, analyticsCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("analytics cache write failed")
	}
}
