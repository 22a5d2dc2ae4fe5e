package lookup

import (
	"context"
	"fmt"
	"time"

	"foccacia/internal/platform/cache"
	"foccacia/internal/usecase"
)

// Cached decorates a TeamLookup with an in-process TTL cache. Provider data
// changes rarely next to how often memberships reference it, so repeated
// lookups for the same team or league are served locally.
type Cached struct {
	next  usecase.TeamLookup
	store *cache.Store
}

func NewCached(next usecase.TeamLookup, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		store: cache.NewStore(ttl),
	}
}

func (c *Cached) GetTeamDetails(ctx context.Context, teamID int64) (usecase.TeamFacts, error) {
	key := fmt.Sprintf("team:%d", teamID)
	value, err := c.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return c.next.GetTeamDetails(ctx, teamID)
	})
	if err != nil {
		return usecase.TeamFacts{}, err
	}

	return value.(usecase.TeamFacts), nil
}

func (c *Cached) GetLeagueDetails(ctx context.Context, leagueID int64) (usecase.LeagueFacts, error) {
	key := fmt.Sprintf("league:%d", leagueID)
	value, err := c.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return c.next.GetLeagueDetails(ctx, leagueID)
	})
	if err != nil {
		return usecase.LeagueFacts{}, err
	}

	return value.(usecase.LeagueFacts), nil
}

func (c *Cached) GetTeamsByName(ctx context.Context, name string) ([]usecase.TeamSummary, error) {
	key := "teams-by-name:" + name
	value, err := c.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return c.next.GetTeamsByName(ctx, name)
	})
	if err != nil {
		return nil, err
	}

	return value.([]usecase.TeamSummary), nil
}

func (c *Cached) GetLeaguesByTeam(ctx context.Context, teamName string) ([]usecase.LeagueSeason, error) {
	key := "leagues-by-team:" + teamName
	value, err := c.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return c.next.GetLeaguesByTeam(ctx, teamName)
	})
	if err != nil {
		return nil, err
	}

	return value.([]usecase.LeagueSeason), nil
}
