package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const defaultSearchWorkers = 4

// TeamSearchResult is a team matched by name, hydrated with the leagues and
// seasons it plays in.
type TeamSearchResult struct {
	TeamID      int64
	TeamName    string
	StadiumName string
	Leagues     []LeagueSeason
}

// TeamSearchService exposes the provider-backed search surface: teams by name,
// leagues by team, and the enriched combination of both.
type TeamSearchService struct {
	lookup     TeamLookup
	logger     *slog.Logger
	maxWorkers int
}

func NewTeamSearchService(lookup TeamLookup, logger *slog.Logger, maxWorkers int) *TeamSearchService {
	if logger == nil {
		logger = slog.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultSearchWorkers
	}

	return &TeamSearchService{
		lookup:     lookup,
		logger:     logger,
		maxWorkers: maxWorkers,
	}
}

func (s *TeamSearchService) SearchTeamsByName(ctx context.Context, name string) ([]TeamSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	teams, err := s.lookup.GetTeamsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: teams by name=%s: %v", ErrLookupFailed, name, err)
	}

	return teams, nil
}

func (s *TeamSearchService) SearchLeaguesByTeam(ctx context.Context, teamName string) ([]LeagueSeason, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	leagues, err := s.lookup.GetLeaguesByTeam(ctx, teamName)
	if err != nil {
		return nil, fmt.Errorf("%w: leagues by team=%s: %v", ErrLookupFailed, teamName, err)
	}

	return leagues, nil
}

// SearchTeamDetails matches teams by name and hydrates every match with its
// league seasons, fanning the league lookups out over a bounded worker pool.
func (s *TeamSearchService) SearchTeamDetails(ctx context.Context, name string) ([]TeamSearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamSearchService.SearchTeamDetails")
	defer span.End()

	teams, err := s.SearchTeamsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: no teams match name=%s", ErrNotFound, name)
	}

	workers := s.maxWorkers
	if workers > len(teams) {
		workers = len(teams)
	}

	workerPool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create search worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make([]TeamSearchResult, len(teams))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	recordErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for i, summary := range teams {
		i, summary := i, summary
		wg.Add(1)

		task := func() {
			defer wg.Done()

			leagues, err := s.lookup.GetLeaguesByTeam(ctx, summary.Name)
			if err != nil {
				recordErr(fmt.Errorf("%w: leagues by team=%s: %v", ErrLookupFailed, summary.Name, err))
				return
			}

			results[i] = TeamSearchResult{
				TeamID:      summary.TeamID,
				TeamName:    summary.Name,
				StadiumName: summary.StadiumName,
				Leagues:     leagues,
			}
		}

		if err := workerPool.Submit(task); err != nil {
			wg.Done()
			recordErr(fmt.Errorf("submit search task: %w", err))
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return results, nil
}
