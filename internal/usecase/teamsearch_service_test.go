package usecase

import (
	"context"
	"errors"
	"testing"
)

type mapLeagueLookup struct {
	stubTeamLookup
	byTeam map[string][]LeagueSeason
}

func (m *mapLeagueLookup) GetLeaguesByTeam(_ context.Context, teamName string) ([]LeagueSeason, error) {
	seasons, ok := m.byTeam[teamName]
	if !ok {
		return nil, errors.New("unknown team " + teamName)
	}
	return seasons, nil
}

func newSearchService(lookup TeamLookup) *TeamSearchService {
	return NewTeamSearchService(lookup, discardLogger(), 2)
}

func TestTeamSearchService_SearchTeamsByName(t *testing.T) {
	lookup := &stubTeamLookup{
		teams: []TeamSummary{
			{TeamID: 33, Name: "Manchester United", StadiumName: "Old Trafford"},
			{TeamID: 50, Name: "Manchester City", StadiumName: "Etihad Stadium"},
		},
	}
	svc := newSearchService(lookup)

	teams, err := svc.SearchTeamsByName(t.Context(), "manchester")
	if err != nil {
		t.Fatalf("SearchTeamsByName returned error: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}

	if _, err := svc.SearchTeamsByName(t.Context(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestTeamSearchService_SearchTeamsByName_LookupFailure(t *testing.T) {
	lookup := &stubTeamLookup{teamsErr: errors.New("provider quota exceeded")}
	svc := newSearchService(lookup)

	if _, err := svc.SearchTeamsByName(t.Context(), "manchester"); !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
}

func TestTeamSearchService_SearchLeaguesByTeam(t *testing.T) {
	lookup := &stubTeamLookup{
		seasons: []LeagueSeason{
			{LeagueName: "Premier League", Season: 2023},
			{LeagueName: "Premier League", Season: 2024},
		},
	}
	svc := newSearchService(lookup)

	leagues, err := svc.SearchLeaguesByTeam(t.Context(), "Manchester United")
	if err != nil {
		t.Fatalf("SearchLeaguesByTeam returned error: %v", err)
	}
	if len(leagues) != 2 || leagues[1].Season != 2024 {
		t.Fatalf("unexpected league seasons: %+v", leagues)
	}
}

func TestTeamSearchService_SearchTeamDetails(t *testing.T) {
	lookup := &mapLeagueLookup{
		stubTeamLookup: stubTeamLookup{
			teams: []TeamSummary{
				{TeamID: 33, Name: "Manchester United", StadiumName: "Old Trafford"},
				{TeamID: 50, Name: "Manchester City", StadiumName: "Etihad Stadium"},
			},
		},
		byTeam: map[string][]LeagueSeason{
			"Manchester United": {{LeagueName: "Premier League", Season: 2024}},
			"Manchester City": {
				{LeagueName: "Premier League", Season: 2024},
				{LeagueName: "Champions League", Season: 2024},
			},
		},
	}
	svc := newSearchService(lookup)

	results, err := svc.SearchTeamDetails(t.Context(), "manchester")
	if err != nil {
		t.Fatalf("SearchTeamDetails returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].TeamName != "Manchester United" || len(results[0].Leagues) != 1 {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].TeamName != "Manchester City" || len(results[1].Leagues) != 2 {
		t.Fatalf("unexpected second result: %+v", results[1])
	}
	if results[0].StadiumName != "Old Trafford" {
		t.Fatalf("expected stadium carried over, got %q", results[0].StadiumName)
	}
}

func TestTeamSearchService_SearchTeamDetails_NoMatches(t *testing.T) {
	svc := newSearchService(&stubTeamLookup{teams: []TeamSummary{}})

	if _, err := svc.SearchTeamDetails(t.Context(), "nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty match set, got %v", err)
	}
}

func TestTeamSearchService_SearchTeamDetails_LeagueLookupFailure(t *testing.T) {
	lookup := &mapLeagueLookup{
		stubTeamLookup: stubTeamLookup{
			teams: []TeamSummary{{TeamID: 33, Name: "Manchester United", StadiumName: "Old Trafford"}},
		},
		byTeam: map[string][]LeagueSeason{},
	}
	svc := newSearchService(lookup)

	if _, err := svc.SearchTeamDetails(t.Context(), "manchester"); !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
}
