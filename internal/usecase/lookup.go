package usecase

import "context"

// TeamFacts is the point-in-time team snapshot used to build a membership.
type TeamFacts struct {
	TeamName    string
	StadiumName string
}

type LeagueFacts struct {
	Name string
}

type TeamSummary struct {
	TeamID      int64
	Name        string
	StadiumName string
}

type LeagueSeason struct {
	LeagueName string
	Season     int
}

// TeamLookup resolves team and league identity from the football data provider.
// Implementations fail when the id or name resolves to nothing.
type TeamLookup interface {
	GetTeamDetails(ctx context.Context, teamID int64) (TeamFacts, error)
	GetLeagueDetails(ctx context.Context, leagueID int64) (LeagueFacts, error)
	GetTeamsByName(ctx context.Context, name string) ([]TeamSummary, error)
	GetLeaguesByTeam(ctx context.Context, teamName string) ([]LeagueSeason, error)
}
