package group

import "fmt"

// Group is a named, token-owned collection of team memberships.
// The owning token is set at creation and never changes.
type Group struct {
	ID          string
	Name        string
	Description string
	Token       string
	Teams       []TeamMembership
}

// TeamMembership is a denormalized snapshot of a team inside one group,
// captured from the football data provider at add-time and never re-synced.
type TeamMembership struct {
	TeamID      int64
	TeamName    string
	StadiumName string
	LeagueName  string
	Season      int
}

func (g Group) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("group id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	if g.Token == "" {
		return fmt.Errorf("group token is required")
	}

	seen := make(map[int64]struct{}, len(g.Teams))
	for _, membership := range g.Teams {
		if _, ok := seen[membership.TeamID]; ok {
			return fmt.Errorf("duplicate team id %d in group", membership.TeamID)
		}
		seen[membership.TeamID] = struct{}{}
	}

	return nil
}

// HasTeam reports whether the group already holds a membership for teamID.
func (g Group) HasTeam(teamID int64) bool {
	for _, membership := range g.Teams {
		if membership.TeamID == teamID {
			return true
		}
	}
	return false
}

// Details is the owner-facing projection of a group, without id and token.
type Details struct {
	Name        string
	Description string
	Teams       []TeamMembership
}
