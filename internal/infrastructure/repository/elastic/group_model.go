package elastic

import "foccacia/internal/domain/group"

type groupDocument struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Token       string              `json:"token"`
	Teams       []teamMembershipDoc `json:"teams"`
}

type teamMembershipDoc struct {
	TeamID      int64  `json:"teamId"`
	TeamName    string `json:"teamName"`
	StadiumName string `json:"stadiumName"`
	LeagueName  string `json:"leagueName"`
	Season      int    `json:"season"`
}

func groupToDocument(g group.Group) groupDocument {
	teams := make([]teamMembershipDoc, 0, len(g.Teams))
	for _, membership := range g.Teams {
		teams = append(teams, teamMembershipDoc{
			TeamID:      membership.TeamID,
			TeamName:    membership.TeamName,
			StadiumName: membership.StadiumName,
			LeagueName:  membership.LeagueName,
			Season:      membership.Season,
		})
	}

	return groupDocument{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Token:       g.Token,
		Teams:       teams,
	}
}

func documentToGroup(doc groupDocument) group.Group {
	teams := make([]group.TeamMembership, 0, len(doc.Teams))
	for _, membership := range doc.Teams {
		teams = append(teams, group.TeamMembership{
			TeamID:      membership.TeamID,
			TeamName:    membership.TeamName,
			StadiumName: membership.StadiumName,
			LeagueName:  membership.LeagueName,
			Season:      membership.Season,
		})
	}

	return group.Group{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Token:       doc.Token,
		Teams:       teams,
	}
}
