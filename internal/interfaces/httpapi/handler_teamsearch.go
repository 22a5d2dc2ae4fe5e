package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchTeams")
	defer span.End()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	teams, err := h.teamSearchService.SearchTeamsByName(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "search teams failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamSummaryDTO, 0, len(teams))
	for _, team := range teams {
		items = append(items, teamSummaryDTO{
			TeamID:      team.TeamID,
			Name:        team.Name,
			StadiumName: team.StadiumName,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SearchTeamDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchTeamDetails")
	defer span.End()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	results, err := h.teamSearchService.SearchTeamDetails(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "search team details failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamSearchResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, teamSearchResultDTO{
			TeamID:      result.TeamID,
			TeamName:    result.TeamName,
			StadiumName: result.StadiumName,
			Leagues:     leagueSeasonsToDTO(result.Leagues),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SearchLeaguesByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchLeaguesByTeam")
	defer span.End()

	teamName := strings.TrimSpace(r.URL.Query().Get("team"))
	leagues, err := h.teamSearchService.SearchLeaguesByTeam(ctx, teamName)
	if err != nil {
		h.logger.WarnContext(ctx, "search leagues by team failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueSeasonsToDTO(leagues))
}
