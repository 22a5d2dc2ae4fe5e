package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"foccacia/internal/domain/group"
	"foccacia/internal/usecase"
)

type Handler struct {
	groupService      *usecase.GroupService
	userService       *usecase.UserService
	teamSearchService *usecase.TeamSearchService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	groupService *usecase.GroupService,
	userService *usecase.UserService,
	teamSearchService *usecase.TeamSearchService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		groupService:      groupService,
		userService:       userService,
		teamSearchService: teamSearchService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type registerUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

type createGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type updateGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type addTeamRequest struct {
	TeamID   int64 `json:"teamId" validate:"required,gt=0"`
	LeagueID int64 `json:"leagueId" validate:"required,gt=0"`
	Season   int   `json:"season" validate:"required,gt=0"`
}

type userDTO struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type groupDTO struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Teams       []teamMembershipDTO `json:"teams"`
}

type groupDetailsDTO struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Teams       []teamMembershipDTO `json:"teams"`
}

type teamMembershipDTO struct {
	TeamID      int64  `json:"teamId"`
	TeamName    string `json:"teamName"`
	StadiumName string `json:"stadiumName"`
	LeagueName  string `json:"leagueName"`
	Season      int    `json:"season"`
}

type teamSummaryDTO struct {
	TeamID      int64  `json:"teamId"`
	Name        string `json:"name"`
	StadiumName string `json:"stadiumName"`
}

type leagueSeasonDTO struct {
	LeagueName string `json:"leagueName"`
	Season     int    `json:"season"`
}

type teamSearchResultDTO struct {
	TeamID      int64             `json:"teamId"`
	TeamName    string            `json:"teamName"`
	StadiumName string            `json:"stadiumName"`
	Leagues     []leagueSeasonDTO `json:"leagues"`
}

func groupToDTO(g group.Group) groupDTO {
	return groupDTO{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Teams:       membershipsToDTO(g.Teams),
	}
}

func membershipsToDTO(memberships []group.TeamMembership) []teamMembershipDTO {
	items := make([]teamMembershipDTO, 0, len(memberships))
	for _, membership := range memberships {
		items = append(items, teamMembershipDTO{
			TeamID:      membership.TeamID,
			TeamName:    membership.TeamName,
			StadiumName: membership.StadiumName,
			LeagueName:  membership.LeagueName,
			Season:      membership.Season,
		})
	}
	return items
}

func leagueSeasonsToDTO(seasons []usecase.LeagueSeason) []leagueSeasonDTO {
	items := make([]leagueSeasonDTO, 0, len(seasons))
	for _, season := range seasons {
		items = append(items, leagueSeasonDTO{
			LeagueName: season.LeagueName,
			Season:     season.Season,
		})
	}
	return items
}
