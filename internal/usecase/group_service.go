package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"foccacia/internal/domain/group"
	idgen "foccacia/internal/platform/id"
)

// CreateGroupInput is the incoming payload for group creation.
type CreateGroupInput struct {
	Name        string
	Description string
	Token       string
}

type EditGroupInput struct {
	GroupID     string
	Name        string
	Description string
	Token       string
}

type AddTeamInput struct {
	GroupID  string
	TeamID   int64
	LeagueID int64
	Season   int
	Token    string
}

// GroupService owns group CRUD and team-membership mutations. Ownership is
// enforced here once, so both storage backends share identical authorization.
type GroupService struct {
	groupRepo group.Repository
	lookup    TeamLookup
	idGen     idgen.Generator
	logger    *slog.Logger
}

func NewGroupService(
	groupRepo group.Repository,
	lookup TeamLookup,
	idGen idgen.Generator,
	logger *slog.Logger,
) *GroupService {
	if logger == nil {
		logger = slog.Default()
	}

	return &GroupService{
		groupRepo: groupRepo,
		lookup:    lookup,
		idGen:     idGen,
		logger:    logger,
	}
}

func (s *GroupService) CreateGroup(ctx context.Context, input CreateGroupInput) (group.Group, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Token = strings.TrimSpace(input.Token)

	if input.Name == "" {
		return group.Group{}, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}
	if input.Token == "" {
		return group.Group{}, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	rawID, err := s.idGen.NewID()
	if err != nil {
		return group.Group{}, fmt.Errorf("generate group id: %w", err)
	}

	created := group.Group{
		ID:          "group-" + rawID,
		Name:        input.Name,
		Description: input.Description,
		Token:       input.Token,
		Teams:       []group.TeamMembership{},
	}

	if err := created.Validate(); err != nil {
		return group.Group{}, fmt.Errorf("validate group: %w", err)
	}

	if err := s.groupRepo.Create(ctx, created); err != nil {
		return group.Group{}, storeFailure("create group", err)
	}

	s.logger.InfoContext(ctx, "group created", "group_id", created.ID, "name", created.Name)

	return created, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, token, groupID string) error {
	if _, err := s.ownedGroup(ctx, groupID, token); err != nil {
		return err
	}

	found, err := s.groupRepo.Delete(ctx, groupID)
	if err != nil {
		return storeFailure("delete group", err)
	}
	if !found {
		return fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}

	s.logger.InfoContext(ctx, "group deleted", "group_id", groupID)

	return nil
}

func (s *GroupService) EditGroup(ctx context.Context, input EditGroupInput) (group.Group, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	if input.Name == "" {
		return group.Group{}, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	owned, err := s.ownedGroup(ctx, input.GroupID, input.Token)
	if err != nil {
		return group.Group{}, err
	}

	owned.Name = input.Name
	owned.Description = input.Description

	if err := s.groupRepo.Update(ctx, owned); err != nil {
		return group.Group{}, storeFailure("update group", err)
	}

	return owned, nil
}

func (s *GroupService) ListGroups(ctx context.Context, token string) ([]group.Group, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	groups, err := s.groupRepo.ListByToken(ctx, token)
	if err != nil {
		return nil, storeFailure("list groups", err)
	}

	return groups, nil
}

func (s *GroupService) GetGroupDetails(ctx context.Context, groupID, token string) (group.Details, error) {
	owned, err := s.ownedGroup(ctx, groupID, token)
	if err != nil {
		return group.Details{}, err
	}

	return group.Details{
		Name:        owned.Name,
		Description: owned.Description,
		Teams:       owned.Teams,
	}, nil
}

// AddTeamToGroup snapshots team and league facts from the lookup provider and
// appends a membership. The read-modify-write around the lookup calls is not
// serialized per group; concurrent mutators race last-writer-wins.
func (s *GroupService) AddTeamToGroup(ctx context.Context, input AddTeamInput) (group.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupService.AddTeamToGroup")
	defer span.End()

	if input.TeamID <= 0 {
		return group.Group{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}
	if input.LeagueID <= 0 {
		return group.Group{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	owned, err := s.ownedGroup(ctx, input.GroupID, input.Token)
	if err != nil {
		return group.Group{}, err
	}

	if owned.HasTeam(input.TeamID) {
		return group.Group{}, fmt.Errorf("%w: team=%d already in group=%s", ErrConflict, input.TeamID, owned.ID)
	}

	var teamFacts TeamFacts
	var leagueFacts LeagueFacts

	lookups := pool.New().WithContext(ctx).WithCancelOnError()
	lookups.Go(func(ctx context.Context) error {
		facts, err := s.lookup.GetTeamDetails(ctx, input.TeamID)
		if err != nil {
			return fmt.Errorf("%w: team id=%d: %v", ErrLookupFailed, input.TeamID, err)
		}
		teamFacts = facts
		return nil
	})
	lookups.Go(func(ctx context.Context) error {
		facts, err := s.lookup.GetLeagueDetails(ctx, input.LeagueID)
		if err != nil {
			return fmt.Errorf("%w: league id=%d: %v", ErrLookupFailed, input.LeagueID, err)
		}
		leagueFacts = facts
		return nil
	})
	if err := lookups.Wait(); err != nil {
		return group.Group{}, err
	}

	owned.Teams = append(owned.Teams, group.TeamMembership{
		TeamID:      input.TeamID,
		TeamName:    teamFacts.TeamName,
		StadiumName: teamFacts.StadiumName,
		LeagueName:  leagueFacts.Name,
		Season:      input.Season,
	})

	if err := s.groupRepo.Update(ctx, owned); err != nil {
		return group.Group{}, storeFailure("update group", err)
	}

	s.logger.InfoContext(ctx, "team added to group",
		"group_id", owned.ID,
		"team_id", input.TeamID,
		"team_name", teamFacts.TeamName,
		"league_name", leagueFacts.Name,
		"season", input.Season,
	)

	return owned, nil
}

func (s *GroupService) RemoveTeamFromGroup(ctx context.Context, groupID string, teamID int64, token string) (group.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupService.RemoveTeamFromGroup")
	defer span.End()

	owned, err := s.ownedGroup(ctx, groupID, token)
	if err != nil {
		return group.Group{}, err
	}

	index := -1
	for i, membership := range owned.Teams {
		if membership.TeamID == teamID {
			index = i
			break
		}
	}
	if index < 0 {
		return group.Group{}, fmt.Errorf("%w: team=%d not in group=%s", ErrNotFound, teamID, owned.ID)
	}

	owned.Teams = append(owned.Teams[:index], owned.Teams[index+1:]...)

	if err := s.groupRepo.Update(ctx, owned); err != nil {
		return group.Group{}, storeFailure("update group", err)
	}

	s.logger.InfoContext(ctx, "team removed from group", "group_id", owned.ID, "team_id", teamID)

	return owned, nil
}

// CheckOwnership fails with ErrNotFound when the group is absent and
// ErrForbidden when the token does not own it.
func (s *GroupService) CheckOwnership(ctx context.Context, groupID, token string) error {
	_, err := s.ownedGroup(ctx, groupID, token)
	return err
}

func (s *GroupService) ownedGroup(ctx context.Context, groupID, token string) (group.Group, error) {
	groupID = strings.TrimSpace(groupID)
	token = strings.TrimSpace(token)

	if groupID == "" {
		return group.Group{}, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	if token == "" {
		return group.Group{}, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	owned, exists, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return group.Group{}, storeFailure("get group by id", err)
	}
	if !exists {
		return group.Group{}, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}
	if owned.Token != token {
		return group.Group{}, fmt.Errorf("%w: group=%s", ErrForbidden, groupID)
	}

	return owned, nil
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
