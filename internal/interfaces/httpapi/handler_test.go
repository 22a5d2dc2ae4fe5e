package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"foccacia/internal/infrastructure/repository/memory"
	"foccacia/internal/usecase"
)

type fakeLookup struct{}

func (fakeLookup) GetTeamDetails(_ context.Context, teamID int64) (usecase.TeamFacts, error) {
	if teamID != 33 {
		return usecase.TeamFacts{}, errors.New("unknown team")
	}
	return usecase.TeamFacts{TeamName: "Manchester United", StadiumName: "Old Trafford"}, nil
}

func (fakeLookup) GetLeagueDetails(_ context.Context, leagueID int64) (usecase.LeagueFacts, error) {
	if leagueID != 39 {
		return usecase.LeagueFacts{}, errors.New("unknown league")
	}
	return usecase.LeagueFacts{Name: "Premier League"}, nil
}

func (fakeLookup) GetTeamsByName(_ context.Context, name string) ([]usecase.TeamSummary, error) {
	if !strings.Contains(strings.ToLower(name), "manchester") {
		return []usecase.TeamSummary{}, nil
	}
	return []usecase.TeamSummary{
		{TeamID: 33, Name: "Manchester United", StadiumName: "Old Trafford"},
	}, nil
}

func (fakeLookup) GetLeaguesByTeam(_ context.Context, _ string) ([]usecase.LeagueSeason, error) {
	return []usecase.LeagueSeason{{LeagueName: "Premier League", Season: 2024}}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	groupSvc := usecase.NewGroupService(memory.NewGroupRepository(), fakeLookup{}, testIDGenerator{}, logger)
	userSvc := usecase.NewUserService(memory.NewUserRepository(), logger)
	searchSvc := usecase.NewTeamSearchService(fakeLookup{}, logger, 2)

	handler := NewHandler(groupSvc, userSvc, searchSvc, logger)
	srv := httptest.NewServer(NewRouter(handler, userSvc, logger, []string{"*"}))
	t.Cleanup(srv.Close)

	return srv
}

type testIDGenerator struct{}

func (testIDGenerator) NewID() (string, error) {
	return "abc123", nil
}

func doRequest(t *testing.T, method, url, token, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, raw
}

func registerTestUser(t *testing.T, baseURL, username string) string {
	t.Helper()

	resp, raw := doRequest(t, http.MethodPost, baseURL+"/v1/users", "", `{"username":"`+username+`"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register user: expected 201, got %d body=%s", resp.StatusCode, raw)
	}

	var out struct {
		APIVersion string  `json:"apiVersion"`
		Data       userDTO `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if out.APIVersion != "2.0" || out.Data.Token == "" {
		t.Fatalf("unexpected register response: %s", raw)
	}

	return out.Data.Token
}

func TestRouter_GroupLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := registerTestUser(t, srv.URL, "alice")

	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/v1/groups", token,
		`{"name":"premier picks","description":"weekend watchlist"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create group: expected 201, got %d body=%s", resp.StatusCode, raw)
	}

	var created struct {
		Data groupDTO `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	groupID := created.Data.ID
	if !strings.HasPrefix(groupID, "group-") {
		t.Fatalf("expected group- prefixed id, got %q", groupID)
	}

	resp, raw = doRequest(t, http.MethodPost, srv.URL+"/v1/groups/"+groupID+"/teams", token,
		`{"teamId":33,"leagueId":39,"season":2024}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add team: expected 201, got %d body=%s", resp.StatusCode, raw)
	}

	var updated struct {
		Data groupDTO `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &updated); err != nil {
		t.Fatalf("decode add-team response: %v", err)
	}
	if len(updated.Data.Teams) != 1 {
		t.Fatalf("expected 1 membership, got %+v", updated.Data.Teams)
	}
	membership := updated.Data.Teams[0]
	if membership.TeamName != "Manchester United" ||
		membership.StadiumName != "Old Trafford" ||
		membership.LeagueName != "Premier League" ||
		membership.Season != 2024 {
		t.Fatalf("unexpected membership snapshot: %+v", membership)
	}

	resp, raw = doRequest(t, http.MethodGet, srv.URL+"/v1/groups/"+groupID, token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get group: expected 200, got %d body=%s", resp.StatusCode, raw)
	}

	resp, raw = doRequest(t, http.MethodDelete, srv.URL+"/v1/groups/"+groupID+"/teams/33", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove team: expected 200, got %d body=%s", resp.StatusCode, raw)
	}

	resp, raw = doRequest(t, http.MethodDelete, srv.URL+"/v1/groups/"+groupID, token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete group: expected 200, got %d body=%s", resp.StatusCode, raw)
	}

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/v1/groups/"+groupID, token, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestRouter_AuthRequired(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/v1/groups", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp, raw := doRequest(t, http.MethodGet, srv.URL+"/v1/groups", "token-bogus", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d body=%s", resp.StatusCode, raw)
	}

	var out struct {
		Error *googleErrorBody `json:"error"`
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if out.Error == nil || out.Error.Status != "UNAUTHENTICATED" {
		t.Fatalf("unexpected error body: %s", raw)
	}
}

func TestRouter_ForeignTokenForbidden(t *testing.T) {
	srv := newTestServer(t)
	aliceToken := registerTestUser(t, srv.URL, "alice")
	bobToken := registerTestUser(t, srv.URL, "bob")

	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/v1/groups", aliceToken, `{"name":"premier picks"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create group: expected 201, got %d body=%s", resp.StatusCode, raw)
	}

	var created struct {
		Data groupDTO `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/v1/groups/"+created.Data.ID, bobToken, "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign token, got %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/v1/groups/"+created.Data.ID, bobToken, "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign delete, got %d", resp.StatusCode)
	}
}

func TestRouter_DuplicateUsernameConflict(t *testing.T) {
	srv := newTestServer(t)
	registerTestUser(t, srv.URL, "alice")

	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/v1/users", "", `{"username":"alice"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d body=%s", resp.StatusCode, raw)
	}
}

func TestRouter_UnknownFieldsRejected(t *testing.T) {
	srv := newTestServer(t)
	token := registerTestUser(t, srv.URL, "alice")

	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/v1/groups", token,
		`{"name":"premier picks","surprise":true}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d body=%s", resp.StatusCode, raw)
	}
}

func TestRouter_TeamSearch(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doRequest(t, http.MethodGet, srv.URL+"/v1/teams?name=manchester", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search teams: expected 200, got %d body=%s", resp.StatusCode, raw)
	}

	var teams struct {
		Data []teamSummaryDTO `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &teams); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	if len(teams.Data) != 1 || teams.Data[0].Name != "Manchester United" {
		t.Fatalf("unexpected search result: %s", raw)
	}

	resp, raw = doRequest(t, http.MethodGet, srv.URL+"/v1/teams/details?name=manchester", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search details: expected 200, got %d body=%s", resp.StatusCode, raw)
	}

	var details struct {
		Data []teamSearchResultDTO `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &details); err != nil {
		t.Fatalf("decode details response: %v", err)
	}
	if len(details.Data) != 1 || len(details.Data[0].Leagues) != 1 {
		t.Fatalf("unexpected details result: %s", raw)
	}

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/v1/teams/details?name=nonexistent", "", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for no matches, got %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/v1/teams", "", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", resp.StatusCode)
	}
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doRequest(t, http.MethodGet, srv.URL+"/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from healthz, got %d body=%s", resp.StatusCode, raw)
	}
}
