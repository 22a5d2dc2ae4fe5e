package footballapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"foccacia/internal/platform/logging"
	"foccacia/internal/platform/resilience"
	"foccacia/internal/usecase"
)

const defaultBaseURL = "https://v3.football.api-sports.io"

var errFootballAPITransient = crerr.New("football api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the API-Football provider. It implements usecase.TeamLookup:
// team and league identity resolution for memberships and the search surface.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) GetTeamDetails(ctx context.Context, teamID int64) (usecase.TeamFacts, error) {
	if teamID <= 0 {
		return usecase.TeamFacts{}, fmt.Errorf("team id must be greater than zero")
	}

	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/teams", map[string]string{"id": strconv.FormatInt(teamID, 10)}, &envelope); err != nil {
		return usecase.TeamFacts{}, fmt.Errorf("fetch team team_id=%d: %w", teamID, err)
	}
	if len(envelope.Response) == 0 {
		return usecase.TeamFacts{}, fmt.Errorf("team %d not found in provider", teamID)
	}

	item := envelope.Response[0]
	return usecase.TeamFacts{
		TeamName:    strings.TrimSpace(item.Team.Name),
		StadiumName: strings.TrimSpace(item.Venue.Name),
	}, nil
}

func (c *Client) GetLeagueDetails(ctx context.Context, leagueID int64) (usecase.LeagueFacts, error) {
	if leagueID <= 0 {
		return usecase.LeagueFacts{}, fmt.Errorf("league id must be greater than zero")
	}

	var envelope leaguesEnvelope
	if err := c.doJSON(ctx, "/leagues", map[string]string{"id": strconv.FormatInt(leagueID, 10)}, &envelope); err != nil {
		return usecase.LeagueFacts{}, fmt.Errorf("fetch league league_id=%d: %w", leagueID, err)
	}
	if len(envelope.Response) == 0 {
		return usecase.LeagueFacts{}, fmt.Errorf("league %d not found in provider", leagueID)
	}

	return usecase.LeagueFacts{
		Name: strings.TrimSpace(envelope.Response[0].League.Name),
	}, nil
}

func (c *Client) GetTeamsByName(ctx context.Context, name string) ([]usecase.TeamSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("team name is required")
	}

	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/teams", map[string]string{"name": name}, &envelope); err != nil {
		return nil, fmt.Errorf("search teams name=%q: %w", name, err)
	}

	out := make([]usecase.TeamSummary, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.Team.ID <= 0 {
			continue
		}
		out = append(out, usecase.TeamSummary{
			TeamID:      item.Team.ID,
			Name:        strings.TrimSpace(item.Team.Name),
			StadiumName: strings.TrimSpace(item.Venue.Name),
		})
	}

	return out, nil
}

// GetLeaguesByTeam expands every league the named team played in into one row
// per covered season.
func (c *Client) GetLeaguesByTeam(ctx context.Context, teamName string) ([]usecase.LeagueSeason, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("team name is required")
	}

	teams, err := c.GetTeamsByName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return []usecase.LeagueSeason{}, nil
	}

	var envelope leaguesEnvelope
	query := map[string]string{"team": strconv.FormatInt(teams[0].TeamID, 10)}
	if err := c.doJSON(ctx, "/leagues", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch leagues team=%q: %w", teamName, err)
	}

	out := make([]usecase.LeagueSeason, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		leagueName := strings.TrimSpace(item.League.Name)
		if leagueName == "" {
			continue
		}
		for _, season := range item.Seasons {
			if season.Year <= 0 {
				continue
			}
			out = append(out, usecase.LeagueSeason{
				LeagueName: leagueName,
				Season:     season.Year,
			})
		}
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football api circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("football data provider is temporarily unavailable: %w", err)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFootballAPITransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-apisports-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFootballAPITransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballAPITransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				if providerErr := providerErrorText(raw); providerErr != "" {
					// API-Football reports auth and quota failures inside a
					// 200 envelope.
					return nil, fmt.Errorf("provider error: %s", providerErr)
				}
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFootballAPITransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "football api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(body []byte) string {
	const maxLen = 512
	if len(body) <= maxLen {
		return string(body)
	}
	return string(body[:maxLen]) + "..."
}
