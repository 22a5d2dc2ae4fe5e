package footballapi

import (
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Provider wire shapes. Each listing endpoint shares the same envelope: the
// rows live under "response" and failures under "errors", which the provider
// serializes as an empty array when there are none and an object otherwise.

type teamsEnvelope struct {
	Response []teamItem `json:"response"`
}

type teamItem struct {
	Team  teamInfo  `json:"team"`
	Venue venueInfo `json:"venue"`
}

type teamInfo struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type venueInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type leaguesEnvelope struct {
	Response []leagueItem `json:"response"`
}

type leagueItem struct {
	League  leagueInfo   `json:"league"`
	Seasons []seasonInfo `json:"seasons"`
}

type leagueInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type seasonInfo struct {
	Year    int  `json:"year"`
	Current bool `json:"current"`
}

func providerErrorText(raw []byte) string {
	var probe struct {
		Errors any `json:"errors"`
	}
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return ""
	}

	switch typed := probe.Errors.(type) {
	case map[string]any:
		parts := make([]string, 0, len(typed))
		for key, value := range typed {
			text, ok := value.(string)
			if !ok || strings.TrimSpace(text) == "" {
				continue
			}
			parts = append(parts, key+": "+strings.TrimSpace(text))
		}
		return strings.Join(parts, "; ")
	case []any:
		parts := make([]string, 0, len(typed))
		for _, value := range typed {
			text, ok := value.(string)
			if !ok || strings.TrimSpace(text) == "" {
				continue
			}
			parts = append(parts, strings.TrimSpace(text))
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
