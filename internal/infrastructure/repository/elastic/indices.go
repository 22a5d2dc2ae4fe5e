package elastic

import "context"

// Index mappings: token fields are keywords so ownership queries match exact
// values only, and memberships are nested documents.
var groupsMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":          map[string]any{"type": "keyword"},
			"name":        map[string]any{"type": "text"},
			"description": map[string]any{"type": "text"},
			"token":       map[string]any{"type": "keyword"},
			"teams": map[string]any{
				"type": "nested",
				"properties": map[string]any{
					"teamId":      map[string]any{"type": "keyword"},
					"teamName":    map[string]any{"type": "text"},
					"stadiumName": map[string]any{"type": "text"},
					"leagueName":  map[string]any{"type": "text"},
					"season":      map[string]any{"type": "integer"},
				},
			},
		},
	},
}

var usersMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"username": map[string]any{"type": "keyword"},
			"token":    map[string]any{"type": "keyword"},
		},
	},
}

// EnsureIndices creates the groups and users indices when they do not exist.
func EnsureIndices(ctx context.Context, client *Client) error {
	if err := client.CreateIndex(ctx, groupsIndex, groupsMapping); err != nil {
		return err
	}

	return client.CreateIndex(ctx, usersIndex, usersMapping)
}
