package elastic

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"

	"foccacia/internal/domain/group"
)

const groupsIndex = "groups"

// GroupRepository is the durable variant, backed by the document index. Every
// write is followed by an explicit refresh so the store's visibility latency
// never leaks into the repository contract. Concurrency is delegated entirely
// to the store; a concurrent read-modify-write on the same group loses one
// writer's change (last writer wins).
type GroupRepository struct {
	client *Client
}

func NewGroupRepository(client *Client) *GroupRepository {
	return &GroupRepository{client: client}
}

func (r *GroupRepository) Create(ctx context.Context, g group.Group) error {
	if err := r.client.PutDocument(ctx, groupsIndex, g.ID, groupToDocument(g)); err != nil {
		return err
	}

	return r.client.Refresh(ctx, groupsIndex)
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	var doc groupDocument
	found, err := r.client.GetDocument(ctx, groupsIndex, groupID, &doc)
	if err != nil {
		return group.Group{}, false, err
	}
	if !found {
		return group.Group{}, false, nil
	}

	return documentToGroup(doc), true, nil
}

func (r *GroupRepository) Update(ctx context.Context, g group.Group) error {
	if err := r.client.PutDocument(ctx, groupsIndex, g.ID, groupToDocument(g)); err != nil {
		return err
	}

	return r.client.Refresh(ctx, groupsIndex)
}

func (r *GroupRepository) Delete(ctx context.Context, groupID string) (bool, error) {
	found, err := r.client.DeleteDocument(ctx, groupsIndex, groupID)
	if err != nil {
		return false, err
	}

	if err := r.client.Refresh(ctx, groupsIndex); err != nil {
		return false, err
	}

	return found, nil
}

// ListByToken matches the exact token value; the token field is a keyword, so
// the term query never partial-matches. Hits are sorted by id for a stable
// order across calls.
func (r *GroupRepository) ListByToken(ctx context.Context, token string) ([]group.Group, error) {
	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"token": token},
		},
		"sort": []map[string]any{
			{"id": map[string]any{"order": "asc"}},
		},
		"size": 1000,
	}

	sources, err := r.client.Search(ctx, groupsIndex, query)
	if err != nil {
		return nil, err
	}

	out := make([]group.Group, 0, len(sources))
	for _, source := range sources {
		var doc groupDocument
		if err := sonic.Unmarshal(source, &doc); err != nil {
			return nil, fmt.Errorf("decode group hit: %w", err)
		}
		out = append(out, documentToGroup(doc))
	}

	return out, nil
}
