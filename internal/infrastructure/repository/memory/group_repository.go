package memory

import (
	"context"
	"sync"

	"foccacia/internal/domain/group"
)

// GroupRepository is the volatile variant: an in-process table guarded by a
// RWMutex, lost on restart. Insertion order is kept so listings stay stable
// across calls while the set is unchanged.
type GroupRepository struct {
	mu     sync.RWMutex
	items  map[string]group.Group
	orders []string
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{items: make(map[string]group.Group)}
}

func (r *GroupRepository) Create(_ context.Context, g group.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[g.ID]; !ok {
		r.orders = append(r.orders, g.ID)
	}
	r.items[g.ID] = cloneGroup(g)

	return nil
}

func (r *GroupRepository) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[groupID]
	if !ok {
		return group.Group{}, false, nil
	}

	return cloneGroup(g), true, nil
}

func (r *GroupRepository) Update(_ context.Context, g group.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[g.ID]; !ok {
		r.orders = append(r.orders, g.ID)
	}
	r.items[g.ID] = cloneGroup(g)

	return nil
}

func (r *GroupRepository) Delete(_ context.Context, groupID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[groupID]; !ok {
		return false, nil
	}

	delete(r.items, groupID)
	for i, id := range r.orders {
		if id == groupID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}

	return true, nil
}

func (r *GroupRepository) ListByToken(_ context.Context, token string) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Group, 0, len(r.orders))
	for _, id := range r.orders {
		g, ok := r.items[id]
		if !ok || g.Token != token {
			continue
		}
		out = append(out, cloneGroup(g))
	}

	return out, nil
}

func cloneGroup(g group.Group) group.Group {
	copied := g
	copied.Teams = append([]group.TeamMembership(nil), g.Teams...)
	return copied
}
