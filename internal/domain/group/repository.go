package group

import "context"

// Repository describes group persistence needs from use cases.
// Implementations store whole groups; ownership checks live above this layer.
type Repository interface {
	Create(ctx context.Context, g Group) error
	GetByID(ctx context.Context, groupID string) (Group, bool, error)
	Update(ctx context.Context, g Group) error
	Delete(ctx context.Context, groupID string) (bool, error)
	ListByToken(ctx context.Context, token string) ([]Group, error)
}
