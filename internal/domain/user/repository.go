package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	GetByToken(ctx context.Context, token string) (User, bool, error)
}
