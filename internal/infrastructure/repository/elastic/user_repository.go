package elastic

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"

	"foccacia/internal/domain/user"
)

const usersIndex = "users"

type userDocument struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// UserRepository stores users keyed by username in the document index.
type UserRepository struct {
	client *Client
}

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	doc := userDocument{Username: u.Username, Token: u.Token}
	if err := r.client.PutDocument(ctx, usersIndex, u.Username, doc); err != nil {
		return err
	}

	return r.client.Refresh(ctx, usersIndex)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	var doc userDocument
	found, err := r.client.GetDocument(ctx, usersIndex, username, &doc)
	if err != nil {
		return user.User{}, false, err
	}
	if !found {
		return user.User{}, false, nil
	}

	return user.User{Username: doc.Username, Token: doc.Token}, true, nil
}

func (r *UserRepository) GetByToken(ctx context.Context, token string) (user.User, bool, error) {
	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"token": token},
		},
		"size": 1,
	}

	sources, err := r.client.Search(ctx, usersIndex, query)
	if err != nil {
		return user.User{}, false, err
	}
	if len(sources) == 0 {
		return user.User{}, false, nil
	}

	var doc userDocument
	if err := sonic.Unmarshal(sources[0], &doc); err != nil {
		return user.User{}, false, fmt.Errorf("decode user hit: %w", err)
	}

	return user.User{Username: doc.Username, Token: doc.Token}, true, nil
}
