package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"foccacia/internal/domain/user"
)

// UserService handles registration and token authentication.
type UserService struct {
	userRepo user.Repository
	logger   *slog.Logger
	newToken func() string
}

func NewUserService(userRepo user.Repository, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		userRepo: userRepo,
		logger:   logger,
		newToken: uuid.NewString,
	}
}

// Register mints a fresh token for username. Usernames are unique and
// immutable; a taken name fails with ErrConflict.
func (s *UserService) Register(ctx context.Context, username string) (user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return user.User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	_, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return user.User{}, storeFailure("get user by username", err)
	}
	if exists {
		return user.User{}, fmt.Errorf("%w: username=%s already in use", ErrConflict, username)
	}

	created := user.User{
		Username: username,
		Token:    s.newToken(),
	}

	if err := created.Validate(); err != nil {
		return user.User{}, fmt.Errorf("validate user: %w", err)
	}

	if err := s.userRepo.Create(ctx, created); err != nil {
		return user.User{}, storeFailure("create user", err)
	}

	s.logger.InfoContext(ctx, "user registered", "username", created.Username)

	return created, nil
}

// AuthenticateToken resolves a token to its owning username.
func (s *UserService) AuthenticateToken(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: token is missing", ErrUnauthorized)
	}

	owner, exists, err := s.userRepo.GetByToken(ctx, token)
	if err != nil {
		return "", storeFailure("get user by token", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: token does not resolve to a user", ErrUnauthorized)
	}

	return owner.Username, nil
}
