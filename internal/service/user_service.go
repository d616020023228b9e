package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"dettyclub/internal/model"
	"dettyclub/internal/repository"
)

// ErrUserNotFound is returned when no profile exists for the given id.
var ErrUserNotFound = errors.New("user_not_found")

// UserService defines business logic methods for member profiles.
type UserService interface {
	EnsureProfile(ctx context.Context, u *model.User) error
	Get(ctx context.Context, userID string) (*model.User, error)
	List(ctx context.Context, search string, limit, offset int) ([]model.User, error)
	SetStatus(ctx context.Context, userID, status string) error
}

type userService struct {
	repo   repository.UserRepository
	logger zerolog.Logger
}

// NewUserService creates a new UserService with a scoped logger.
func NewUserService(repo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger.With().Str("service", "UserService").Logger(),
	}
}

// EnsureProfile creates or refreshes the profile row for an authenticated
// identity. Role and status are never touched from this path.
func (s *userService) EnsureProfile(ctx context.Context, u *model.User) error {
	if err := s.repo.UpsertUser(ctx, u); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.UserID).Msg("Failed to upsert profile")
		return err
	}
	return nil
}

func (s *userService) Get(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch profile")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, search string, limit, offset int) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx, search, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) SetStatus(ctx context.Context, userID, status string) error {
	if status != model.UserStatusActive && status != model.UserStatusSuspended {
		return errors.New("invalid user status: " + status)
	}
	if err := s.repo.SetUserStatus(ctx, userID, status); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("status", status).Msg("Failed to set user status")
		return err
	}
	return nil
}
