package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"dettyclub/internal/model"
	"dettyclub/internal/repository"
)

var (
	// ErrAlreadySubscribed is returned when a member with a live subscription
	// tries to open another one.
	ErrAlreadySubscribed = errors.New("already_subscribed")
	// ErrSubscriptionNotFound is returned when no subscription exists for the given id.
	ErrSubscriptionNotFound = errors.New("subscription_not_found")
)

// SubscriptionService defines business logic for package subscriptions.
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, packageID string, slots int) (*model.Subscription, error)
	Current(ctx context.Context, userID string) (*model.Subscription, error)
	ChangeSlots(ctx context.Context, userID string, slots int) (*model.Subscription, error)
	SetStatus(ctx context.Context, id, status string) error
	ListByPackage(ctx context.Context, packageID string, limit, offset int) ([]model.Subscription, error)
}

type subscriptionService struct {
	repo    repository.SubscriptionRepository
	catalog CatalogService
	logger  zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(repo repository.SubscriptionRepository, catalog CatalogService, logger zerolog.Logger) SubscriptionService {
	return &subscriptionService{
		repo:    repo,
		catalog: catalog,
		logger:  logger.With().Str("service", "SubscriptionService").Logger(),
	}
}

// Subscribe opens an active subscription on the given package. One live
// subscription per member; slot count defaults to one.
func (s *subscriptionService) Subscribe(ctx context.Context, userID, packageID string, slots int) (*model.Subscription, error) {
	existing, err := s.repo.GetActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to check existing subscription")
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubscribed
	}

	if _, err := s.catalog.GetPackage(ctx, packageID); err != nil {
		return nil, err
	}
	if slots < 1 {
		slots = 1
	}

	sub := &model.Subscription{
		UserID:    userID,
		PackageID: packageID,
		Slots:     slots,
		Status:    model.SubscriptionStatusActive,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("package_id", packageID).Msg("Failed to create subscription")
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) Current(ctx context.Context, userID string) (*model.Subscription, error) {
	sub, err := s.repo.GetActiveByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch subscription")
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}

// ChangeSlots adjusts the slot count on the member's live subscription.
func (s *subscriptionService) ChangeSlots(ctx context.Context, userID string, slots int) (*model.Subscription, error) {
	sub, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if slots < 1 {
		slots = 1
	}
	if err := s.repo.UpdateSlots(ctx, sub.ID, slots); err != nil {
		s.logger.Error().Err(err).Str("subscription_id", sub.ID).Msg("Failed to update slots")
		return nil, err
	}
	sub.Slots = slots
	return sub, nil
}

func (s *subscriptionService) SetStatus(ctx context.Context, id, status string) error {
	switch status {
	case model.SubscriptionStatusActive, model.SubscriptionStatusReserved,
		model.SubscriptionStatusSuspended, model.SubscriptionStatusInactive:
	default:
		return errors.New("invalid subscription status: " + status)
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrSubscriptionNotFound
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		s.logger.Error().Err(err).Str("subscription_id", id).Str("status", status).Msg("Failed to set subscription status")
		return err
	}
	return nil
}

func (s *subscriptionService) ListByPackage(ctx context.Context, packageID string, limit, offset int) ([]model.Subscription, error) {
	return s.repo.ListByPackage(ctx, packageID, limit, offset)
}
