package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"dettyclub/internal/model"
	"dettyclub/internal/repository"
)

var (
	// ErrDeliveryLocked is returned when a preference change would move away
	// from a state whose delivery fee has already been paid.
	ErrDeliveryLocked = errors.New("delivery_preference_locked")
	// ErrFeeNotFound is returned when no fee row exists for the given state.
	ErrFeeNotFound = errors.New("delivery_fee_not_found")
)

// DeliveryService defines business logic for delivery preferences and the
// per-state fee table.
type DeliveryService interface {
	GetPreference(ctx context.Context, userID string) (*model.DeliveryPreference, error)
	SetPreference(ctx context.Context, p *model.DeliveryPreference) error
	ListFees(ctx context.Context) ([]model.DeliveryFee, error)
	FeeForState(ctx context.Context, state string) (*model.DeliveryFee, error)
	UpsertFee(ctx context.Context, f *model.DeliveryFee) error
	DeleteFee(ctx context.Context, state string) error
}

type deliveryService struct {
	repo   repository.DeliveryRepository
	logger zerolog.Logger
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(repo repository.DeliveryRepository, logger zerolog.Logger) DeliveryService {
	return &deliveryService{
		repo:   repo,
		logger: logger.With().Str("service", "DeliveryService").Logger(),
	}
}

func (s *deliveryService) GetPreference(ctx context.Context, userID string) (*model.DeliveryPreference, error) {
	pref, err := s.repo.GetPreference(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch delivery preference")
		return nil, err
	}
	if pref == nil {
		// Pickup is the default until the member says otherwise.
		return &model.DeliveryPreference{UserID: userID, Method: model.DeliveryMethodPickup}, nil
	}
	return pref, nil
}

// SetPreference writes the member's delivery choice. Once a fee has been
// paid for a state, the method must stay delivery and the state is frozen.
func (s *deliveryService) SetPreference(ctx context.Context, p *model.DeliveryPreference) error {
	if p.Method != model.DeliveryMethodPickup && p.Method != model.DeliveryMethodDelivery {
		return errors.New("invalid delivery method: " + p.Method)
	}

	existing, err := s.repo.GetPreference(ctx, p.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", p.UserID).Msg("Failed to fetch delivery preference")
		return err
	}
	if existing != nil && existing.StatePaidFor != "" {
		if p.Method != model.DeliveryMethodDelivery || p.State != existing.StatePaidFor {
			return ErrDeliveryLocked
		}
	}

	if err := s.repo.UpsertPreference(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("user_id", p.UserID).Msg("Failed to save delivery preference")
		return err
	}
	return nil
}

func (s *deliveryService) ListFees(ctx context.Context) ([]model.DeliveryFee, error) {
	return s.repo.ListFees(ctx)
}

func (s *deliveryService) FeeForState(ctx context.Context, state string) (*model.DeliveryFee, error) {
	fee, err := s.repo.GetFeeByState(ctx, state)
	if err != nil {
		s.logger.Error().Err(err).Str("state", state).Msg("Failed to fetch delivery fee")
		return nil, err
	}
	if fee == nil {
		return nil, ErrFeeNotFound
	}
	return fee, nil
}

func (s *deliveryService) UpsertFee(ctx context.Context, f *model.DeliveryFee) error {
	if f.State == "" {
		return errors.New("delivery fee state is required")
	}
	if f.Amount.IsNegative() {
		return errors.New("delivery fee amount cannot be negative")
	}
	if err := s.repo.UpsertFee(ctx, f); err != nil {
		s.logger.Error().Err(err).Str("state", f.State).Msg("Failed to upsert delivery fee")
		return err
	}
	return nil
}

func (s *deliveryService) DeleteFee(ctx context.Context, state string) error {
	if err := s.repo.DeleteFee(ctx, state); err != nil {
		s.logger.Error().Err(err).Str("state", state).Msg("Failed to delete delivery fee")
		return err
	}
	return nil
}
