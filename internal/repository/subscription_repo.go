package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dettyclub/internal/model"
)

// SubscriptionRepository defines methods for accessing package subscriptions.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, s *model.Subscription) error
	GetActiveByUser(ctx context.Context, userID string) (*model.Subscription, error)
	GetByID(ctx context.Context, id string) (*model.Subscription, error)
	UpdateSlots(ctx context.Context, id string, slots int) error
	SetStatus(ctx context.Context, id, status string) error
	ListByPackage(ctx context.Context, packageID string, limit, offset int) ([]model.Subscription, error)
}

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepo creates a new SubscriptionRepository.
func NewSubscriptionRepo(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepo{pool: pool}
}

const subscriptionColumns = `id, user_id, package_id, slots, status, started_at, created_at, updated_at`

func (r *subscriptionRepo) CreateSubscription(ctx context.Context, s *model.Subscription) error {
	const q = `
        INSERT INTO subscriptions (user_id, package_id, slots, status, started_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, started_at, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, s.UserID, s.PackageID, s.Slots, s.Status).
		Scan(&s.ID, &s.StartedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create subscription for user %s: %w", s.UserID, err)
	}
	return nil
}

// GetActiveByUser returns the user's current active or reserved
// subscription, or nil when the user has none.
func (r *subscriptionRepo) GetActiveByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	const q = `
        SELECT ` + subscriptionColumns + `
        FROM subscriptions
        WHERE user_id = $1
          AND status IN ('active', 'reserved')
        ORDER BY created_at DESC
        LIMIT 1
    `
	var s model.Subscription
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&s.ID, &s.UserID, &s.PackageID, &s.Slots, &s.Status, &s.StartedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch active subscription for user %s: %w", userID, err)
	}
	return &s, nil
}

func (r *subscriptionRepo) GetByID(ctx context.Context, id string) (*model.Subscription, error) {
	const q = `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	var s model.Subscription
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.UserID, &s.PackageID, &s.Slots, &s.Status, &s.StartedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch subscription %s: %w", id, err)
	}
	return &s, nil
}

func (r *subscriptionRepo) UpdateSlots(ctx context.Context, id string, slots int) error {
	const q = `UPDATE subscriptions SET slots = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id, slots)
	if err != nil {
		return fmt.Errorf("update slots for subscription %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update slots for subscription %s: no such subscription", id)
	}
	return nil
}

func (r *subscriptionRepo) SetStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE subscriptions SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return fmt.Errorf("set status %s for subscription %s: %w", status, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set status for subscription %s: no such subscription", id)
	}
	return nil
}

func (r *subscriptionRepo) ListByPackage(ctx context.Context, packageID string, limit, offset int) ([]model.Subscription, error) {
	const q = `
        SELECT ` + subscriptionColumns + `
        FROM subscriptions
        WHERE package_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.pool.Query(ctx, q, packageID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions for package %s: %w", packageID, err)
	}
	defer rows.Close()

	subs := []model.Subscription{}
	for rows.Next() {
		var s model.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.PackageID, &s.Slots, &s.Status, &s.StartedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription row: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions rows: %w", err)
	}
	return subs, nil
}
