package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dettyclub/internal/model"
)

// DeliveryRepository defines methods for delivery preferences and the
// per-state fee table.
type DeliveryRepository interface {
	GetPreference(ctx context.Context, userID string) (*model.DeliveryPreference, error)
	UpsertPreference(ctx context.Context, p *model.DeliveryPreference) error
	MarkStatePaid(ctx context.Context, userID, state string) error
	ListFees(ctx context.Context) ([]model.DeliveryFee, error)
	GetFeeByState(ctx context.Context, state string) (*model.DeliveryFee, error)
	UpsertFee(ctx context.Context, f *model.DeliveryFee) error
	DeleteFee(ctx context.Context, state string) error
}

type deliveryRepo struct {
	pool *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepository.
func NewDeliveryRepo(pool *pgxpool.Pool) DeliveryRepository {
	return &deliveryRepo{pool: pool}
}

func (r *deliveryRepo) GetPreference(ctx context.Context, userID string) (*model.DeliveryPreference, error) {
	const q = `
        SELECT user_id, method, COALESCE(address_line, ''), COALESCE(city, ''),
               COALESCE(state, ''), COALESCE(phone, ''), COALESCE(state_paid_for, ''), updated_at
        FROM delivery_preferences
        WHERE user_id = $1
    `
	var p model.DeliveryPreference
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&p.UserID, &p.Method, &p.AddressLine, &p.City, &p.State, &p.Phone, &p.StatePaidFor, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch delivery preference for user %s: %w", userID, err)
	}
	return &p, nil
}

func (r *deliveryRepo) UpsertPreference(ctx context.Context, p *model.DeliveryPreference) error {
	const q = `
        INSERT INTO delivery_preferences (user_id, method, address_line, city, state, phone)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
        ON CONFLICT (user_id) DO UPDATE
        SET method = EXCLUDED.method,
            address_line = EXCLUDED.address_line,
            city = EXCLUDED.city,
            state = EXCLUDED.state,
            phone = EXCLUDED.phone,
            updated_at = NOW()
        RETURNING updated_at
    `
	err := r.pool.QueryRow(ctx, q, p.UserID, p.Method, p.AddressLine, p.City, p.State, p.Phone).
		Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert delivery preference for user %s: %w", p.UserID, err)
	}
	return nil
}

// MarkStatePaid records that the delivery fee for the given state has been
// confirmed, locking the preference.
func (r *deliveryRepo) MarkStatePaid(ctx context.Context, userID, state string) error {
	const q = `
        UPDATE delivery_preferences
        SET state_paid_for = $2, updated_at = NOW()
        WHERE user_id = $1
    `
	tag, err := r.pool.Exec(ctx, q, userID, state)
	if err != nil {
		return fmt.Errorf("mark state %s paid for user %s: %w", state, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark state paid for user %s: no delivery preference", userID)
	}
	return nil
}

func (r *deliveryRepo) ListFees(ctx context.Context) ([]model.DeliveryFee, error) {
	const q = `SELECT id, state, amount, updated_at FROM delivery_fees ORDER BY state ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list delivery fees: %w", err)
	}
	defer rows.Close()

	fees := []model.DeliveryFee{}
	for rows.Next() {
		var f model.DeliveryFee
		if err := rows.Scan(&f.ID, &f.State, &f.Amount, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery fee row: %w", err)
		}
		fees = append(fees, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list delivery fees rows: %w", err)
	}
	return fees, nil
}

func (r *deliveryRepo) GetFeeByState(ctx context.Context, state string) (*model.DeliveryFee, error) {
	const q = `SELECT id, state, amount, updated_at FROM delivery_fees WHERE state = $1`
	var f model.DeliveryFee
	err := r.pool.QueryRow(ctx, q, state).Scan(&f.ID, &f.State, &f.Amount, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch delivery fee for state %s: %w", state, err)
	}
	return &f, nil
}

func (r *deliveryRepo) UpsertFee(ctx context.Context, f *model.DeliveryFee) error {
	const q = `
        INSERT INTO delivery_fees (state, amount)
        VALUES ($1, $2)
        ON CONFLICT (state) DO UPDATE
        SET amount = EXCLUDED.amount, updated_at = NOW()
        RETURNING id, updated_at
    `
	if err := r.pool.QueryRow(ctx, q, f.State, f.Amount).Scan(&f.ID, &f.UpdatedAt); err != nil {
		return fmt.Errorf("upsert delivery fee for state %s: %w", f.State, err)
	}
	return nil
}

func (r *deliveryRepo) DeleteFee(ctx context.Context, state string) error {
	const q = `DELETE FROM delivery_fees WHERE state = $1`
	tag, err := r.pool.Exec(ctx, q, state)
	if err != nil {
		return fmt.Errorf("delete delivery fee for state %s: %w", state, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete delivery fee for state %s: no such state", state)
	}
	return nil
}
