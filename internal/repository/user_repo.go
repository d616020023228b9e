package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dettyclub/internal/model"
)

// UserRepository defines methods for accessing member profiles.
type UserRepository interface {
	UpsertUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, search string, limit, offset int) ([]model.User, error)
	SetUserStatus(ctx context.Context, id, status string) error
}

type userRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new UserRepository.
func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) UpsertUser(ctx context.Context, u *model.User) error {
	const q = `
        INSERT INTO user_profiles (user_id, name, email, phone, avatar_url, role, status)
        VALUES ($1, $2, $3, $4, $5, 'member', 'active')
        ON CONFLICT (user_id) DO UPDATE
        SET name = EXCLUDED.name,
            email = EXCLUDED.email,
            phone = EXCLUDED.phone,
            avatar_url = EXCLUDED.avatar_url,
            updated_at = NOW()
        RETURNING user_id, name, email, phone, avatar_url, role, status, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, u.UserID, u.Name, u.Email, u.Phone, u.AvatarURL).Scan(
		&u.UserID, &u.Name, &u.Email, &u.Phone, &u.AvatarURL, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile for user %s: %w", u.UserID, err)
	}
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
        SELECT user_id, name, email, phone, avatar_url, role, status, created_at, updated_at
        FROM user_profiles
        WHERE user_id = $1
    `
	var u model.User
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&u.UserID, &u.Name, &u.Email, &u.Phone, &u.AvatarURL, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch profile for user %s: %w", id, err)
	}
	return &u, nil
}

func (r *userRepo) ListUsers(ctx context.Context, search string, limit, offset int) ([]model.User, error) {
	const q = `
        SELECT user_id, name, email, phone, avatar_url, role, status, created_at, updated_at
        FROM user_profiles
        WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.pool.Query(ctx, q, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.UserID, &u.Name, &u.Email, &u.Phone, &u.AvatarURL, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users rows: %w", err)
	}
	return users, nil
}

func (r *userRepo) SetUserStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE user_profiles SET status = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return fmt.Errorf("set status %s for user %s: %w", status, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set status for user %s: no such user", id)
	}
	return nil
}
