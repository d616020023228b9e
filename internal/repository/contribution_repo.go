package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dettyclub/internal/model"
)

// ContributionRepository defines methods for accessing contribution records.
type ContributionRepository interface {
	CreateContribution(ctx context.Context, c *model.Contribution) error
	GetByID(ctx context.Context, id string) (*model.Contribution, error)
	ListByUserAndPackage(ctx context.Context, userID, packageID string) ([]model.Contribution, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]model.Contribution, error)
	ListByPackageAndYear(ctx context.Context, packageID string, year int) ([]model.Contribution, error)
	UpdateStatus(ctx context.Context, id, status, reviewedBy string) error
}

type contributionRepo struct {
	pool *pgxpool.Pool
}

// NewContributionRepo creates a new ContributionRepository.
func NewContributionRepo(pool *pgxpool.Pool) ContributionRepository {
	return &contributionRepo{pool: pool}
}

const contributionColumns = `
        id, user_id, package_id, amount, status, type, month, year,
        COALESCE(receipt_key, ''), COALESCE(reviewed_by, ''), COALESCE(note, ''),
        created_at, updated_at`

func scanContribution(row pgx.Row, c *model.Contribution) error {
	return row.Scan(
		&c.ID, &c.UserID, &c.PackageID, &c.Amount, &c.Status, &c.Type, &c.Month, &c.Year,
		&c.ReceiptKey, &c.ReviewedBy, &c.Note, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *contributionRepo) CreateContribution(ctx context.Context, c *model.Contribution) error {
	const q = `
        INSERT INTO contributions (user_id, package_id, amount, status, type, month, year, receipt_key, note)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''))
        RETURNING id, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q,
		c.UserID, c.PackageID, c.Amount, c.Status, c.Type, c.Month, c.Year, c.ReceiptKey, c.Note,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create contribution for user %s: %w", c.UserID, err)
	}
	return nil
}

func (r *contributionRepo) GetByID(ctx context.Context, id string) (*model.Contribution, error) {
	q := `SELECT ` + contributionColumns + ` FROM contributions WHERE id = $1`
	var c model.Contribution
	if err := scanContribution(r.pool.QueryRow(ctx, q, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch contribution %s: %w", id, err)
	}
	return &c, nil
}

func (r *contributionRepo) ListByUserAndPackage(ctx context.Context, userID, packageID string) ([]model.Contribution, error) {
	q := `
        SELECT ` + contributionColumns + `
        FROM contributions
        WHERE user_id = $1 AND package_id = $2
        ORDER BY year ASC, month ASC, created_at ASC
    `
	return r.list(ctx, q, userID, packageID)
}

func (r *contributionRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]model.Contribution, error) {
	q := `
        SELECT ` + contributionColumns + `
        FROM contributions
        WHERE status = $1
        ORDER BY created_at ASC
        LIMIT $2 OFFSET $3
    `
	return r.list(ctx, q, status, limit, offset)
}

func (r *contributionRepo) ListByPackageAndYear(ctx context.Context, packageID string, year int) ([]model.Contribution, error) {
	q := `
        SELECT ` + contributionColumns + `
        FROM contributions
        WHERE package_id = $1 AND year = $2
        ORDER BY month ASC, created_at ASC
    `
	return r.list(ctx, q, packageID, year)
}

func (r *contributionRepo) list(ctx context.Context, q string, args ...any) ([]model.Contribution, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	contribs := []model.Contribution{}
	for rows.Next() {
		var c model.Contribution
		if err := scanContribution(rows, &c); err != nil {
			return nil, fmt.Errorf("scan contribution row: %w", err)
		}
		contribs = append(contribs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contributions rows: %w", err)
	}
	return contribs, nil
}

func (r *contributionRepo) UpdateStatus(ctx context.Context, id, status, reviewedBy string) error {
	const q = `
        UPDATE contributions
        SET status = $2, reviewed_by = $3, updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.pool.Exec(ctx, q, id, status, reviewedBy)
	if err != nil {
		return fmt.Errorf("set status %s for contribution %s: %w", status, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set status for contribution %s: no such contribution", id)
	}
	return nil
}
