package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dettyclub/internal/model"
)

// PackageRepository defines methods for accessing contribution packages.
// Monetary columns are read back as text so the valuation normalizer stays
// the single place where money strings get parsed.
type PackageRepository interface {
	ListPackages(ctx context.Context, activeOnly bool) ([]model.PackageRecord, error)
	GetPackageByID(ctx context.Context, id string) (*model.PackageRecord, error)
	CreatePackage(ctx context.Context, p *model.PackageRecord) error
	UpdatePackage(ctx context.Context, p *model.PackageRecord) error
	SetPackageActive(ctx context.Context, id string, active bool) error
}

type packageRepo struct {
	pool *pgxpool.Pool
}

// NewPackageRepo creates a new PackageRepository.
func NewPackageRepo(pool *pgxpool.Pool) PackageRepository {
	return &packageRepo{pool: pool}
}

const packageColumns = `
        id, name, description,
        monthly_contribution::text, yearly_contribution::text, package_worth::text,
        COALESCE(savings_amount::text, ''), COALESCE(savings_percentage::text, ''),
        benefits, COALESCE(badge, ''), is_active, created_at, updated_at`

func scanPackage(row pgx.Row, p *model.PackageRecord) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description,
		&p.MonthlyContribution, &p.YearlyContribution, &p.PackageWorth,
		&p.SavingsAmount, &p.SavingsPercentage,
		&p.Benefits, &p.Badge, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *packageRepo) ListPackages(ctx context.Context, activeOnly bool) ([]model.PackageRecord, error) {
	q := `SELECT ` + packageColumns + ` FROM packages`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY monthly_contribution ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	pkgs := []model.PackageRecord{}
	for rows.Next() {
		var p model.PackageRecord
		if err := scanPackage(rows, &p); err != nil {
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		pkgs = append(pkgs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list packages rows: %w", err)
	}
	return pkgs, nil
}

func (r *packageRepo) GetPackageByID(ctx context.Context, id string) (*model.PackageRecord, error) {
	q := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	var p model.PackageRecord
	if err := scanPackage(r.pool.QueryRow(ctx, q, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch package %s: %w", id, err)
	}
	return &p, nil
}

func (r *packageRepo) CreatePackage(ctx context.Context, p *model.PackageRecord) error {
	const q = `
        INSERT INTO packages (name, description, monthly_contribution, yearly_contribution,
                              package_worth, savings_amount, savings_percentage, benefits, badge, is_active)
        VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric,
                NULLIF($6, '')::numeric, NULLIF($7, '')::numeric, $8, NULLIF($9, ''), $10)
        RETURNING id, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q,
		p.Name, p.Description, p.MonthlyContribution, p.YearlyContribution,
		p.PackageWorth, p.SavingsAmount, p.SavingsPercentage, p.Benefits, p.Badge, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create package %q: %w", p.Name, err)
	}
	return nil
}

func (r *packageRepo) UpdatePackage(ctx context.Context, p *model.PackageRecord) error {
	const q = `
        UPDATE packages
        SET name = $2, description = $3,
            monthly_contribution = $4::numeric, yearly_contribution = $5::numeric,
            package_worth = $6::numeric,
            savings_amount = NULLIF($7, '')::numeric,
            savings_percentage = NULLIF($8, '')::numeric,
            benefits = $9, badge = NULLIF($10, ''), updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at
    `
	err := r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.MonthlyContribution, p.YearlyContribution,
		p.PackageWorth, p.SavingsAmount, p.SavingsPercentage, p.Benefits, p.Badge,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update package %s: %w", p.ID, err)
	}
	return nil
}

func (r *packageRepo) SetPackageActive(ctx context.Context, id string, active bool) error {
	const q = `UPDATE packages SET is_active = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id, active)
	if err != nil {
		return fmt.Errorf("set active=%t for package %s: %w", active, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set active for package %s: no such package", id)
	}
	return nil
}
