package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dettyclub/internal/model"
)

// ReportRepository produces the per-month expected-vs-collected rows and
// the precomputed package stats used by the admin overview.
type ReportRepository interface {
	MonthlyBreakdown(ctx context.Context, packageID string, year int) ([]model.MonthlyBreakdownEntry, error)
	GetPackageStats(ctx context.Context, packageID string) (*model.PackageStats, error)
}

type reportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepo creates a new ReportRepository.
func NewReportRepo(pool *pgxpool.Pool) ReportRepository {
	return &reportRepo{pool: pool}
}

// MonthlyBreakdown computes, per calendar month, what active subscribers
// were expected to pay against what was actually collected. Delivery-fee
// payments are excluded from collections by type.
func (r *reportRepo) MonthlyBreakdown(ctx context.Context, packageID string, year int) ([]model.MonthlyBreakdownEntry, error) {
	const q = `
        WITH months AS (
            SELECT generate_series(1, 12) AS month
        ),
        expected AS (
            SELECT COALESCE(SUM(s.slots * p.monthly_contribution), 0) AS amount,
                   COUNT(*) AS users_count
            FROM subscriptions s
            JOIN packages p ON p.id = s.package_id
            WHERE s.package_id = $1 AND s.status = 'active'
        ),
        collected AS (
            SELECT c.month,
                   COALESCE(SUM(c.amount), 0) AS amount,
                   COUNT(DISTINCT c.user_id) AS payers_count
            FROM contributions c
            WHERE c.package_id = $1
              AND c.year = $2
              AND c.type <> 'delivery'
              AND c.status IN ('confirmed', 'success', 'approved')
            GROUP BY c.month
        )
        SELECT m.month,
               e.amount::text,
               COALESCE(col.amount, 0)::text,
               e.users_count,
               GREATEST(e.users_count - COALESCE(col.payers_count, 0), 0)
        FROM months m
        CROSS JOIN expected e
        LEFT JOIN collected col ON col.month = m.month
        ORDER BY m.month
    `
	rows, err := r.pool.Query(ctx, q, packageID, year)
	if err != nil {
		return nil, fmt.Errorf("monthly breakdown for package %s year %d: %w", packageID, year, err)
	}
	defer rows.Close()

	entries := []model.MonthlyBreakdownEntry{}
	for rows.Next() {
		var e model.MonthlyBreakdownEntry
		var expected, collected string
		if err := rows.Scan(&e.Month, &expected, &collected, &e.ExpectedUsersCount, &e.DefaultedUsersCount); err != nil {
			return nil, fmt.Errorf("scan breakdown row: %w", err)
		}
		if e.ExpectedTotal, err = decimalFromDB("expected_total", expected); err != nil {
			return nil, err
		}
		if e.TotalCollected, err = decimalFromDB("total_collected", collected); err != nil {
			return nil, err
		}
		e.Balance = e.ExpectedTotal.Sub(e.TotalCollected)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monthly breakdown rows: %w", err)
	}
	return entries, nil
}

// GetPackageStats returns the maintained aggregate row for a package, or
// nil when none has been computed yet.
func (r *reportRepo) GetPackageStats(ctx context.Context, packageID string) (*model.PackageStats, error) {
	const q = `
        SELECT package_id, members_count, total_expected, total_collected
        FROM package_stats
        WHERE package_id = $1
    `
	var s model.PackageStats
	err := r.pool.QueryRow(ctx, q, packageID).Scan(
		&s.PackageID, &s.MembersCount, &s.TotalExpected, &s.TotalCollected,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch stats for package %s: %w", packageID, err)
	}
	return &s, nil
}
