package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackageRecord is a contribution package row as stored. Monetary fields are
// kept as decimal strings exactly as they arrive from admin input or the
// legacy API; the valuation normalizer is the only place they get parsed.
type PackageRecord struct {
	ID                  string    `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	Description         string    `db:"description" json:"description"`
	MonthlyContribution string    `db:"monthly_contribution" json:"monthly_contribution"`
	YearlyContribution  string    `db:"yearly_contribution" json:"yearly_contribution"`
	PackageWorth        string    `db:"package_worth" json:"package_worth"`
	SavingsAmount       string    `db:"savings_amount" json:"savings_amount"`
	SavingsPercentage   string    `db:"savings_percentage" json:"savings_percentage"`
	Benefits            []string  `db:"benefits" json:"benefits"`
	Badge               string    `db:"badge" json:"badge"`
	IsActive            bool      `db:"is_active" json:"is_active"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// PackageDefinition is a fully typed package: backend values merged with the
// built-in presentation style table.
type PackageDefinition struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	MonthlyAmount        decimal.Decimal `json:"monthly_amount"`
	YearlyTotal          decimal.Decimal `json:"yearly_total"`
	EstimatedRetailValue decimal.Decimal `json:"estimated_retail_value"`
	Savings              decimal.Decimal `json:"savings"`
	SavingsPercent       decimal.Decimal `json:"savings_percent"`
	Benefits             []string        `json:"benefits"`
	Badge                string          `json:"badge,omitempty"`
	Gradient             string          `json:"gradient"`
	ShadowColor          string          `json:"shadow_color"`
}

// PackageStats is a precomputed aggregate row for a package, maintained by
// the reporting queries. When present it wins over a client-side fold.
type PackageStats struct {
	PackageID      string          `db:"package_id" json:"package_id"`
	MembersCount   int             `db:"members_count" json:"members_count"`
	TotalExpected  decimal.Decimal `db:"total_expected" json:"total_expected"`
	TotalCollected decimal.Decimal `db:"total_collected" json:"total_collected"`
}
