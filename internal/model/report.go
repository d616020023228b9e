package model

import "github.com/shopspring/decimal"

// MonthlyBreakdownEntry is one month of expected-vs-collected figures for a
// package, produced by the reporting queries.
type MonthlyBreakdownEntry struct {
	Month               int             `db:"month" json:"month"`
	ExpectedTotal       decimal.Decimal `db:"expected_total" json:"expected_total"`
	TotalCollected      decimal.Decimal `db:"total_collected" json:"total_collected"`
	Balance             decimal.Decimal `db:"balance" json:"balance"`
	ExpectedUsersCount  int             `db:"expected_users_count" json:"expected_users_count"`
	DefaultedUsersCount int             `db:"defaulted_users_count" json:"defaulted_users_count"`
	ProgressPercentage  decimal.Decimal `db:"progress_percentage" json:"progress_percentage"`
}
