package valuation

import (
	"github.com/shopspring/decimal"

	"dettyclub/internal/model"
)

// BreakdownTotals aggregates a monthly breakdown for the admin overview.
type BreakdownTotals struct {
	TotalExpected             decimal.Decimal `json:"total_expected"`
	TotalCollected            decimal.Decimal `json:"total_collected"`
	TotalBalance              decimal.Decimal `json:"total_balance"`
	OverallProgressPercentage decimal.Decimal `json:"overall_progress_percentage"`
}

// PackageSummary is the admin-facing rollup for one package.
type PackageSummary struct {
	PackageID          string          `json:"package_id"`
	MembersCount       int             `json:"members_count"`
	TotalSlots         int             `json:"total_slots"`
	ExpectedTotal      decimal.Decimal `json:"expected_total"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
}

// ComputeMonthlyBreakdown folds per-month entries into overall totals. The
// balance is recomputed as expected minus collected rather than trusted
// from the entries, and the overall percentage resolves to zero when
// nothing was expected.
func ComputeMonthlyBreakdown(entries []model.MonthlyBreakdownEntry) BreakdownTotals {
	expected := decimal.Zero
	collected := decimal.Zero
	for _, e := range entries {
		expected = expected.Add(e.ExpectedTotal)
		collected = collected.Add(e.TotalCollected)
	}
	return BreakdownTotals{
		TotalExpected:             expected,
		TotalCollected:            collected,
		TotalBalance:              expected.Sub(collected),
		OverallProgressPercentage: PercentOf(collected, expected),
	}
}

// ComputePackageSummary rolls up one package across its subscribers. A
// precomputed stats row wins when present; the local fold over raw records
// is the fallback. The two can disagree transiently while caches catch up
// and that is acceptable.
func ComputePackageSummary(subs []model.Subscription, contributions []model.Contribution, pkg model.PackageDefinition, stats *model.PackageStats) PackageSummary {
	summary := PackageSummary{PackageID: pkg.ID}

	for _, s := range subs {
		if s.Status != model.SubscriptionStatusActive {
			continue
		}
		summary.MembersCount++
		summary.TotalSlots += s.Slots
	}

	if stats != nil {
		summary.MembersCount = stats.MembersCount
		summary.ExpectedTotal = stats.TotalExpected
		summary.TotalCollected = stats.TotalCollected
	} else {
		summary.ExpectedTotal = pkg.MonthlyAmount.
			Mul(decimal.NewFromInt(DefaultRequiredPeriods)).
			Mul(decimal.NewFromInt(int64(summary.TotalSlots)))
		collected := decimal.Zero
		for _, c := range contributions {
			if !IsConfirmed(c) {
				continue
			}
			collected = collected.Add(c.Amount)
		}
		summary.TotalCollected = collected
	}

	summary.ProgressPercentage = PercentOf(summary.TotalCollected, summary.ExpectedTotal)
	return summary
}
