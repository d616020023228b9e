package valuation

import (
	"github.com/shopspring/decimal"

	"dettyclub/internal/model"
)

// DefaultRequiredPeriods is a full contribution year.
const DefaultRequiredPeriods = 12

// confirmedStatuses is the confirmed-equivalent set. Anything else,
// including statuses we have never seen, simply does not count.
var confirmedStatuses = map[string]bool{
	model.ContributionStatusConfirmed: true,
	model.ContributionStatusSuccess:   true,
	model.ContributionStatusApproved:  true,
}

// ProgressSummary describes how far a subscription has come toward its
// yearly package.
type ProgressSummary struct {
	ConfirmedCount     int             `json:"confirmed_count"`
	TotalContributed   decimal.Decimal `json:"total_contributed"`
	ExpectedTotal      decimal.Decimal `json:"expected_total"`
	CurrentInKindValue decimal.Decimal `json:"current_in_kind_value"`
	IsCompleted        bool            `json:"is_completed"`
	NextPeriodIndex    int             `json:"next_period_index"`
}

// IsConfirmed reports whether a contribution counts toward savings totals.
// Delivery-fee payments never do, regardless of status.
func IsConfirmed(c model.Contribution) bool {
	if c.Type == model.ContributionTypeDelivery {
		return false
	}
	return confirmedStatuses[c.Status]
}

// ComputeProgress folds a user's contribution history into a progress
// summary for one package. slots below 1 is treated as 1 and
// requiredPeriods below 1 as DefaultRequiredPeriods, so the function stays
// total. The in-kind value is prorated linearly and rounded to a whole
// currency unit once, at the end, to avoid per-period rounding drift.
func ComputeProgress(contributions []model.Contribution, pkg model.PackageDefinition, slots, requiredPeriods int) ProgressSummary {
	if slots < 1 {
		slots = 1
	}
	if requiredPeriods < 1 {
		requiredPeriods = DefaultRequiredPeriods
	}

	confirmed := 0
	total := decimal.Zero
	for _, c := range contributions {
		if !IsConfirmed(c) {
			continue
		}
		confirmed++
		total = total.Add(c.Amount)
	}

	slotsDec := decimal.NewFromInt(int64(slots))
	periodsDec := decimal.NewFromInt(int64(requiredPeriods))

	inKind := pkg.EstimatedRetailValue.
		Mul(slotsDec).
		Mul(decimal.NewFromInt(int64(confirmed))).
		DivRound(periodsDec, 0)

	next := confirmed + 1
	if next > requiredPeriods {
		next = requiredPeriods
	}

	return ProgressSummary{
		ConfirmedCount:     confirmed,
		TotalContributed:   total,
		ExpectedTotal:      pkg.MonthlyAmount.Mul(periodsDec).Mul(slotsDec),
		CurrentInKindValue: inKind,
		IsCompleted:        confirmed >= requiredPeriods,
		NextPeriodIndex:    next,
	}
}
