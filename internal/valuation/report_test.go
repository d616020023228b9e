package valuation

import (
	"testing"

	"github.com/shopspring/decimal"

	"dettyclub/internal/model"
)

func TestComputeMonthlyBreakdownEmpty(t *testing.T) {
	got := ComputeMonthlyBreakdown(nil)
	if !got.TotalExpected.IsZero() || !got.TotalCollected.IsZero() || !got.TotalBalance.IsZero() {
		t.Fatalf("empty breakdown must be all zero, got %+v", got)
	}
	// Division-by-zero guard: the percentage is zero, never NaN or a panic.
	if !got.OverallProgressPercentage.IsZero() {
		t.Fatalf("overall percentage = %s, want 0", got.OverallProgressPercentage)
	}
}

func TestComputeMonthlyBreakdownTotals(t *testing.T) {
	entries := []model.MonthlyBreakdownEntry{
		{
			Month:          1,
			ExpectedTotal:  decimal.NewFromInt(100000),
			TotalCollected: decimal.NewFromInt(80000),
			// A stale stored balance must not be trusted.
			Balance: decimal.NewFromInt(999),
		},
		{
			Month:          2,
			ExpectedTotal:  decimal.NewFromInt(100000),
			TotalCollected: decimal.NewFromInt(50000),
		},
	}

	got := ComputeMonthlyBreakdown(entries)

	if !got.TotalExpected.Equal(decimal.NewFromInt(200000)) {
		t.Fatalf("total expected = %s, want 200000", got.TotalExpected)
	}
	if !got.TotalCollected.Equal(decimal.NewFromInt(130000)) {
		t.Fatalf("total collected = %s, want 130000", got.TotalCollected)
	}
	if !got.TotalBalance.Equal(decimal.NewFromInt(70000)) {
		t.Fatalf("total balance = %s, want 70000", got.TotalBalance)
	}
	if !got.OverallProgressPercentage.Equal(decimal.NewFromInt(65)) {
		t.Fatalf("overall percentage = %s, want 65", got.OverallProgressPercentage)
	}
}

func TestComputePackageSummaryPrefersStats(t *testing.T) {
	pkg := basicPkg()
	subs := []model.Subscription{
		{UserID: "u1", Slots: 1, Status: model.SubscriptionStatusActive},
	}
	contribs := []model.Contribution{confirmedContribution(5000)}
	stats := &model.PackageStats{
		PackageID:      pkg.ID,
		MembersCount:   40,
		TotalExpected:  decimal.NewFromInt(2400000),
		TotalCollected: decimal.NewFromInt(600000),
	}

	got := ComputePackageSummary(subs, contribs, pkg, stats)

	if got.MembersCount != 40 {
		t.Fatalf("members = %d, want the stats value 40", got.MembersCount)
	}
	if !got.TotalCollected.Equal(decimal.NewFromInt(600000)) {
		t.Fatalf("collected = %s, want the stats value 600000", got.TotalCollected)
	}
	if !got.ProgressPercentage.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("percentage = %s, want 25", got.ProgressPercentage)
	}
}

func TestComputePackageSummaryLocalFold(t *testing.T) {
	pkg := basicPkg()
	subs := []model.Subscription{
		{UserID: "u1", Slots: 2, Status: model.SubscriptionStatusActive},
		{UserID: "u2", Slots: 1, Status: model.SubscriptionStatusActive},
		{UserID: "u3", Slots: 5, Status: model.SubscriptionStatusSuspended},
	}
	contribs := []model.Contribution{
		confirmedContribution(10000),
		confirmedContribution(10000),
		{Amount: decimal.NewFromInt(5000), Status: model.ContributionStatusPending, Type: model.ContributionTypeSavings},
		{Amount: decimal.NewFromInt(2500), Status: model.ContributionStatusConfirmed, Type: model.ContributionTypeDelivery},
	}

	got := ComputePackageSummary(subs, contribs, pkg, nil)

	if got.MembersCount != 2 {
		t.Fatalf("members = %d, want 2 active", got.MembersCount)
	}
	if got.TotalSlots != 3 {
		t.Fatalf("slots = %d, want 3", got.TotalSlots)
	}
	// 5000 * 12 * 3 slots
	if !got.ExpectedTotal.Equal(decimal.NewFromInt(180000)) {
		t.Fatalf("expected = %s, want 180000", got.ExpectedTotal)
	}
	if !got.TotalCollected.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("collected = %s, want 20000 (pending and delivery excluded)", got.TotalCollected)
	}
}

func TestComputePackageSummaryZeroExpected(t *testing.T) {
	got := ComputePackageSummary(nil, nil, basicPkg(), nil)
	if !got.ProgressPercentage.IsZero() {
		t.Fatalf("no subscribers must yield zero percentage, got %s", got.ProgressPercentage)
	}
}
