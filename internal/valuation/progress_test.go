package valuation

import (
	"testing"

	"github.com/shopspring/decimal"

	"dettyclub/internal/model"
)

func basicPkg() model.PackageDefinition {
	return model.PackageDefinition{
		ID:                   "basic",
		Name:                 "Basic Package",
		MonthlyAmount:        decimal.NewFromInt(5000),
		YearlyTotal:          decimal.NewFromInt(60000),
		EstimatedRetailValue: decimal.NewFromInt(85700),
	}
}

func confirmedContribution(amount int64) model.Contribution {
	return model.Contribution{
		Amount: decimal.NewFromInt(amount),
		Status: model.ContributionStatusApproved,
		Type:   model.ContributionTypeSavings,
	}
}

func TestComputeProgressFourMonthsPaid(t *testing.T) {
	contribs := []model.Contribution{
		confirmedContribution(5000),
		confirmedContribution(5000),
		confirmedContribution(5000),
		confirmedContribution(5000),
	}

	got := ComputeProgress(contribs, basicPkg(), 1, 12)

	if got.ConfirmedCount != 4 {
		t.Fatalf("confirmed count = %d, want 4", got.ConfirmedCount)
	}
	if !got.TotalContributed.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("total contributed = %s, want 20000", got.TotalContributed)
	}
	if !got.ExpectedTotal.Equal(decimal.NewFromInt(60000)) {
		t.Fatalf("expected total = %s, want 60000", got.ExpectedTotal)
	}
	// round(85700/12*4) = 28567
	if !got.CurrentInKindValue.Equal(decimal.NewFromInt(28567)) {
		t.Fatalf("in-kind value = %s, want 28567", got.CurrentInKindValue)
	}
	if got.IsCompleted {
		t.Fatal("four months paid must not be completed")
	}
	if got.NextPeriodIndex != 5 {
		t.Fatalf("next period = %d, want 5", got.NextPeriodIndex)
	}
}

func TestComputeProgressSlotsMultiplier(t *testing.T) {
	contribs := []model.Contribution{
		confirmedContribution(15000),
		confirmedContribution(15000),
		confirmedContribution(15000),
		confirmedContribution(15000),
	}

	got := ComputeProgress(contribs, basicPkg(), 3, 12)

	if !got.ExpectedTotal.Equal(decimal.NewFromInt(180000)) {
		t.Fatalf("expected total = %s, want 180000", got.ExpectedTotal)
	}
	// round(85700*3*4/12) = 85700; a single terminal rounding keeps the
	// slots=3 value within one unit of three times the slots=1 value.
	if !got.CurrentInKindValue.Equal(decimal.NewFromInt(85700)) {
		t.Fatalf("in-kind value = %s, want 85700", got.CurrentInKindValue)
	}
	single := ComputeProgress(contribs, basicPkg(), 1, 12)
	tripled := single.CurrentInKindValue.Mul(decimal.NewFromInt(3))
	if got.CurrentInKindValue.Sub(tripled).Abs().GreaterThan(decimal.NewFromInt(2)) {
		t.Fatalf("slots=3 in-kind %s is not ~3x slots=1 in-kind %s", got.CurrentInKindValue, single.CurrentInKindValue)
	}
}

func TestComputeProgressExactLinearity(t *testing.T) {
	// Retail value divisible by the period count: scaling must be exact.
	pkg := basicPkg()
	pkg.EstimatedRetailValue = decimal.NewFromInt(120000)
	contribs := make([]model.Contribution, 6)
	for i := range contribs {
		contribs[i] = confirmedContribution(5000)
	}

	one := ComputeProgress(contribs, pkg, 1, 12)
	three := ComputeProgress(contribs, pkg, 3, 12)

	if !one.CurrentInKindValue.Equal(decimal.NewFromInt(60000)) {
		t.Fatalf("slots=1 in-kind = %s, want 60000", one.CurrentInKindValue)
	}
	if !three.CurrentInKindValue.Equal(decimal.NewFromInt(180000)) {
		t.Fatalf("slots=3 in-kind = %s, want 180000", three.CurrentInKindValue)
	}
}

func TestComputeProgressExcludesDeliveryPayments(t *testing.T) {
	contribs := []model.Contribution{
		{Amount: decimal.NewFromInt(15000), Status: model.ContributionStatusConfirmed, Type: model.ContributionTypeSavings},
		{Amount: decimal.NewFromInt(2500), Status: model.ContributionStatusConfirmed, Type: model.ContributionTypeDelivery},
	}

	got := ComputeProgress(contribs, basicPkg(), 1, 12)

	if !got.TotalContributed.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("delivery payment leaked into totals: %s", got.TotalContributed)
	}
	if got.ConfirmedCount != 1 {
		t.Fatalf("confirmed count = %d, want 1", got.ConfirmedCount)
	}
}

func TestComputeProgressStatusFiltering(t *testing.T) {
	cases := []struct {
		status string
		counts bool
	}{
		{model.ContributionStatusApproved, true},
		{model.ContributionStatusConfirmed, true},
		{model.ContributionStatusSuccess, true},
		{model.ContributionStatusPending, false},
		{model.ContributionStatusDeclined, false},
		{model.ContributionStatusFailed, false},
		{"reversed", false}, // unknown statuses are excluded, never an error
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			contribs := []model.Contribution{{
				Amount: decimal.NewFromInt(5000),
				Status: tc.status,
				Type:   model.ContributionTypeSavings,
			}}
			got := ComputeProgress(contribs, basicPkg(), 1, 12)
			want := 0
			if tc.counts {
				want = 1
			}
			if got.ConfirmedCount != want {
				t.Fatalf("status %q: confirmed count = %d, want %d", tc.status, got.ConfirmedCount, want)
			}
		})
	}
}

func TestComputeProgressMonotonic(t *testing.T) {
	var contribs []model.Contribution
	prev := ComputeProgress(contribs, basicPkg(), 1, 12)
	for i := 0; i < 14; i++ {
		contribs = append(contribs, confirmedContribution(5000))
		cur := ComputeProgress(contribs, basicPkg(), 1, 12)
		if cur.TotalContributed.LessThan(prev.TotalContributed) {
			t.Fatalf("total contributed decreased at %d confirmed records", i+1)
		}
		if cur.CurrentInKindValue.LessThan(prev.CurrentInKindValue) {
			t.Fatalf("in-kind value decreased at %d confirmed records", i+1)
		}
		prev = cur
	}
}

func TestComputeProgressCompletion(t *testing.T) {
	contribs := make([]model.Contribution, 12)
	for i := range contribs {
		contribs[i] = confirmedContribution(5000)
	}
	got := ComputeProgress(contribs, basicPkg(), 1, 12)
	if !got.IsCompleted {
		t.Fatal("twelve confirmed periods must complete the year")
	}
	if got.NextPeriodIndex != 12 {
		t.Fatalf("next period caps at 12, got %d", got.NextPeriodIndex)
	}
	if !got.CurrentInKindValue.Equal(decimal.NewFromInt(85700)) {
		t.Fatalf("completed in-kind = %s, want full 85700", got.CurrentInKindValue)
	}
}

func TestComputeProgressInputDefaults(t *testing.T) {
	got := ComputeProgress(nil, basicPkg(), 0, 0)
	if !got.ExpectedTotal.Equal(decimal.NewFromInt(60000)) {
		t.Fatalf("defaults should behave as slots=1 periods=12, expected total = %s", got.ExpectedTotal)
	}
	if got.NextPeriodIndex != 1 {
		t.Fatalf("next period with no history = %d, want 1", got.NextPeriodIndex)
	}
}
