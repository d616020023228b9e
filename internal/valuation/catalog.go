package valuation

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"dettyclub/internal/model"
)

// ErrEmptyStyleTable is returned when no fallback style entries were
// supplied; the style table is the catalog of last resort and must hold at
// least one entry.
var ErrEmptyStyleTable = errors.New("valuation: style table is empty")

// category match order. First substring hit on the package name wins, so a
// "Premium Family" package normalizes to family.
var categoryOrder = []string{"basic", "family", "premium"}

// NormalizePackages merges stored package records with the built-in style
// table into fully typed definitions. Backend values win for every monetary
// and textual field; the style entry contributes only gradient, shadow
// color and a fallback badge. An empty records slice returns the style
// table itself so the catalog never renders empty.
func NormalizePackages(records []model.PackageRecord, styles []model.PackageDefinition) ([]model.PackageDefinition, error) {
	if len(styles) == 0 {
		return nil, ErrEmptyStyleTable
	}
	if len(records) == 0 {
		out := make([]model.PackageDefinition, len(styles))
		copy(out, styles)
		return out, nil
	}

	out := make([]model.PackageDefinition, 0, len(records))
	for _, rec := range records {
		def, err := normalizeOne(rec, styles)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

func normalizeOne(rec model.PackageRecord, styles []model.PackageDefinition) (model.PackageDefinition, error) {
	style := styleFor(rec.Name, styles)

	monthly, err := ParseMoney("monthly_contribution", rec.MonthlyContribution)
	if err != nil {
		return model.PackageDefinition{}, err
	}
	yearly, err := ParseMoney("yearly_contribution", rec.YearlyContribution)
	if err != nil {
		return model.PackageDefinition{}, err
	}
	worth, err := ParseMoney("package_worth", rec.PackageWorth)
	if err != nil {
		return model.PackageDefinition{}, err
	}
	savings, err := ParseMoney("savings_amount", rec.SavingsAmount)
	if err != nil {
		return model.PackageDefinition{}, err
	}
	if strings.TrimSpace(rec.SavingsAmount) == "" {
		savings = worth.Sub(yearly)
	}

	def := model.PackageDefinition{
		ID:                   rec.ID,
		Name:                 rec.Name,
		Description:          rec.Description,
		MonthlyAmount:        monthly,
		YearlyTotal:          yearly,
		EstimatedRetailValue: worth,
		Savings:              savings,
		SavingsPercent:       savingsPercent(rec.SavingsPercentage, savings, worth),
		Benefits:             rec.Benefits,
		Badge:                style.Badge,
		Gradient:             style.Gradient,
		ShadowColor:          style.ShadowColor,
	}
	if strings.TrimSpace(rec.Badge) != "" {
		def.Badge = rec.Badge
	}
	return def, nil
}

// savingsPercent trusts the stored percentage when it is present and
// numeric, otherwise recomputes round(savings/worth*100). Worth of zero
// yields zero.
func savingsPercent(stored string, savings, worth decimal.Decimal) decimal.Decimal {
	if trimmed := strings.TrimSpace(stored); trimmed != "" {
		if d, err := decimal.NewFromString(moneyReplacer.Replace(trimmed)); err == nil {
			return d
		}
	}
	if worth.IsZero() {
		return decimal.Zero
	}
	return savings.Mul(decimal.NewFromInt(100)).DivRound(worth, 0)
}

// styleFor picks the style entry whose category name appears in the
// package name, checking basic, then family, then premium. No match falls
// back to the first entry so the result is deterministic.
func styleFor(name string, styles []model.PackageDefinition) model.PackageDefinition {
	lower := strings.ToLower(name)
	for _, category := range categoryOrder {
		if !strings.Contains(lower, category) {
			continue
		}
		for _, s := range styles {
			if strings.Contains(strings.ToLower(s.Name), category) {
				return s
			}
		}
	}
	return styles[0]
}
