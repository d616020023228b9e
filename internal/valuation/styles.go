package valuation

import (
	"github.com/shopspring/decimal"

	"dettyclub/internal/model"
)

// DefaultStyles is the built-in catalog. It supplies the presentation
// tokens for normalized packages and doubles as the fallback catalog when
// no package rows exist yet.
func DefaultStyles() []model.PackageDefinition {
	return []model.PackageDefinition{
		{
			ID:                   "basic",
			Name:                 "Basic Package",
			Description:          "Everyday essentials for a small household Detty December.",
			MonthlyAmount:        decimal.NewFromInt(5000),
			YearlyTotal:          decimal.NewFromInt(60000),
			EstimatedRetailValue: decimal.NewFromInt(85700),
			Savings:              decimal.NewFromInt(25700),
			SavingsPercent:       decimal.NewFromInt(30),
			Benefits: []string{
				"Bag of rice (25kg)",
				"Vegetable oil (5L)",
				"Chicken (full)",
				"Seasoning bundle",
			},
			Gradient:    "from-emerald-500 to-teal-600",
			ShadowColor: "shadow-emerald-200",
		},
		{
			ID:                   "family",
			Name:                 "Family Package",
			Description:          "A full festive stock-up for the whole family.",
			MonthlyAmount:        decimal.NewFromInt(10000),
			YearlyTotal:          decimal.NewFromInt(120000),
			EstimatedRetailValue: decimal.NewFromInt(178500),
			Savings:              decimal.NewFromInt(58500),
			SavingsPercent:       decimal.NewFromInt(33),
			Benefits: []string{
				"Bag of rice (50kg)",
				"Vegetable oil (10L)",
				"Chicken (x2)",
				"Goat meat (5kg)",
				"Beverage pack",
			},
			Badge:       "Most Popular",
			Gradient:    "from-violet-500 to-purple-600",
			ShadowColor: "shadow-violet-200",
		},
		{
			ID:                   "premium",
			Name:                 "Premium Package",
			Description:          "The full Detty December experience, hampers included.",
			MonthlyAmount:        decimal.NewFromInt(20000),
			YearlyTotal:          decimal.NewFromInt(240000),
			EstimatedRetailValue: decimal.NewFromInt(365000),
			Savings:              decimal.NewFromInt(125000),
			SavingsPercent:       decimal.NewFromInt(34),
			Benefits: []string{
				"Bag of rice (50kg) x2",
				"Vegetable oil (25L)",
				"Full cow share",
				"Premium hamper",
				"Drinks crate (x4)",
			},
			Badge:       "Best Value",
			Gradient:    "from-amber-500 to-orange-600",
			ShadowColor: "shadow-amber-200",
		},
	}
}
