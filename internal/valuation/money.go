// Package valuation holds the package valuation and progress arithmetic
// shared by the member dashboard, the package catalog, and the admin
// reports. Every function here is pure: inputs arrive as already-fetched
// records, nothing reads the clock or the database.
package valuation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError reports a monetary field that was present but not numeric
// after currency formatting was removed. Absent fields are not errors,
// they default to zero.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("valuation: field %q has non-numeric value %q", e.Field, e.Value)
}

// moneyReplacer strips the currency formatting the legacy API ships with
// its decimal strings.
var moneyReplacer = strings.NewReplacer("₦", "", "NGN", "", ",", "", " ", "")

// ParseMoney parses a decimal money string. The empty string means the
// field is absent and yields zero; anything non-numeric after formatting
// removal is a *ParseError carrying the field name and raw value.
func ParseMoney(field, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(moneyReplacer.Replace(trimmed))
	if err != nil {
		return decimal.Zero, &ParseError{Field: field, Value: raw}
	}
	return d, nil
}

// PercentOf returns part/whole*100 rounded to two places, or zero when the
// whole is zero. The zero guard is deliberate: ratios over an empty period
// must never surface as NaN or a division panic.
func PercentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).DivRound(whole, 2)
}
