// Package repository holds the Postgres data access layer. Every repo is an
// interface plus a pgxpool-backed implementation so services can be tested
// against in-memory fakes.
package repository

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// decimalFromDB parses a numeric column read back as text. The cast to
// text keeps monetary precision intact end to end.
func decimalFromDB(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s %q: %w", field, raw, err)
	}
	return d, nil
}
