// Package money converts between the decimal strings used on the wire and
// the minor-unit int64 amounts the ledger stores. Parsing and formatting
// happen only at this boundary; everything past it is integer arithmetic.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ToMinorUnits parses a decimal amount string ("10.50", "-150") into an
// integer count of minor currency units using the given exponent (2 for
// cents, 0 for currencies without a fractional unit). Amounts with more
// fractional digits than the exponent permits are rejected.
func ToMinorUnits(amount string, exponent int32) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	shifted := d.Shift(exponent)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", amount, exponent)
	}
	return shifted.IntPart(), nil
}

// FromMinorUnits renders a minor-unit amount back to a decimal string.
func FromMinorUnits(amount int64, exponent int32) string {
	return decimal.New(amount, -exponent).StringFixed(exponent)
}
