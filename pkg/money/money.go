// Package money provides USD-safe financial helpers on top of go-money and
// shopspring/decimal. Analysis math runs on float64; this package owns the
// boundary where amounts are parsed from user input or rendered for display.
package money

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Cents converts a dollar amount to integer cents, rounding half away from
// zero via decimal so 19.985 does not become 1998.
func Cents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromFloat wraps a dollar amount as a go-money USD value.
func FromFloat(amount float64) *money.Money {
	return money.New(Cents(amount), money.USD)
}

// Format renders a dollar amount as a display string, e.g. "$1,234.56".
func Format(amount float64) string {
	return FromFloat(amount).Display()
}

// Parse reads a dollar amount from user-supplied text. Currency symbols,
// thousands separators, and surrounding whitespace are tolerated.
func Parse(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	for _, sym := range []string{"$", "€", "£"} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	f, _ := d.Float64()
	return f, nil
}
