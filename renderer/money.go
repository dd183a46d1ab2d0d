package renderer

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats an amount in a currency, e.g. "$1,234.50" or "-€45.00".
//
// Without a currency the bare amount is returned ("1234.50"). A currency
// unknown to ISO 4217, or an amount too large for its formatter, is followed
// by the code ("1234.50 XYZ").
func Money(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.StringFixedBank(2)
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return d.StringFixedBank(2) + " " + strings.ToUpper(currency)
	}
	// the formatter works on int64 minor units.
	minor := d.Shift(int32(cur.Fraction)).RoundBank(0)
	if !minor.Abs().BigInt().IsInt64() {
		return d.StringFixedBank(2) + " " + strings.ToUpper(currency)
	}
	return cur.Formatter().Format(minor.IntPart())
}

// ValidCurrency reports whether currency is a known ISO 4217 code.
func ValidCurrency(currency string) bool { return money.GetCurrency(currency) != nil }
