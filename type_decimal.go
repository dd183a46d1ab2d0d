package eportfolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// amountDigits is the number of fractional digits kept for prices and book values.
	amountDigits = 2
	// ratioDigits is the precision of the sold proportion of a holding.
	ratioDigits = 32
)

// D is a convenient factory for decimal.Decimal.
func D[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// ParseAmount parses a user supplied price or amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidInput, s)
	}
	return d, nil
}

// round2 rounds half to even on two fractional digits.
func round2(d decimal.Decimal) decimal.Decimal { return d.RoundBank(amountDigits) }

// text is the canonical textual form of a stored amount: "5.00", "-45.00".
func text(d decimal.Decimal) string { return d.StringFixedBank(amountDigits) }

// divBank divides a by b and rounds half to even on 'precision' fractional digits.
//
// decimal.DivRound rounds half away from zero, hence the explicit tie breaking.
func divBank(a, b decimal.Decimal, precision int32) decimal.Decimal {
	q, r := a.QuoRem(b, precision)
	unit := decimal.New(1, -precision)
	// compare twice the remainder to one unit of the divisor.
	c := r.Abs().Mul(decimal.NewFromInt(2)).Cmp(b.Abs().Mul(unit))
	if c < 0 {
		return q
	}
	if c == 0 && q.Shift(precision).BigInt().Bit(0) == 0 {
		return q
	}
	if a.Sign()*b.Sign() < 0 {
		return q.Sub(unit)
	}
	return q.Add(unit)
}
