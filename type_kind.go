package eportfolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind selects the variant of an investment and therefore its fee policy.
type Kind int

const (
	// Stock is charged a commission on every acquisition and on every trade.
	Stock Kind = iota
	// MutualFund is charged a redemption fee when sold, never when bought.
	MutualFund
)

// feePolicy holds the fixed fees applied by the shared book value arithmetic.
type feePolicy struct {
	onAcquire decimal.Decimal // added to the book value on construction and on every buy
	onTrade   decimal.Decimal // subtracted from every realized or hypothetical gain
}

var feePolicies = [...]feePolicy{
	Stock: {
		onAcquire: decimal.RequireFromString("9.99"),
		onTrade:   decimal.RequireFromString("9.99"),
	},
	MutualFund: {
		onAcquire: decimal.Zero,
		onTrade:   decimal.NewFromInt(45),
	},
}

// record labels, as persisted in the first field of a portfolio line.
const (
	stockLabel      = "STOCK"
	mutualFundLabel = "MUTUAL FUND"
)

func (k Kind) valid() bool { return k == Stock || k == MutualFund }

func (k Kind) fees() feePolicy { return feePolicies[k] }

// AcquireFee returns the fee added to the book value each time this kind is acquired.
func (k Kind) AcquireFee() decimal.Decimal { return k.fees().onAcquire }

// TradeFee returns the fee subtracted from the gain each time this kind is sold.
func (k Kind) TradeFee() decimal.Decimal { return k.fees().onTrade }

func (k Kind) String() string {
	switch k {
	case Stock:
		return "stock"
	case MutualFund:
		return "fund"
	default:
		return "unknown"
	}
}

// label returns the persisted name of the kind.
func (k Kind) label() string {
	if k == MutualFund {
		return mutualFundLabel
	}
	return stockLabel
}

// title is used in the textual representation of an investment.
func (k Kind) title() string {
	if k == MutualFund {
		return "MutualFund"
	}
	return "Stock"
}

// ParseKind parses a kind as typed by a user ("stock", "fund", "mutual fund", ...)
// or as persisted in a record ("STOCK", "MUTUAL FUND").
func ParseKind(s string) (Kind, error) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "stock", "s":
		return Stock, nil
	case "fund", "mutual fund", "mutualfund", "mutual-fund", "mf":
		return MutualFund, nil
	default:
		return 0, fmt.Errorf("%w: unknown investment kind %q", ErrInvalidInput, s)
	}
}

// parseLabel parses the persisted form of a kind, ignoring case.
func parseLabel(s string) (Kind, bool) {
	switch strings.ToUpper(s) {
	case stockLabel:
		return Stock, true
	case mutualFundLabel:
		return MutualFund, true
	}
	return 0, false
}
