package eportfolio

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Investment is a single holding: a quantity of a stock or mutual fund, its
// last known price and its book value.
//
// The book value is the accumulated cost basis of the whole holding,
// acquisition fees included. It is never a per-unit value.
type Investment struct {
	kind      Kind
	symbol    string
	name      string
	quantity  int
	price     decimal.Decimal
	bookValue decimal.Decimal
}

// NewInvestment creates a freshly purchased holding.
//
// The book value is quantity*price plus the acquisition fee of the kind.
func NewInvestment(kind Kind, symbol, name string, quantity int, price decimal.Decimal) (*Investment, error) {
	symbol, name, err := checkIdentity(kind, symbol, name)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidInput, quantity)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidInput, price)
	}

	return &Investment{
		kind:      kind,
		symbol:    symbol,
		name:      name,
		quantity:  quantity,
		price:     round2(price),
		bookValue: round2(price.Mul(D(quantity))).Add(kind.AcquireFee()),
	}, nil
}

// NewInvestmentFromRecord recreates a holding whose book value is already
// known. No fee is applied: the book value already accounts for them.
// A holding sold out is never persisted, so quantity must be positive.
func NewInvestmentFromRecord(kind Kind, symbol, name string, quantity int, price, bookValue decimal.Decimal) (*Investment, error) {
	symbol, name, err := checkIdentity(kind, symbol, name)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidInput, quantity)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative, got %s", ErrInvalidInput, price)
	}
	return &Investment{
		kind:      kind,
		symbol:    symbol,
		name:      name,
		quantity:  quantity,
		price:     round2(price),
		bookValue: round2(bookValue),
	}, nil
}

// checkIdentity validates and normalizes the kind, symbol and name of an investment.
func checkIdentity(kind Kind, symbol, name string) (string, string, error) {
	if !kind.valid() {
		return "", "", fmt.Errorf("%w: unknown investment kind %d", ErrInvalidInput, kind)
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	name = strings.TrimSpace(name)
	if symbol == "" {
		return "", "", fmt.Errorf("%w: symbol is empty", ErrInvalidInput)
	}
	if name == "" {
		return "", "", fmt.Errorf("%w: name is empty", ErrInvalidInput)
	}
	// both end up in a comma separated, line based record.
	if strings.ContainsAny(symbol, ",\r\n") || strings.ContainsAny(name, ",\r\n") {
		return "", "", fmt.Errorf("%w: symbol and name must not contain commas or line breaks", ErrInvalidInput)
	}
	return symbol, name, nil
}

func (inv *Investment) Kind() Kind                 { return inv.kind }
func (inv *Investment) Symbol() string             { return inv.symbol }
func (inv *Investment) Name() string               { return inv.name }
func (inv *Investment) Quantity() int              { return inv.quantity }
func (inv *Investment) Price() decimal.Decimal     { return inv.price }
func (inv *Investment) BookValue() decimal.Decimal { return inv.bookValue }

// Buy acquires an additional quantity at price. The price becomes the
// current price of the holding.
func (inv *Investment) Buy(quantity int, price decimal.Decimal) error {
	if quantity < 0 {
		return illegalQuantity(Negative)
	}
	inv.bookValue = round2(inv.bookValue.Add(price.Mul(D(quantity)))).Add(inv.kind.AcquireFee())
	inv.quantity += quantity
	inv.price = round2(price)
	return nil
}

// Sell disposes of quantity at price and returns the realized gain, net of
// the trade fee.
//
// The book value is reduced in proportion of the quantity sold, the price
// becomes the current price of the holding.
func (inv *Investment) Sell(quantity int, price decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case quantity < 0:
		return decimal.Zero, illegalQuantity(Negative)
	case quantity == 0:
		return decimal.Zero, illegalQuantity(Zero)
	case quantity > inv.quantity:
		return decimal.Zero, illegalQuantity(MoreThanHolding)
	}

	payment := price.Mul(D(quantity))
	ratio := divBank(D(quantity), D(inv.quantity), ratioDigits)
	removed := round2(inv.bookValue.Mul(ratio))

	inv.bookValue = inv.bookValue.Sub(removed)
	inv.quantity -= quantity
	inv.price = round2(price)

	return round2(payment.Sub(removed)).Sub(inv.kind.TradeFee()), nil
}

// Gain returns what selling the whole holding at the current price would
// earn, net of the trade fee. It does not change the holding.
func (inv *Investment) Gain() decimal.Decimal {
	return inv.price.Mul(D(inv.quantity)).Sub(inv.bookValue).Sub(inv.kind.TradeFee())
}

// clone returns a copy that no portfolio operation mutates.
func (inv *Investment) clone() *Investment {
	c := *inv
	return &c
}

// MarketValue is the value of the holding at the current price.
func (inv *Investment) MarketValue() decimal.Decimal { return inv.price.Mul(D(inv.quantity)) }

// UpdatePrice overwrites the current price, rounded to cents.
//
// Unlike a plain overwrite, a price that is not positive is rejected with
// ErrInvalidInput and the holding is left unchanged.
func (inv *Investment) UpdatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidInput, price)
	}
	inv.price = round2(price)
	return nil
}

// Equal reports whether both investments have the same kind, symbol, name,
// quantity, price and book value.
func (inv *Investment) Equal(other *Investment) bool {
	if inv == nil || other == nil {
		return inv == other
	}
	return inv.kind == other.kind &&
		inv.symbol == other.symbol &&
		inv.name == other.name &&
		inv.quantity == other.quantity &&
		inv.price.Equal(other.price) &&
		inv.bookValue.Equal(other.bookValue)
}

// String returns the textual representation used by queries.
func (inv *Investment) String() string {
	return fmt.Sprintf("%s{symbol=%s, name=%s, quantity=%d, price=%s, bookValue=%s}",
		inv.kind.title(), inv.symbol, inv.name, inv.quantity, text(inv.price), text(inv.bookValue))
}

// Record returns the persisted form: KIND,SYMBOL,NAME,QUANTITY,PRICE,BOOKVALUE
func (inv *Investment) Record() string {
	return fmt.Sprintf("%s,%s,%s,%d,%s,%s",
		inv.kind.label(), inv.symbol, inv.name, inv.quantity, text(inv.price), text(inv.bookValue))
}

func (inv *Investment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", inv.kind.String())
	w.Append("symbol", inv.symbol)
	w.Append("name", inv.name)
	w.Append("quantity", inv.quantity)
	w.Append("price", json.Number(text(inv.price)))
	w.Append("bookValue", json.Number(text(inv.bookValue)))
	w.Append("gain", json.Number(text(inv.Gain())))
	return w.MarshalJSON()
}
