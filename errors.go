package eportfolio

import "errors"

var (
	// ErrInvalidInput reports malformed arguments: empty symbol or name,
	// non-positive quantity or price, unparsable numbers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIllegalQuantity matches every *IllegalQuantityError.
	ErrIllegalQuantity = errors.New("illegal quantity")
	// ErrInvestmentNotFound reports an operation on a symbol, or position, that is not held.
	ErrInvestmentNotFound = errors.New("investment not found")
	// ErrInvalidRecordFormat reports a malformed persisted line.
	ErrInvalidRecordFormat = errors.New("invalid record format")
)

// QuantityViolation tells why a trade quantity was rejected.
type QuantityViolation int

const (
	Negative QuantityViolation = iota
	Zero
	MoreThanHolding
)

// IllegalQuantityError is returned by trades with an unacceptable quantity.
type IllegalQuantityError struct {
	Reason QuantityViolation
}

func (e *IllegalQuantityError) Error() string {
	switch e.Reason {
	case Negative:
		return "negative quantity"
	case Zero:
		return "quantity to sell is zero"
	case MoreThanHolding:
		return "quantity to sell is more than holding"
	default:
		return ErrIllegalQuantity.Error()
	}
}

// Is makes errors.Is(err, ErrIllegalQuantity) true for any reason.
func (e *IllegalQuantityError) Is(target error) bool { return target == ErrIllegalQuantity }

func illegalQuantity(reason QuantityViolation) error { return &IllegalQuantityError{Reason: reason} }
