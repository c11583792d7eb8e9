package budget

import (
	"coupon-budget-service/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits a monetary amount may carry.
const AmountScale = 2

var (
	ErrAmountNotPositive = errs.New("amount must be greater than zero")
	ErrAmountNegative    = errs.New("amount must not be negative")
	ErrAmountScale       = errs.New("amount has more than two fractional digits")
)

// Amount is an exact, non-negative monetary value.
type Amount struct {
	value decimal.Decimal
}

func NewAmount(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return Amount{}, ErrAmountNegative
	}
	if !d.Equal(d.Round(AmountScale)) {
		return Amount{}, ErrAmountScale
	}
	return Amount{value: d}, nil
}

func NewPositiveAmount(d decimal.Decimal) (Amount, error) {
	a, err := NewAmount(d)
	if err != nil {
		return Amount{}, err
	}
	if a.IsZero() {
		return Amount{}, ErrAmountNotPositive
	}
	return a, nil
}

// MustAmount parses s and panics on failure. Intended for fixtures and seeds.
func MustAmount(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	a, err := NewAmount(d)
	if err != nil {
		panic(err)
	}
	return a
}

func ZeroAmount() Amount {
	return Amount{value: decimal.Zero}
}

func (a Amount) Decimal() decimal.Decimal { return a.value }
func (a Amount) IsZero() bool             { return a.value.IsZero() }
func (a Amount) IsPositive() bool         { return a.value.IsPositive() }
func (a Amount) LessThan(b Amount) bool   { return a.value.LessThan(b.value) }
func (a Amount) Equal(b Amount) bool      { return a.value.Equal(b.value) }
func (a Amount) String() string           { return a.value.StringFixed(AmountScale) }

func (a Amount) Add(b Amount) Amount {
	return Amount{value: a.value.Add(b.value)}
}

func (a Amount) Sub(b Amount) (Amount, error) {
	diff := a.value.Sub(b.value)
	if diff.IsNegative() {
		return Amount{}, ErrAmountNegative
	}
	return Amount{value: diff}, nil
}
