package models

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned when an Amount is built from a value below zero.
var ErrNegativeAmount = errors.New("amount must not be negative")

// Amount is a validated, non-negative monetary quantity.
// The zero value is a valid amount of 0.
type Amount struct {
	value decimal.Decimal
}

// NewAmount wraps value, rejecting anything below zero.
func NewAmount(value decimal.Decimal) (Amount, error) {
	if value.IsNegative() {
		return Amount{}, ErrNegativeAmount
	}
	return Amount{value: value}, nil
}

// MustNewAmount is NewAmount for values known to be valid. It panics otherwise.
func MustNewAmount(value decimal.Decimal) Amount {
	a, err := NewAmount(value)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Value() decimal.Decimal {
	return a.value
}

// Equal compares amounts numerically, so 10 and 10.00 are equal.
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) Cmp(other Amount) int {
	return a.value.Cmp(other.value)
}

func (a Amount) String() string {
	return a.value.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.value)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var v decimal.Decimal
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	parsed, err := NewAmount(v)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
