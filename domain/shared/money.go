package shared

import "errors"

// DefaultCurrency is applied when a payload does not name one.
const DefaultCurrency = "CNY"

// Money is a value object: an amount in the smallest currency unit plus a
// currency code. Immutable; operations return new values.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value. An empty currency falls back to
// DefaultCurrency.
func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// Add returns the sum of two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errors.New("cannot add money with different currencies")
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Equals compares amount and currency.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
