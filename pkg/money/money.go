// Package money provides exact monetary arithmetic for the deterministic
// parts of the engine, backed by shopspring/decimal.
package money

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision.
type Money struct {
	decimal.Decimal
}

// New creates a new Money instance from a float64.
func New(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// FromDecimal creates a new Money instance from a decimal.Decimal.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// FromString creates a new Money instance from a string.
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Zero is the zero monetary amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// Round rounds the amount to cents.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Add adds another Money amount.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// MulRate applies a fractional rate (e.g. a monthly interest rate).
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{m.Decimal.Mul(rate)}
}

// Min returns the smaller of the two amounts.
func (m Money) Min(other Money) Money {
	if m.Decimal.LessThan(other.Decimal) {
		return m
	}
	return other
}

// Annual converts a monthly amount to annual.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly.
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Float64 returns the amount as a float64, rounded to cents.
func (m Money) Float64() float64 {
	return m.Decimal.Round(2).InexactFloat64()
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// MonthlyRate converts an annual percentage rate (e.g. 19.99) to the
// fractional monthly rate used for compounding.
func MonthlyRate(annualPercent float64) decimal.Decimal {
	return decimal.NewFromFloat(annualPercent).
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(12))
}
