package money

import (
	"github.com/shopspring/decimal"
)

// Amount is a monetary value in minor units (cents).
// All ledger arithmetic happens on this fixed-point representation so that
// repeated deposits and withdrawals never accumulate binary-float drift.
type Amount int64

// FromFloat converts a human-supplied amount to cents, rounding to two
// fractional digits half away from zero ("2.005" → 201).
// Callers are expected to reject NaN, Inf and negative inputs first.
func FromFloat(v float64) Amount {
	d := decimal.NewFromFloat(v).Round(2)
	return Amount(d.Shift(2).IntPart())
}

// Float64 converts the amount back to a float for API responses.
func (a Amount) Float64() float64 {
	f, _ := decimal.New(int64(a), -2).Float64()
	return f
}

// String formats the amount with exactly two fractional digits, e.g. "10.50".
func (a Amount) String() string {
	return decimal.New(int64(a), -2).StringFixed(2)
}
