// Package types provides common types used across Ajo.
package types

import (
	"fmt"
	"math/big"
)

// Amount represents a contribution or payout value in the smallest currency
// unit, with 128-bit signed range. All arithmetic is integer-only and
// checked: any result outside [MinAmount, MaxAmount] is rejected rather
// than wrapped.
//
// Amount is immutable: every operation returns a new value and never
// modifies its receiver.
type Amount struct {
	i *big.Int
}

// int128 bounds.
var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// MinAmount is the smallest representable Amount (−2^127).
func MinAmount() Amount { return Amount{i: new(big.Int).Set(minInt128)} }

// MaxAmount is the largest representable Amount (2^127 − 1).
func MaxAmount() Amount { return Amount{i: new(big.Int).Set(maxInt128)} }

// NewAmount creates an Amount from an int64 value.
func NewAmount(v int64) Amount {
	return Amount{i: big.NewInt(v)}
}

// ParseAmount parses a decimal string into an Amount.
// Returns an error for malformed input or values outside the 128-bit range.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return Amount{}, fmt.Errorf("types: parse amount: empty string")
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("types: parse amount %q: not a decimal integer", s)
	}
	if !inRange(i) {
		return Amount{}, fmt.Errorf("types: parse amount %q: outside 128-bit range", s)
	}
	return Amount{i: i}, nil
}

func inRange(i *big.Int) bool {
	return i.Cmp(minInt128) >= 0 && i.Cmp(maxInt128) <= 0
}

// value returns the backing integer, treating the zero Amount as 0.
func (a Amount) value() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

// Add returns a + b, or an error if the result overflows 128 bits.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := new(big.Int).Add(a.value(), b.value())
	if !inRange(sum) {
		return Amount{}, fmt.Errorf("types: amount addition overflows 128 bits")
	}
	return Amount{i: sum}, nil
}

// MulCount returns a × n, or an error if the result overflows 128 bits.
// Used to compute a cycle's pooled payout from the per-member amount.
func (a Amount) MulCount(n int) (Amount, error) {
	product := new(big.Int).Mul(a.value(), big.NewInt(int64(n)))
	if !inRange(product) {
		return Amount{}, fmt.Errorf("types: amount multiplication overflows 128 bits")
	}
	return Amount{i: product}, nil
}

// Sign returns -1, 0, or +1 depending on whether the amount is negative,
// zero, or positive.
func (a Amount) Sign() int { return a.value().Sign() }

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool { return a.Sign() == 0 }

// IsPositive reports whether the amount is strictly positive.
func (a Amount) IsPositive() bool { return a.Sign() > 0 }

// IsNegative reports whether the amount is strictly negative.
func (a Amount) IsNegative() bool { return a.Sign() < 0 }

// Cmp compares a and b, returning -1, 0, or +1.
func (a Amount) Cmp(b Amount) int { return a.value().Cmp(b.value()) }

// Equal reports whether two amounts are numerically equal.
func (a Amount) Equal(b Amount) bool { return a.Cmp(b) == 0 }

// Int64 returns the amount as an int64 and whether it fits.
func (a Amount) Int64() (int64, bool) {
	v := a.value()
	return v.Int64(), v.IsInt64()
}

// String returns the decimal representation.
func (a Amount) String() string { return a.value().String() }

// MarshalJSON encodes the amount as a JSON string to preserve the full
// 128-bit range across decoders that parse numbers as float64.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON decodes a JSON string (or bare number) decimal value.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
