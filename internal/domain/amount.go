package domain

import (
	"fmt"
	"math/big"
)

// Amount is a non-negative arbitrary-precision quantity of an asset's
// smallest unit. The zero value is zero. Amounts are immutable: arithmetic
// returns new values and never aliases internal state.
//
// Raised capital and profit balances are wei-scale integers that overflow
// int64, so everything money-shaped in the system goes through this type.
type Amount struct {
	i *big.Int
}

// ZeroAmount returns the zero amount.
func ZeroAmount() Amount { return Amount{} }

// NewAmount creates an Amount from a non-negative int64.
// Negative values are clamped to zero.
func NewAmount(v int64) Amount {
	if v <= 0 {
		return Amount{}
	}
	return Amount{i: big.NewInt(v)}
}

// AmountFromBig creates an Amount from a big.Int, copying the value.
// Returns ErrValidation (wrapped) for negative values.
func AmountFromBig(v *big.Int) (Amount, error) {
	if v == nil {
		return Amount{}, nil
	}
	if v.Sign() < 0 {
		return Amount{}, NewValidationError("amount", "must not be negative")
	}
	if v.Sign() == 0 {
		return Amount{}, nil
	}
	return Amount{i: new(big.Int).Set(v)}, nil
}

// ParseAmount parses a base-10 string into an Amount.
func ParseAmount(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, NewValidationError("amount", fmt.Sprintf("not a base-10 integer: %q", s))
	}
	return AmountFromBig(v)
}

// BigInt returns a copy of the underlying integer.
func (a Amount) BigInt() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.i)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a.i == nil || a.i.Sign() == 0 }

// Cmp compares a and b: -1 if a < b, 0 if equal, +1 if a > b.
func (a Amount) Cmp(b Amount) int { return a.BigInt().Cmp(b.BigInt()) }

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	return Amount{i: new(big.Int).Add(a.i, b.i)}
}

// Sub returns a - b. Returns ErrValidation (wrapped) if b > a;
// amounts never go negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Cmp(b) < 0 {
		return Amount{}, NewValidationError("amount", "subtraction would go negative")
	}
	if b.IsZero() {
		return a, nil
	}
	return AmountFromBig(new(big.Int).Sub(a.i, b.i))
}

func (a Amount) String() string { return a.BigInt().String() }

// MarshalJSON encodes the amount as a decimal string, since wei-scale values
// do not fit in a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a decimal string or a bare JSON integer.
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
