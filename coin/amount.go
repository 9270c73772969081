/*
Package coin defines the value type moved between wallets. The chain runs a
single native currency, so a value is a plain count of base units with
overflow checked arithmetic.
*/
package coin

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/iov-one/tranche/errors"
)

// Amount is a count of base currency units.
type Amount uint64

// Add returns the sum of both amounts, or an error on overflow.
func (a Amount) Add(o Amount) (Amount, error) {
	if a > math.MaxUint64-o {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, o)
	}
	return a + o, nil
}

// Subtract returns a - o. Subtracting more than available is
// ErrInsufficientAmount, as no amount can be negative.
func (a Amount) Subtract(o Amount) (Amount, error) {
	if o > a {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "%d - %d", a, o)
	}
	return a - o, nil
}

// Multiply returns a * times, or an error on overflow.
func (a Amount) Multiply(times uint64) (Amount, error) {
	if times == 0 || a == 0 {
		return 0, nil
	}
	if uint64(a) > math.MaxUint64/times {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d", a, times)
	}
	return a * Amount(times), nil
}

// Divide splits the amount into given number of equal pieces and returns a
// single piece together with what is left over. Division truncates.
//
//	100 = 33 x 3 + 1
func (a Amount) Divide(pieces uint64) (one Amount, rest Amount, err error) {
	if pieces == 0 {
		return 0, 0, errors.Wrap(errors.ErrInput, "pieces must be greater than zero")
	}
	one = a / Amount(pieces)
	rest = a % Amount(pieces)
	return one, rest, nil
}

// IsZero returns true if there is nothing to move.
func (a Amount) IsZero() bool {
	return a == 0
}

// IsGTE returns true if a is greater or equal to o.
func (a Amount) IsGTE(o Amount) bool {
	return a >= o
}

// Compare returns 1 if a is greater, -1 if smaller and 0 if equal to o.
func (a Amount) Compare(o Amount) int {
	switch {
	case a > o:
		return 1
	case a < o:
		return -1
	default:
		return 0
	}
}

// Validate rejects the zero amount, which cannot be transferred.
func (a Amount) Validate() error {
	if a == 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	return nil
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// UnmarshalJSON accepts both a JSON number and a decimal string, as
// JavaScript clients cannot represent every uint64 as a number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = v
		return nil
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		return errors.Wrapf(errors.ErrInput, "amount: %s", err)
	}
	*a = Amount(n)
	return nil
}

// ParseAmount reads a base 10 representation of an amount.
func ParseAmount(s string) (Amount, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "amount %q", s)
	}
	return Amount(v), nil
}
