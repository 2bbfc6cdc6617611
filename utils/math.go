package utils

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/provlabs/mtvault/types"
)

// Rounding selects how MulDiv resolves a non-zero remainder.
type Rounding int

const (
	// RoundDown truncates toward zero.
	RoundDown Rounding = iota
	// RoundUp returns the ceiling of the quotient.
	RoundUp
)

func (r Rounding) String() string {
	switch r {
	case RoundDown:
		return "down"
	case RoundUp:
		return "up"
	default:
		return "unknown"
	}
}

// MulDiv returns round(x * y / denominator) for non-negative operands.
//
// The product is computed in math.Int, which holds 256 bits, so any pair of
// 128-bit operands (and one operand of up to 2^128, as produced by the
// virtual offset) multiplies without overflow:
//
//	down: floor(x*y / d)
//	up:   (x*y + d - 1) / d
//
// The result must fit in 128 bits; ErrOverflow is returned otherwise.
func MulDiv(x, y, denominator math.Int, r Rounding) (math.Int, error) {
	if x.IsNil() || y.IsNil() || denominator.IsNil() {
		return math.Int{}, errors.Wrap(types.ErrInvalidAmount, "mul div operand cannot be nil")
	}
	if x.IsNegative() || y.IsNegative() || denominator.IsNegative() {
		return math.Int{}, errors.Wrap(types.ErrInvalidAmount, "mul div operands cannot be negative")
	}
	if denominator.IsZero() {
		return math.Int{}, types.ErrDivisionByZero
	}

	num, err := x.SafeMul(y)
	if err != nil {
		return math.Int{}, errors.Wrapf(types.ErrOverflow, "%s * %s: %s", x, y, err)
	}
	if r == RoundUp {
		product := num
		num, err = product.SafeAdd(denominator.SubRaw(1))
		if err != nil {
			return math.Int{}, errors.Wrapf(types.ErrOverflow, "rounding %s / %s up: %s", product, denominator, err)
		}
	}

	result := num.Quo(denominator)
	if result.GT(types.MaxUint128) {
		return math.Int{}, errors.Wrapf(types.ErrOverflow, "%s * %s / %s does not fit in 128 bits", x, y, denominator)
	}
	return result, nil
}

// CheckedAdd returns a + b, failing with ErrOverflow when the sum exceeds 128 bits.
func CheckedAdd(a, b math.Int) (math.Int, error) {
	sum, err := a.SafeAdd(b)
	if err != nil {
		return math.Int{}, errors.Wrapf(types.ErrOverflow, "%s + %s: %s", a, b, err)
	}
	if sum.GT(types.MaxUint128) {
		return math.Int{}, errors.Wrapf(types.ErrOverflow, "%s + %s does not fit in 128 bits", a, b)
	}
	return sum, nil
}

// CheckedSub returns a - b, failing with ErrUnderflow when b > a.
func CheckedSub(a, b math.Int) (math.Int, error) {
	if b.GT(a) {
		return math.Int{}, errors.Wrapf(types.ErrUnderflow, "%s - %s", a, b)
	}
	return a.Sub(b), nil
}
