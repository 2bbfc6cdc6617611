package types

import (
	"math/big"

	"cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// MaxUint128 is the largest amount the vault accepts for assets or shares.
var MaxUint128 = sdkmath.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// ValidateAmount checks that amt is set, non-negative and fits in 128 bits.
func ValidateAmount(name string, amt sdkmath.Int) error {
	if amt.IsNil() {
		return errors.Wrapf(ErrInvalidAmount, "%s cannot be nil", name)
	}
	if amt.IsNegative() {
		return errors.Wrapf(ErrInvalidAmount, "%s cannot be negative: %s", name, amt)
	}
	if amt.GT(MaxUint128) {
		return errors.Wrapf(ErrOverflow, "%s exceeds 128 bits: %s", name, amt)
	}
	return nil
}

// ValidatePositiveAmount is ValidateAmount that also rejects zero.
func ValidatePositiveAmount(name string, amt sdkmath.Int) error {
	if err := ValidateAmount(name, amt); err != nil {
		return err
	}
	if amt.IsZero() {
		return errors.Wrapf(ErrInvalidAmount, "%s must be positive", name)
	}
	return nil
}
