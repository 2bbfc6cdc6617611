package utils

import (
	"cosmossdk.io/math"

	"github.com/provlabs/mtvault/types"
)

// VirtualAssets is added to the total assets, never to the total shares, in
// every steady-state conversion. A lone deposit of one unit into a large
// pool therefore rounds down to zero shares, which makes donating assets to
// skew the share price unprofitable.
var VirtualAssets = math.NewInt(1)

// SharesForAssets returns the shares that correspond to assets at the given
// pool state.
//
//	if totalShares == 0:
//	    shares = assets
//	else:
//	    shares = round( assets * totalShares / (totalAssets + VirtualAssets) )
//
// The first deposit into an empty vault mints 1:1 and anchors the rate.
// All inputs must be valid 128-bit amounts.
func SharesForAssets(assets, totalAssets, totalShares math.Int, r Rounding) (math.Int, error) {
	if err := validateConversionInputs(assets, totalAssets, totalShares); err != nil {
		return math.Int{}, err
	}
	if totalShares.IsZero() {
		return assets, nil
	}
	return MulDiv(assets, totalShares, totalAssets.Add(VirtualAssets), r)
}

// AssetsForShares is the inverse of SharesForAssets.
//
//	if totalShares == 0:
//	    assets = shares
//	else:
//	    assets = round( shares * (totalAssets + VirtualAssets) / totalShares )
func AssetsForShares(shares, totalAssets, totalShares math.Int, r Rounding) (math.Int, error) {
	if err := validateConversionInputs(shares, totalAssets, totalShares); err != nil {
		return math.Int{}, err
	}
	if totalShares.IsZero() {
		return shares, nil
	}
	return MulDiv(shares, totalAssets.Add(VirtualAssets), totalShares, r)
}

func validateConversionInputs(amount, totalAssets, totalShares math.Int) error {
	if err := types.ValidateAmount("amount", amount); err != nil {
		return err
	}
	if err := types.ValidateAmount("total assets", totalAssets); err != nil {
		return err
	}
	return types.ValidateAmount("total shares", totalShares)
}
