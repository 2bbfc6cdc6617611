package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils"
)

// poolState is the pair of totals every conversion is evaluated against.
type poolState struct {
	vault       types.Vault
	totalShares math.Int
}

func (k Keeper) getPoolState(ctx sdk.Context) (poolState, error) {
	vault, err := k.GetVault(ctx)
	if err != nil {
		return poolState{}, err
	}
	totalShares, err := k.Shares.TotalIssued(ctx)
	if err != nil {
		return poolState{}, err
	}
	return poolState{vault: vault, totalShares: totalShares}, nil
}

func (p poolState) sharesForAssets(assets math.Int, r utils.Rounding) (math.Int, error) {
	return utils.SharesForAssets(assets, p.vault.TotalAssets, p.totalShares, r)
}

func (p poolState) assetsForShares(shares math.Int, r utils.Rounding) (math.Int, error) {
	return utils.AssetsForShares(shares, p.vault.TotalAssets, p.totalShares, r)
}

// ConvertToShares returns the shares a deposit of assets would mint, rounded down.
func (k Keeper) ConvertToShares(ctx sdk.Context, assets math.Int) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	pool, err := k.getPoolState(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return pool.sharesForAssets(assets, utils.RoundDown)
}

// ConvertToAssets returns the assets shares are worth, rounded down.
func (k Keeper) ConvertToAssets(ctx sdk.Context, shares math.Int) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	pool, err := k.getPoolState(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return pool.assetsForShares(shares, utils.RoundDown)
}

// PreviewWithdraw returns the shares a withdrawal of assets would burn, rounded up.
func (k Keeper) PreviewWithdraw(ctx sdk.Context, assets math.Int) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	pool, err := k.getPoolState(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return pool.sharesForAssets(assets, utils.RoundUp)
}

// MaxRedeem returns the shares owner can redeem, which is its share balance.
func (k Keeper) MaxRedeem(ctx sdk.Context, owner string) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, err := k.GetVault(ctx); err != nil {
		return math.Int{}, err
	}
	return k.Shares.BalanceOf(ctx, owner)
}

// MaxWithdraw returns the assets owner can withdraw, which is its share
// balance converted at the current rate and rounded down.
func (k Keeper) MaxWithdraw(ctx sdk.Context, owner string) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	pool, err := k.getPoolState(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return k.maxWithdraw(ctx, pool, owner)
}

func (k Keeper) maxWithdraw(ctx sdk.Context, pool poolState, owner string) (math.Int, error) {
	balance, err := k.Shares.BalanceOf(ctx, owner)
	if err != nil {
		return math.Int{}, err
	}
	return pool.assetsForShares(balance, utils.RoundDown)
}

// TotalAssets returns the assets the vault accounts for.
func (k Keeper) TotalAssets(ctx sdk.Context) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	vault, err := k.GetVault(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return vault.TotalAssets, nil
}
