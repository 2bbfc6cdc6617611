package keeper

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils"
)

// ResolveWithdrawal settles the pending withdrawal id with the outcome of its
// transfer and returns the assets settled.
//
// On success the burn becomes final and the withdrawn assets are returned.
// On failure the shares are credited back to the owner and the assets are
// returned to the vault's accounting, leaving the vault as it was before the
// withdrawal, and zero is returned.
//
// Only withdrawals left pending by a cancelled Redeem or Withdraw, or
// imported from genesis, can be resolved here. A withdrawal whose initiator
// is still waiting on its transfer fails with ErrWithdrawalInFlight.
//
// A withdrawal is resolved at most once; later calls for the same id fail
// with ErrPendingWithdrawalNotFound. If a rollback cannot be applied, a
// CriticalError is returned and the withdrawal stays pending.
func (k *Keeper) ResolveWithdrawal(ctx sdk.Context, id uint64, outcome types.TransferOutcome) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.awaiting[id]; ok {
		return math.Int{}, sdkerrors.Wrapf(types.ErrWithdrawalInFlight, "withdrawal %d", id)
	}
	return k.resolveWithdrawal(ctx, id, outcome)
}

// resolveWithdrawal applies the outcome. The caller must hold k.mu.
func (k *Keeper) resolveWithdrawal(ctx sdk.Context, id uint64, outcome types.TransferOutcome) (math.Int, error) {
	logger := k.getLogger(ctx)
	vault, err := k.GetVault(ctx)
	if err != nil {
		return math.Int{}, err
	}

	cacheCtx, write := ctx.CacheContext()
	pw, err := k.PendingWithdrawals.Dequeue(cacheCtx, id)
	if err != nil {
		return math.Int{}, err
	}

	if outcome.Success {
		cacheCtx.EventManager().EmitEvent(
			types.NewEventVaultWithdraw(pw.Owner, pw.Receiver, vault.AssetTokenID, pw.Assets, pw.Shares, pw.Memo),
		)
		write()
		logger.Info("withdrawal completed", "id", id, "owner", pw.Owner, "receiver", pw.Receiver, "assets", pw.Assets.String())
		return pw.Assets, nil
	}

	if err := k.rollbackWithdrawal(cacheCtx, vault, id, pw); err != nil {
		logger.Error("CRITICAL: failed to roll back withdrawal", "id", id, "owner", pw.Owner, "error", err)
		return math.Int{}, types.CriticalErr("withdrawal rollback failed", fmt.Errorf("withdrawal %d: %w", id, err))
	}
	write()
	logger.Info("withdrawal rolled back", "id", id, "owner", pw.Owner, "reason", outcome.String(), "shares", pw.Shares.String())
	return math.ZeroInt(), nil
}

// rollbackWithdrawal restores the shares and assets removed by commitWithdrawal.
func (k *Keeper) rollbackWithdrawal(ctx sdk.Context, vault types.Vault, id uint64, pw types.PendingWithdrawal) error {
	if err := k.Shares.Credit(ctx, pw.Owner, pw.Shares); err != nil {
		return fmt.Errorf("failed to credit %s shares to %s: %w", pw.Shares, pw.Owner, err)
	}
	totalAssets, err := utils.CheckedAdd(vault.TotalAssets, pw.Assets)
	if err != nil {
		return sdkerrors.Wrap(err, "total assets")
	}
	vault.TotalAssets = totalAssets
	if err := k.Vault.Set(ctx, vault); err != nil {
		return fmt.Errorf("failed to store vault: %w", err)
	}

	ctx.EventManager().EmitEvents(sdk.Events{
		types.NewEventFtMint(pw.Owner, pw.Shares, types.MemoWithdrawalRollback),
		types.NewEventWithdrawalRolledBack(id, pw),
	})
	return nil
}
