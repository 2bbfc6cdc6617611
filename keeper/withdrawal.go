package keeper

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils"
)

// Redeem burns shares of owner and transfers the assets they are worth,
// rounded down, to receiver (owner when empty). It returns the assets
// settled: the full amount when the transfer succeeded, zero when it failed
// and the withdrawal was rolled back.
//
// If ctx is cancelled before the transfer outcome arrives, Redeem returns
// ErrWithdrawalUnresolved. The withdrawal then stays pending with its shares
// and assets removed until ResolveWithdrawal is called for it. While Redeem
// is still waiting, ResolveWithdrawal refuses the id.
func (k *Keeper) Redeem(ctx sdk.Context, owner string, shares math.Int, receiver, memo string) (math.Int, error) {
	id, pw, tokenID, err := k.beginRedeem(ctx, owner, shares, receiver, memo)
	if err != nil {
		return math.Int{}, err
	}
	outcome, err := k.awaitTransfer(ctx, id, tokenID, pw)
	if err != nil {
		return math.Int{}, err
	}
	return k.settleWithdrawal(ctx, id, outcome)
}

// Withdraw transfers assets to receiver (owner when empty), burning the
// shares they require, rounded up. It returns the shares burned, zero when
// the transfer failed and the withdrawal was rolled back. Cancellation
// behaves as for Redeem.
func (k *Keeper) Withdraw(ctx sdk.Context, owner string, assets math.Int, receiver, memo string) (math.Int, error) {
	id, pw, tokenID, err := k.beginWithdraw(ctx, owner, assets, receiver, memo)
	if err != nil {
		return math.Int{}, err
	}
	outcome, err := k.awaitTransfer(ctx, id, tokenID, pw)
	if err != nil {
		return math.Int{}, err
	}
	settled, err := k.settleWithdrawal(ctx, id, outcome)
	if err != nil {
		return math.Int{}, err
	}
	if settled.IsZero() {
		return math.ZeroInt(), nil
	}
	return pw.Shares, nil
}

func (k *Keeper) beginRedeem(ctx sdk.Context, owner string, shares math.Int, receiver, memo string) (uint64, types.PendingWithdrawal, string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	receiver, err := k.validateWithdrawalAccounts(owner, receiver)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}
	if err := types.ValidatePositiveAmount("shares", shares); err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}
	pool, err := k.getPoolState(ctx)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}

	maxRedeem, err := k.Shares.BalanceOf(ctx, owner)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}
	if shares.GT(maxRedeem) {
		return 0, types.PendingWithdrawal{}, "", sdkerrors.Wrapf(types.ErrExceedsMaxRedeem, "redeem %s shares, max %s", shares, maxRedeem)
	}
	assets, err := pool.assetsForShares(shares, utils.RoundDown)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", fmt.Errorf("failed to calculate assets for %s shares: %w", shares, err)
	}
	if assets.IsZero() {
		return 0, types.PendingWithdrawal{}, "", sdkerrors.Wrapf(types.ErrInvalidAmount, "redeeming %s shares results in zero assets", shares)
	}

	pw := types.PendingWithdrawal{Owner: owner, Receiver: receiver, Shares: shares, Assets: assets, Memo: memo}
	id, err := k.commitWithdrawal(ctx, pool.vault, pw)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}
	k.awaiting[id] = struct{}{}
	return id, pw, pool.vault.AssetTokenID, nil
}

func (k *Keeper) beginWithdraw(ctx sdk.Context, owner string, assets math.Int, receiver, memo string) (uint64, types.PendingWithdrawal, string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	receiver, err := k.validateWithdrawalAccounts(owner, receiver)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}
	if err := types.ValidatePositiveAmount("assets", assets); err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}
	pool, err := k.getPoolState(ctx)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}

	maxWithdraw, err := k.maxWithdraw(ctx, pool, owner)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}
	if assets.GT(maxWithdraw) {
		return 0, types.PendingWithdrawal{}, "", sdkerrors.Wrapf(types.ErrExceedsMaxWithdraw, "withdraw %s assets, max %s", assets, maxWithdraw)
	}
	shares, err := pool.sharesForAssets(assets, utils.RoundUp)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", fmt.Errorf("failed to calculate shares for %s assets: %w", assets, err)
	}

	pw := types.PendingWithdrawal{Owner: owner, Receiver: receiver, Shares: shares, Assets: assets, Memo: memo}
	id, err := k.commitWithdrawal(ctx, pool.vault, pw)
	if err != nil {
		return 0, types.PendingWithdrawal{}, "", err
	}
	k.awaiting[id] = struct{}{}
	return id, pw, pool.vault.AssetTokenID, nil
}

func (k *Keeper) validateWithdrawalAccounts(owner, receiver string) (string, error) {
	if err := k.validateAccount("owner", owner); err != nil {
		return "", err
	}
	if receiver == "" {
		return owner, nil
	}
	if err := k.validateAccount("receiver", receiver); err != nil {
		return "", err
	}
	return receiver, nil
}

// commitWithdrawal applies the optimistic part of a withdrawal: the shares
// are burned, the assets leave the vault's accounting and the continuation
// context is stored. Nothing is written unless every step succeeds.
// The caller must hold k.mu.
func (k *Keeper) commitWithdrawal(ctx sdk.Context, vault types.Vault, pw types.PendingWithdrawal) (uint64, error) {
	cacheCtx, write := ctx.CacheContext()

	if err := k.Shares.Debit(cacheCtx, pw.Owner, pw.Shares); err != nil {
		return 0, err
	}
	totalAssets, err := utils.CheckedSub(vault.TotalAssets, pw.Assets)
	if err != nil {
		return 0, sdkerrors.Wrap(err, "total assets")
	}
	vault.TotalAssets = totalAssets
	if err := k.Vault.Set(cacheCtx, vault); err != nil {
		return 0, fmt.Errorf("failed to store vault: %w", err)
	}
	id, err := k.PendingWithdrawals.Enqueue(cacheCtx, pw)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue pending withdrawal: %w", err)
	}

	cacheCtx.EventManager().EmitEvents(sdk.Events{
		types.NewEventFtBurn(pw.Owner, pw.Shares, types.MemoWithdrawal),
		types.NewEventWithdrawalInitiated(id, pw),
	})
	write()

	k.getLogger(ctx).Info("withdrawal initiated", "id", id, "owner", pw.Owner, "receiver", pw.Receiver,
		"assets", pw.Assets.String(), "shares", pw.Shares.String())
	return id, nil
}

// awaitTransfer requests the asset transfer of a committed withdrawal and
// waits for its outcome without holding k.mu.
func (k *Keeper) awaitTransfer(ctx sdk.Context, id uint64, tokenID string, pw types.PendingWithdrawal) (types.TransferOutcome, error) {
	outcomes := k.assetLedger.Transfer(ctx, types.TransferRequest{
		Receiver: pw.Receiver,
		TokenID:  tokenID,
		Amount:   pw.Assets,
		Memo:     pw.Memo,
	})

	select {
	case outcome, ok := <-outcomes:
		if !ok {
			return types.TransferFailed("no outcome reported"), nil
		}
		return outcome, nil
	case <-ctx.Done():
		k.abandonWithdrawal(id)
		k.getLogger(ctx).Error("withdrawal left pending", "id", id, "error", ctx.Err())
		return types.TransferOutcome{}, sdkerrors.Wrapf(types.ErrWithdrawalUnresolved, "withdrawal %d: %s", id, ctx.Err())
	}
}

// settleWithdrawal resolves a withdrawal its initiator was waiting on.
func (k *Keeper) settleWithdrawal(ctx sdk.Context, id uint64, outcome types.TransferOutcome) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.awaiting, id)
	return k.resolveWithdrawal(ctx, id, outcome)
}

// abandonWithdrawal hands a withdrawal whose initiator stopped waiting over
// to ResolveWithdrawal.
func (k *Keeper) abandonWithdrawal(id uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.awaiting, id)
}
