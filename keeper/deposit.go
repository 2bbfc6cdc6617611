package keeper

import (
	"context"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils"
)

var _ types.MultiTokenReceiver = (*Keeper)(nil)

// OnMultiTokenTransfer is invoked by the asset ledger after it has credited
// the vault with the transferred tokens. It mints shares for the used part of
// the deposit and returns the unused amount per token, which the ledger
// refunds to the sender.
//
// Notifications that do not come from the vault's asset ledger, or that are
// not a single transfer of the vault's token, are returned as fully unused
// without touching state. An error means the deposit could not be accounted
// for and nothing was committed.
func (k *Keeper) OnMultiTokenTransfer(goCtx context.Context, n types.TransferNotification) ([]math.Int, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	k.mu.Lock()
	defer k.mu.Unlock()

	logger := k.getLogger(ctx)
	unused := refundAll(n.Amounts)

	vault, err := k.GetVault(ctx)
	if err != nil {
		logger.Debug("deposit refunded", "reason", err.Error(), "sender", n.Sender)
		return unused, nil
	}
	if reason := checkNotification(vault, n); reason != "" {
		logger.Debug("deposit refunded", "reason", reason, "caller", n.Caller, "sender", n.Sender)
		return unused, nil
	}
	amount := n.Amounts[0]

	directive, err := types.ParseDepositMessage(n.Msg)
	if err == nil && directive.ReceiverID != "" {
		err = k.validateAccount("receiver", directive.ReceiverID)
	}
	if err != nil {
		logger.Debug("ignoring deposit message", "error", err.Error(), "sender", n.Sender)
		directive = types.DepositMessage{}
	}
	receiver := directive.ReceiverID
	if receiver == "" {
		receiver = n.Sender
	}

	pool, err := k.getPoolState(ctx)
	if err != nil {
		return nil, err
	}

	shares, err := pool.sharesForAssets(amount, utils.RoundDown)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate shares for %s assets: %w", amount, err)
	}
	if directive.MinShares != nil && shares.LT(*directive.MinShares) {
		logger.Debug("deposit refunded", "reason", "below min shares", "shares", shares.String(), "min_shares", directive.MinShares.String())
		return unused, nil
	}
	if directive.MaxShares != nil && shares.GT(*directive.MaxShares) {
		shares = *directive.MaxShares
	}

	usedAssets, err := pool.assetsForShares(shares, utils.RoundUp)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate assets for %s shares: %w", shares, err)
	}
	unusedAssets, err := utils.CheckedSub(amount, usedAssets)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "used assets exceed deposit")
	}
	if usedAssets.IsZero() {
		logger.Debug("deposit refunded", "reason", "deposit too small to mint shares", "amount", amount.String())
		return unused, nil
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.Shares.Credit(cacheCtx, receiver, shares); err != nil {
		return nil, fmt.Errorf("failed to credit %s shares to %s: %w", shares, receiver, err)
	}
	vault.TotalAssets, err = utils.CheckedAdd(vault.TotalAssets, usedAssets)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "total assets")
	}
	if err := k.Vault.Set(cacheCtx, vault); err != nil {
		return nil, fmt.Errorf("failed to store vault: %w", err)
	}

	cacheCtx.EventManager().EmitEvents(sdk.Events{
		types.NewEventFtMint(receiver, shares, types.MemoDeposit),
		types.NewEventVaultDeposit(n.Sender, receiver, vault.AssetTokenID, usedAssets, shares, directive.Memo),
	})
	write()

	logger.Info("deposit committed", "sender", n.Sender, "receiver", receiver, "assets", usedAssets.String(), "shares", shares.String(), "unused", unusedAssets.String())
	return []math.Int{unusedAssets}, nil
}

// checkNotification returns why n cannot be a deposit into vault, or "" if it can.
func checkNotification(vault types.Vault, n types.TransferNotification) string {
	switch {
	case n.Caller != vault.AssetRef:
		return "caller is not the asset ledger"
	case len(n.TokenIDs) != 1 || len(n.Amounts) != 1:
		return "expected exactly one token"
	case n.TokenIDs[0] != vault.AssetTokenID:
		return "unsupported token id"
	case types.ValidateAmount("amount", n.Amounts[0]) != nil:
		return "invalid amount"
	}
	return ""
}

// refundAll returns the amounts as fully unused.
func refundAll(amounts []math.Int) []math.Int {
	unused := make([]math.Int, len(amounts))
	copy(unused, amounts)
	return unused
}
