package types

import (
	"strconv"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeFtMint               = "ft_mint"
	EventTypeFtBurn               = "ft_burn"
	EventTypeFtTransfer           = "ft_transfer"
	EventTypeVaultDeposit         = "vault_deposit"
	EventTypeVaultWithdraw        = "vault_withdraw"
	EventTypeWithdrawalInitiated  = "withdrawal_initiated"
	EventTypeWithdrawalRolledBack = "withdrawal_rolled_back"
	AttributeKeyOwner             = "owner"
	AttributeKeyOldOwner          = "old_owner"
	AttributeKeyNewOwner          = "new_owner"
	AttributeKeySender            = "sender"
	AttributeKeyReceiver          = "receiver"
	AttributeKeyTokenID           = "token_id"
	AttributeKeyAmount            = "amount"
	AttributeKeyAssets            = "assets"
	AttributeKeyShares            = "shares"
	AttributeKeyMemo              = "memo"
	AttributeKeyWithdrawalID      = "withdrawal_id"
	MemoDeposit                   = "Deposit"
	MemoWithdrawalRollback        = "Withdrawal rollback"
	MemoWithdrawal                = "Withdrawal"
)

// NewEventFtMint creates an event for shares credited to owner.
func NewEventFtMint(owner string, amount sdkmath.Int, memo string) sdk.Event {
	return sdk.NewEvent(
		EventTypeFtMint,
		sdk.NewAttribute(AttributeKeyOwner, owner),
		sdk.NewAttribute(AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(AttributeKeyMemo, memo),
	)
}

// NewEventFtBurn creates an event for shares debited from owner.
func NewEventFtBurn(owner string, amount sdkmath.Int, memo string) sdk.Event {
	return sdk.NewEvent(
		EventTypeFtBurn,
		sdk.NewAttribute(AttributeKeyOwner, owner),
		sdk.NewAttribute(AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(AttributeKeyMemo, memo),
	)
}

// NewEventFtTransfer creates an event for shares moved between accounts.
func NewEventFtTransfer(oldOwner, newOwner string, amount sdkmath.Int, memo string) sdk.Event {
	return sdk.NewEvent(
		EventTypeFtTransfer,
		sdk.NewAttribute(AttributeKeyOldOwner, oldOwner),
		sdk.NewAttribute(AttributeKeyNewOwner, newOwner),
		sdk.NewAttribute(AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(AttributeKeyMemo, memo),
	)
}

// NewEventVaultDeposit creates an event for a committed deposit.
func NewEventVaultDeposit(sender, owner, tokenID string, assets, shares sdkmath.Int, memo string) sdk.Event {
	return sdk.NewEvent(
		EventTypeVaultDeposit,
		sdk.NewAttribute(AttributeKeySender, sender),
		sdk.NewAttribute(AttributeKeyOwner, owner),
		sdk.NewAttribute(AttributeKeyTokenID, tokenID),
		sdk.NewAttribute(AttributeKeyAssets, assets.String()),
		sdk.NewAttribute(AttributeKeyShares, shares.String()),
		sdk.NewAttribute(AttributeKeyMemo, memo),
	)
}

// NewEventVaultWithdraw creates an event for a withdrawal whose transfer succeeded.
func NewEventVaultWithdraw(owner, receiver, tokenID string, assets, shares sdkmath.Int, memo string) sdk.Event {
	return sdk.NewEvent(
		EventTypeVaultWithdraw,
		sdk.NewAttribute(AttributeKeyOwner, owner),
		sdk.NewAttribute(AttributeKeyReceiver, receiver),
		sdk.NewAttribute(AttributeKeyTokenID, tokenID),
		sdk.NewAttribute(AttributeKeyAssets, assets.String()),
		sdk.NewAttribute(AttributeKeyShares, shares.String()),
		sdk.NewAttribute(AttributeKeyMemo, memo),
	)
}

// NewEventWithdrawalInitiated creates an event for a withdrawal entering the pending state.
func NewEventWithdrawalInitiated(id uint64, pw PendingWithdrawal) sdk.Event {
	return sdk.NewEvent(
		EventTypeWithdrawalInitiated,
		sdk.NewAttribute(AttributeKeyWithdrawalID, strconv.FormatUint(id, 10)),
		sdk.NewAttribute(AttributeKeyOwner, pw.Owner),
		sdk.NewAttribute(AttributeKeyReceiver, pw.Receiver),
		sdk.NewAttribute(AttributeKeyAssets, pw.Assets.String()),
		sdk.NewAttribute(AttributeKeyShares, pw.Shares.String()),
	)
}

// NewEventWithdrawalRolledBack creates an event for a withdrawal whose transfer failed.
func NewEventWithdrawalRolledBack(id uint64, pw PendingWithdrawal) sdk.Event {
	return sdk.NewEvent(
		EventTypeWithdrawalRolledBack,
		sdk.NewAttribute(AttributeKeyWithdrawalID, strconv.FormatUint(id, 10)),
		sdk.NewAttribute(AttributeKeyOwner, pw.Owner),
		sdk.NewAttribute(AttributeKeyAssets, pw.Assets.String()),
		sdk.NewAttribute(AttributeKeyShares, pw.Shares.String()),
	)
}
