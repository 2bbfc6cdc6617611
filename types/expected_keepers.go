package types

import (
	context "context"

	sdkmath "cosmossdk.io/math"
)

// ShareLedger is the balance store of the vault's own share token.
type ShareLedger interface {
	Credit(ctx context.Context, account string, amount sdkmath.Int) error
	// Debit fails with ErrInsufficientShares when the balance is too low.
	Debit(ctx context.Context, account string, amount sdkmath.Int) error
	// Transfer moves shares between accounts without changing the total issued.
	Transfer(ctx context.Context, from, to string, amount sdkmath.Int) error
	BalanceOf(ctx context.Context, account string) (sdkmath.Int, error)
	TotalIssued(ctx context.Context) (sdkmath.Int, error)
}

// AssetLedger is the external multi-token ledger holding the vault's asset.
// Transfer moves tokens out of the vault's own ledger account. The outcome
// is delivered on the returned channel once the ledger has processed the
// request; a channel closed without a value is a failed transfer.
type AssetLedger interface {
	Transfer(ctx context.Context, req TransferRequest) <-chan TransferOutcome
}

// MultiTokenReceiver is implemented by accounts that accept
// transfer-and-notify calls from a multi-token ledger. The returned slice
// holds the unused amount per token, which the ledger refunds to the sender.
type MultiTokenReceiver interface {
	OnMultiTokenTransfer(ctx context.Context, notification TransferNotification) ([]sdkmath.Int, error)
}
