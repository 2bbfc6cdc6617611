package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// PendingWithdrawal is the continuation context of a withdrawal whose asset
// transfer has been requested but not yet resolved. The shares and assets it
// records have already been removed from the owner's balance and the vault's
// total assets.
type PendingWithdrawal struct {
	Owner    string      `json:"owner"`
	Receiver string      `json:"receiver"`
	Shares   sdkmath.Int `json:"shares"`
	Assets   sdkmath.Int `json:"assets"`
	Memo     string      `json:"memo,omitempty"`
}

// Validate performs stateless validation of the pending withdrawal.
func (p PendingWithdrawal) Validate() error {
	if p.Owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if p.Receiver == "" {
		return fmt.Errorf("receiver cannot be empty")
	}
	if err := ValidatePositiveAmount("shares", p.Shares); err != nil {
		return err
	}
	return ValidatePositiveAmount("assets", p.Assets)
}

// PendingWithdrawalEntry pairs a pending withdrawal with its id.
type PendingWithdrawalEntry struct {
	ID         uint64            `json:"id"`
	Withdrawal PendingWithdrawal `json:"withdrawal"`
}
