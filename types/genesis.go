package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// ShareBalance is the share balance of a single account.
type ShareBalance struct {
	Account string      `json:"account"`
	Shares  sdkmath.Int `json:"shares"`
}

// GenesisState is the module's exported state. Vault is nil for a chain
// that has not initialized its vault yet.
type GenesisState struct {
	Vault                *Vault                   `json:"vault,omitempty"`
	Balances             []ShareBalance           `json:"balances"`
	PendingWithdrawals   []PendingWithdrawalEntry `json:"pending_withdrawals"`
	LatestSequenceNumber uint64                   `json:"latest_sequence_number"`
}

// DefaultGenesisState returns the default genesis state
func DefaultGenesisState() *GenesisState {
	return &GenesisState{}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if gs.Vault != nil {
		if err := gs.Vault.Validate(); err != nil {
			return fmt.Errorf("invalid vault: %w", err)
		}
	} else if len(gs.Balances) > 0 || len(gs.PendingWithdrawals) > 0 {
		return fmt.Errorf("balances and pending withdrawals require a vault")
	}

	supply := sdkmath.ZeroInt()
	seen := make(map[string]struct{}, len(gs.Balances))
	for i, b := range gs.Balances {
		if b.Account == "" {
			return fmt.Errorf("balance %d: account cannot be empty", i)
		}
		if _, ok := seen[b.Account]; ok {
			return fmt.Errorf("balance %d: duplicate account %s", i, b.Account)
		}
		seen[b.Account] = struct{}{}
		if err := ValidatePositiveAmount("shares", b.Shares); err != nil {
			return fmt.Errorf("balance %d: %w", i, err)
		}
		supply = supply.Add(b.Shares)
		if supply.GT(MaxUint128) {
			return fmt.Errorf("total shares exceed 128 bits")
		}
	}

	ids := make(map[uint64]struct{}, len(gs.PendingWithdrawals))
	for i, e := range gs.PendingWithdrawals {
		if _, ok := ids[e.ID]; ok {
			return fmt.Errorf("pending withdrawal %d: duplicate id %d", i, e.ID)
		}
		ids[e.ID] = struct{}{}
		if e.ID >= gs.LatestSequenceNumber {
			return fmt.Errorf("pending withdrawal %d: id %d is not below latest sequence number %d", i, e.ID, gs.LatestSequenceNumber)
		}
		if err := e.Withdrawal.Validate(); err != nil {
			return fmt.Errorf("pending withdrawal %d: %w", i, err)
		}
	}

	return nil
}
