package types

import (
	"cosmossdk.io/collections"
)

const (
	// ModuleName defines the module name
	ModuleName = "mtvault"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// VaultKeyPrefix is the prefix of the vault singleton.
	VaultKeyPrefix = collections.NewPrefix(0)
	// VaultName is a human-readable name for the vault item.
	VaultName = "vault"
	// ShareBalancesKeyPrefix is the prefix to retrieve all share balances.
	ShareBalancesKeyPrefix = collections.NewPrefix(1)
	// ShareBalancesName is a human-readable name for the share balances collection.
	ShareBalancesName = "share_balances"
	// ShareSupplyKeyPrefix is the prefix of the total issued shares.
	ShareSupplyKeyPrefix = collections.NewPrefix(2)
	// ShareSupplyName is a human-readable name for the share supply item.
	ShareSupplyName = "share_supply"
	// PendingWithdrawalsKeyPrefix is the prefix of the pending withdrawal table.
	PendingWithdrawalsKeyPrefix = collections.NewPrefix(3)
	// PendingWithdrawalsName is a human-readable name for the pending withdrawal table.
	PendingWithdrawalsName = "pending_withdrawals"
	// PendingWithdrawalsByOwnerIndexPrefix is the prefix of the by-owner index of the pending withdrawal table.
	PendingWithdrawalsByOwnerIndexPrefix = collections.NewPrefix(4)
	// PendingWithdrawalsByOwnerIndexName is a human-readable name for the by-owner index.
	PendingWithdrawalsByOwnerIndexName = "pending_withdrawals_by_owner"
	// PendingWithdrawalSeqPrefix is the prefix of the withdrawal id sequence.
	PendingWithdrawalSeqPrefix = collections.NewPrefix(5)
	// PendingWithdrawalSeqName is a human-readable name for the withdrawal id sequence.
	PendingWithdrawalSeqName = "pending_withdrawal_seq"
)
