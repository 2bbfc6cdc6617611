package keeper

import (
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/types"
)

// InitGenesis initializes the vault module state from genesis.
func (k Keeper) InitGenesis(ctx sdk.Context, genState *types.GenesisState) {
	if genState == nil {
		return
	}

	if err := genState.Validate(); err != nil {
		panic(fmt.Errorf("invalid vault genesis state: %w", err))
	}

	if genState.Vault != nil {
		if err := k.validateVault(*genState.Vault); err != nil {
			panic(err)
		}
		if err := k.Vault.Set(ctx, *genState.Vault); err != nil {
			panic(fmt.Errorf("failed to store vault: %w", err))
		}
	}

	if err := k.Shares.Import(ctx, genState.Balances); err != nil {
		panic(fmt.Errorf("failed to import share balances: %w", err))
	}

	if err := k.PendingWithdrawals.Import(ctx, genState.PendingWithdrawals, genState.LatestSequenceNumber); err != nil {
		panic(fmt.Errorf("failed to import pending withdrawals: %w", err))
	}
}

// ExportGenesis exports the current state of the vault module.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	genesis := types.DefaultGenesisState()

	vault, err := k.Vault.Get(ctx)
	switch {
	case err == nil:
		genesis.Vault = &vault
	case !errors.Is(err, collections.ErrNotFound):
		panic(fmt.Errorf("failed to get vault: %w", err))
	}

	genesis.Balances, err = k.Shares.Export(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to export share balances: %w", err))
	}

	genesis.PendingWithdrawals, genesis.LatestSequenceNumber, err = k.PendingWithdrawals.Export(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to export pending withdrawals: %w", err))
	}

	return genesis
}
