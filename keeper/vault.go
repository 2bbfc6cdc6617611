package keeper

import (
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/types"
)

// InitVault creates the vault for tokenID held in the asset ledger at
// assetRef. The vault starts with no assets and no shares; metadata
// describes the share token it issues.
func (k *Keeper) InitVault(ctx sdk.Context, assetRef, tokenID, owner string, metadata types.ShareMetadata) (*types.Vault, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	exists, err := k.Vault.Has(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, types.ErrVaultAlreadyExists
	}

	vault := types.NewVault(assetRef, tokenID, owner, metadata)
	if err := k.validateVault(*vault); err != nil {
		return nil, err
	}
	if err := k.Vault.Set(ctx, *vault); err != nil {
		return nil, fmt.Errorf("failed to store vault: %w", err)
	}

	k.getLogger(ctx).Info("vault initialized", "asset_ref", assetRef, "token_id", tokenID, "owner", owner, "symbol", metadata.Symbol)
	return vault, nil
}

// GetVault returns the vault, failing with ErrVaultNotFound before InitVault.
func (k Keeper) GetVault(ctx sdk.Context) (types.Vault, error) {
	vault, err := k.Vault.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return types.Vault{}, types.ErrVaultNotFound
	}
	if err != nil {
		return types.Vault{}, fmt.Errorf("failed to get vault: %w", err)
	}
	return vault, nil
}

func (k Keeper) validateVault(vault types.Vault) error {
	if err := vault.Validate(); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidVault, err.Error())
	}
	if err := k.validateAccount("asset ref", vault.AssetRef); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidVault, err.Error())
	}
	if err := k.validateAccount("owner", vault.Owner); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidVault, err.Error())
	}
	return nil
}
