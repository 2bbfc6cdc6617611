package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/types"
)

// TransferShares moves amount shares from sender to receiver. The vault's
// total assets and total shares are unchanged, so the exchange rate is too.
func (k *Keeper) TransferShares(ctx sdk.Context, sender, receiver string, amount math.Int, memo string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.validateAccount("sender", sender); err != nil {
		return err
	}
	if err := k.validateAccount("receiver", receiver); err != nil {
		return err
	}
	if _, err := k.GetVault(ctx); err != nil {
		return err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.Shares.Transfer(cacheCtx, sender, receiver, amount); err != nil {
		return err
	}
	cacheCtx.EventManager().EmitEvent(types.NewEventFtTransfer(sender, receiver, amount, memo))
	write()

	k.getLogger(ctx).Info("shares transferred", "sender", sender, "receiver", receiver, "amount", amount.String())
	return nil
}
