package keeper

import (
	"sync"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/store"
	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/container"
	"github.com/provlabs/mtvault/queue"
	"github.com/provlabs/mtvault/types"
)

type Keeper struct {
	schema       collections.Schema
	addressCodec address.Codec
	assetLedger  types.AssetLedger

	// mu serializes state-mutating steps. It is shared by copies of the keeper
	// and is never held while a withdrawal waits on its transfer.
	mu *sync.Mutex
	// awaiting holds the ids of withdrawals whose initiator is still waiting
	// on the transfer outcome. Guarded by mu.
	awaiting map[uint64]struct{}

	Vault              collections.Item[types.Vault]
	Shares             *container.ShareLedger
	PendingWithdrawals *queue.PendingWithdrawalQueue
}

func NewKeeper(
	storeService store.KVStoreService,
	addressCodec address.Codec,
	assetLedger types.AssetLedger,
) *Keeper {
	if assetLedger == nil {
		panic("asset ledger cannot be nil")
	}

	builder := collections.NewSchemaBuilder(storeService)

	keeper := &Keeper{
		addressCodec:       addressCodec,
		assetLedger:        assetLedger,
		mu:                 &sync.Mutex{},
		awaiting:           make(map[uint64]struct{}),
		Vault:              collections.NewItem(builder, types.VaultKeyPrefix, types.VaultName, types.VaultValue),
		Shares:             container.NewShareLedger(builder),
		PendingWithdrawals: queue.NewPendingWithdrawalQueue(builder),
	}

	schema, err := builder.Build()
	if err != nil {
		panic(err)
	}

	keeper.schema = schema
	return keeper
}

// getLogger returns a logger with vault module context.
func (k Keeper) getLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// validateAccount checks that addr is an account in the chain's bech32 encoding.
func (k Keeper) validateAccount(name, addr string) error {
	if _, err := k.addressCodec.StringToBytes(addr); err != nil {
		return errors.Wrapf(types.ErrInvalidRequest, "invalid %s address %q: %s", name, addr, err)
	}
	return nil
}
