package mocks

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"cosmossdk.io/core/header"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/mtvault/keeper"
	"github.com/provlabs/mtvault/types"
	"github.com/provlabs/mtvault/utils"
)

// NewVaultKeeper returns an instance of the Keeper backed by an in-memory
// store and the given asset ledger. The ledger is not told about the vault.
func NewVaultKeeper(
	t testing.TB,
	assetLedger types.AssetLedger,
) (sdk.Context, *keeper.Keeper) {
	key := storetypes.NewKVStoreKey(types.ModuleName)
	tkey := storetypes.NewTransientStoreKey(fmt.Sprintf("transient_%s", types.ModuleName))
	wrapper := testutil.DefaultContextWithDB(t, key, tkey)

	k := keeper.NewKeeper(
		runtime.NewKVStoreService(key),
		addresscodec.NewBech32Codec(utils.AccountPrefix),
		assetLedger,
	)

	ctx := wrapper.Ctx.WithHeaderInfo(header.Info{Time: time.Now().UTC()}).WithLogger(log.NewNopLogger())
	return ctx, k
}

// VaultFixture wires a keeper to an AssetLedger and initializes the vault.
type VaultFixture struct {
	Ctx    sdk.Context
	Keeper *keeper.Keeper
	Ledger *AssetLedger

	LedgerAddr string
	VaultAddr  string
	Owner      string
	TokenID    string
	Metadata   types.ShareMetadata
}

// ShareMetadata returns the share token metadata the fixture uses for tokenID.
func ShareMetadata(tokenID string) types.ShareMetadata {
	return types.ShareMetadata{
		Name:     "Vault " + tokenID + " shares",
		Symbol:   "v" + strings.ToUpper(tokenID),
		Decimals: 6,
	}
}

// NewVaultFixture returns an initialized vault for tokenID with no assets.
func NewVaultFixture(t testing.TB, tokenID string) *VaultFixture {
	f := &VaultFixture{
		LedgerAddr: utils.TestAddress().Bech32,
		VaultAddr:  utils.TestAddress().Bech32,
		Owner:      utils.TestAddress().Bech32,
		TokenID:    tokenID,
		Metadata:   ShareMetadata(tokenID),
	}
	f.Ledger = NewAssetLedger(f.LedgerAddr, f.VaultAddr)
	f.Ctx, f.Keeper = NewVaultKeeper(t, f.Ledger)
	f.Ledger.SetReceiver(f.VaultAddr, f.Keeper)

	if _, err := f.Keeper.InitVault(f.Ctx, f.LedgerAddr, tokenID, f.Owner, f.Metadata); err != nil {
		t.Fatalf("failed to init vault: %v", err)
	}
	return f
}

// Deposit sends amount from sender to the vault with the given message and
// returns the amount the vault used.
func (f *VaultFixture) Deposit(sender string, amount int64, msg string) (math.Int, error) {
	return f.Ledger.TransferAndNotify(f.Ctx, sender, f.VaultAddr, f.TokenID, math.NewInt(amount), msg)
}
