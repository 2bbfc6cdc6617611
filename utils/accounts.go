package utils

import (
	"github.com/cometbft/cometbft/crypto/secp256k1"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AccountPrefix is the bech32 prefix used for accounts in tests and tooling.
const AccountPrefix = "cosmos"

type Address struct {
	Bytes  []byte
	Bech32 string
}

// TestAddress returns a fresh random account.
func TestAddress() Address {
	key := secp256k1.GenPrivKey()
	bytes := key.PubKey().Address().Bytes()

	return Address{
		Bytes:  bytes,
		Bech32: generateAddress(AccountPrefix, bytes),
	}
}

func generateAddress(prefix string, bytes []byte) string {
	address, err := sdk.Bech32ifyAddressBytes(prefix, bytes)
	if err != nil {
		panic("error during test address creation")
	}
	return address
}
