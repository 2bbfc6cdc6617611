package types

import (
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// Vault is the singleton describing the managed asset and the vault's own
// accounting of it. Issued shares live in the share ledger and are not stored here.
type Vault struct {
	// AssetRef is the account of the external multi-token ledger holding the asset.
	AssetRef string `json:"asset_ref"`
	// AssetTokenID identifies the token class within the asset ledger.
	AssetTokenID string `json:"asset_token_id"`
	// TotalAssets is the amount of asset the vault accounts for.
	TotalAssets sdkmath.Int `json:"total_assets"`
	// Owner is the account that created the vault.
	Owner string `json:"owner"`
	// Metadata describes the vault's share token.
	Metadata ShareMetadata `json:"metadata"`
}

// MaxShareDecimals is the most decimals a 128-bit share amount can express.
const MaxShareDecimals = 38

// ShareMetadata is the display information of the vault's share token.
type ShareMetadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// Validate checks that the share token can be displayed.
func (m ShareMetadata) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("share name cannot be empty")
	}
	if strings.TrimSpace(m.Symbol) == "" {
		return fmt.Errorf("share symbol cannot be empty")
	}
	if m.Decimals > MaxShareDecimals {
		return fmt.Errorf("share decimals %d exceed %d", m.Decimals, MaxShareDecimals)
	}
	return nil
}

// NewVault returns an empty vault for the given asset.
func NewVault(assetRef, assetTokenID, owner string, metadata ShareMetadata) *Vault {
	return &Vault{
		AssetRef:     assetRef,
		AssetTokenID: assetTokenID,
		TotalAssets:  sdkmath.ZeroInt(),
		Owner:        owner,
		Metadata:     metadata,
	}
}

// Validate performs stateless validation of the vault fields. Account
// encoding is checked by the keeper's address codec.
func (v Vault) Validate() error {
	if strings.TrimSpace(v.AssetRef) == "" {
		return fmt.Errorf("asset ref cannot be empty")
	}
	if strings.TrimSpace(v.AssetTokenID) == "" {
		return fmt.Errorf("asset token id cannot be empty")
	}
	if strings.TrimSpace(v.Owner) == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if err := ValidateAmount("total assets", v.TotalAssets); err != nil {
		return err
	}
	return v.Metadata.Validate()
}
