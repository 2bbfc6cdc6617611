package mtvault

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/errors"

	"github.com/provlabs/mtvault/types"
)

// DecodeGenesis parses and validates a JSON genesis state.
func DecodeGenesis(bz json.RawMessage) (*types.GenesisState, error) {
	var genesis types.GenesisState
	if err := json.Unmarshal(bz, &genesis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	if err := genesis.Validate(); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid %s genesis state: %s", types.ModuleName, err)
	}
	return &genesis, nil
}

// EncodeGenesis renders a genesis state as indented JSON.
func EncodeGenesis(genesis *types.GenesisState) (json.RawMessage, error) {
	bz, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s genesis state: %w", types.ModuleName, err)
	}
	return bz, nil
}
