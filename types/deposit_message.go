package types

import (
	"encoding/json"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// DepositMessage is the optional directive a depositor attaches to a
// transfer-and-notify call. Every field is optional.
type DepositMessage struct {
	// MinShares rejects the whole deposit when fewer shares would be minted.
	MinShares *sdkmath.Int `json:"min_shares,omitempty"`
	// MaxShares caps the shares minted; the remainder is refunded.
	MaxShares *sdkmath.Int `json:"max_shares,omitempty"`
	// ReceiverID is credited with the shares instead of the sender.
	ReceiverID string `json:"receiver_id,omitempty"`
	// Memo is copied onto the deposit event.
	Memo string `json:"memo,omitempty"`
}

// ParseDepositMessage decodes msg into a directive. An empty message is the
// zero directive. Unknown fields are ignored.
func ParseDepositMessage(msg string) (DepositMessage, error) {
	var dm DepositMessage
	if strings.TrimSpace(msg) == "" {
		return dm, nil
	}
	if err := json.Unmarshal([]byte(msg), &dm); err != nil {
		return DepositMessage{}, fmt.Errorf("invalid deposit message: %w", err)
	}
	if err := dm.Validate(); err != nil {
		return DepositMessage{}, fmt.Errorf("invalid deposit message: %w", err)
	}
	return dm, nil
}

// Validate checks the bounds present on the directive.
func (m DepositMessage) Validate() error {
	if m.MinShares != nil {
		if err := ValidateAmount("min shares", *m.MinShares); err != nil {
			return err
		}
	}
	if m.MaxShares != nil {
		if err := ValidateAmount("max shares", *m.MaxShares); err != nil {
			return err
		}
	}
	return nil
}

// String encodes the directive as the JSON message understood by ParseDepositMessage.
func (m DepositMessage) String() string {
	bz, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(bz)
}
