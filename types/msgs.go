package types

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgRedeemRequest burns Shares of Owner and pays the assets they convert to.
type MsgRedeemRequest struct {
	Owner  string      `json:"owner"`
	Shares sdkmath.Int `json:"shares"`
	// Receiver defaults to Owner when empty.
	Receiver string `json:"receiver,omitempty"`
	Memo     string `json:"memo,omitempty"`
}

// MsgRedeemResponse holds the assets settled, zero when the transfer was rolled back.
type MsgRedeemResponse struct {
	Assets sdkmath.Int `json:"assets"`
}

// MsgWithdrawRequest pays Assets to the receiver, burning the shares they require.
type MsgWithdrawRequest struct {
	Owner  string      `json:"owner"`
	Assets sdkmath.Int `json:"assets"`
	// Receiver defaults to Owner when empty.
	Receiver string `json:"receiver,omitempty"`
	Memo     string `json:"memo,omitempty"`
}

// MsgWithdrawResponse holds the shares burned, zero when the transfer was rolled back.
type MsgWithdrawResponse struct {
	Shares sdkmath.Int `json:"shares"`
}

// MsgTransferSharesRequest moves Amount shares from Sender to Receiver.
type MsgTransferSharesRequest struct {
	Sender   string      `json:"sender"`
	Receiver string      `json:"receiver"`
	Amount   sdkmath.Int `json:"amount"`
	Memo     string      `json:"memo,omitempty"`
}

// MsgTransferSharesResponse is the response of a share transfer.
type MsgTransferSharesResponse struct{}

// ValidateBasic performs stateless validation on MsgRedeemRequest.
func (m MsgRedeemRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %q: %w", m.Owner, err)
	}
	if err := validateOptionalReceiver(m.Receiver); err != nil {
		return err
	}
	return ValidatePositiveAmount("shares", m.Shares)
}

// ValidateBasic performs stateless validation on MsgWithdrawRequest.
func (m MsgWithdrawRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %q: %w", m.Owner, err)
	}
	if err := validateOptionalReceiver(m.Receiver); err != nil {
		return err
	}
	return ValidatePositiveAmount("assets", m.Assets)
}

// ValidateBasic performs stateless validation on MsgTransferSharesRequest.
func (m MsgTransferSharesRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %q: %w", m.Sender, err)
	}
	if _, err := sdk.AccAddressFromBech32(m.Receiver); err != nil {
		return fmt.Errorf("invalid receiver address: %q: %w", m.Receiver, err)
	}
	if m.Sender == m.Receiver {
		return fmt.Errorf("sender and receiver must differ")
	}
	return ValidatePositiveAmount("amount", m.Amount)
}

func validateOptionalReceiver(receiver string) error {
	if receiver == "" {
		return nil
	}
	if _, err := sdk.AccAddressFromBech32(receiver); err != nil {
		return fmt.Errorf("invalid receiver address: %q: %w", receiver, err)
	}
	return nil
}

// ReceiverOrOwner returns the account that receives the redeemed assets.
func (m MsgRedeemRequest) ReceiverOrOwner() string {
	if m.Receiver == "" {
		return m.Owner
	}
	return m.Receiver
}

// ReceiverOrOwner returns the account that receives the withdrawn assets.
func (m MsgWithdrawRequest) ReceiverOrOwner() string {
	if m.Receiver == "" {
		return m.Owner
	}
	return m.Receiver
}

// Signer returns the account that must authorize the message.
func (m MsgRedeemRequest) Signer() string { return m.Owner }

// Signer returns the account that must authorize the message.
func (m MsgWithdrawRequest) Signer() string { return m.Owner }

// Signer returns the account that must authorize the message.
func (m MsgTransferSharesRequest) Signer() string { return m.Sender }

// MsgServer is the state-mutating surface of the vault exposed to signed
// messages. Deposits arrive through the asset ledger's transfer-and-notify
// call and withdrawal outcomes through the keeper, never as messages.
type MsgServer interface {
	Redeem(context.Context, *MsgRedeemRequest) (*MsgRedeemResponse, error)
	Withdraw(context.Context, *MsgWithdrawRequest) (*MsgWithdrawResponse, error)
	TransferShares(context.Context, *MsgTransferSharesRequest) (*MsgTransferSharesResponse, error)
}
