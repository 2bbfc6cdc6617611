package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// TransferRequest asks the asset ledger to move Amount of TokenID from the
// vault to Receiver.
type TransferRequest struct {
	Receiver string
	TokenID  string
	Amount   sdkmath.Int
	Memo     string
}

// TransferOutcome is the result of a TransferRequest.
type TransferOutcome struct {
	Success bool
	// Reason describes a failure when the ledger provided one.
	Reason string
}

// TransferSucceeded returns a successful outcome.
func TransferSucceeded() TransferOutcome {
	return TransferOutcome{Success: true}
}

// TransferFailed returns a failed outcome with the given reason.
func TransferFailed(reason string) TransferOutcome {
	return TransferOutcome{Success: false, Reason: reason}
}

func (o TransferOutcome) String() string {
	if o.Success {
		return "success"
	}
	if o.Reason == "" {
		return "failure"
	}
	return fmt.Sprintf("failure: %s", o.Reason)
}

// TransferNotification is the inbound transfer-and-notify call made by the
// asset ledger after it has credited the vault.
type TransferNotification struct {
	// Caller is the ledger account invoking the callback.
	Caller string `json:"caller"`
	// Sender initiated the transfer and receives the refund of unused amounts.
	Sender string `json:"sender"`
	// PreviousOwner held the tokens before the transfer.
	PreviousOwner string        `json:"previous_owner"`
	TokenIDs      []string      `json:"token_ids"`
	Amounts       []sdkmath.Int `json:"amounts"`
	// Msg is the optional deposit directive, see DepositMessage.
	Msg string `json:"msg"`
}
