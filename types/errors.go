package types

import "cosmossdk.io/errors"

var (
	ErrInvalidRequest            = errors.Register(ModuleName, 2, "invalid request")
	ErrInvalidVault              = errors.Register(ModuleName, 3, "invalid vault")
	ErrVaultNotFound             = errors.Register(ModuleName, 4, "vault not found")
	ErrVaultAlreadyExists        = errors.Register(ModuleName, 5, "vault already exists")
	ErrExceedsMaxRedeem          = errors.Register(ModuleName, 6, "exceeds max redeem")
	ErrExceedsMaxWithdraw        = errors.Register(ModuleName, 7, "exceeds max withdraw")
	ErrInsufficientShares        = errors.Register(ModuleName, 8, "insufficient shares")
	ErrOverflow                  = errors.Register(ModuleName, 9, "arithmetic overflow")
	ErrUnderflow                 = errors.Register(ModuleName, 10, "arithmetic underflow")
	ErrDivisionByZero            = errors.Register(ModuleName, 11, "division by zero")
	ErrInvalidAmount             = errors.Register(ModuleName, 12, "invalid amount")
	ErrPendingWithdrawalNotFound = errors.Register(ModuleName, 13, "pending withdrawal not found")
	ErrWithdrawalUnresolved      = errors.Register(ModuleName, 14, "withdrawal unresolved")
	ErrUnauthorized              = errors.Register(ModuleName, 15, "unauthorized")
	ErrWithdrawalInFlight        = errors.Register(ModuleName, 16, "withdrawal transfer in flight")
)

// CriticalError wraps an error that represents a failure leaving vault state
// inconsistent with the external asset ledger. It includes a stable, hard-coded
// Reason string that is decoupled from SDK or underlying error text.
type CriticalError struct {
	// Reason is a stable, hard-coded description of the failure.
	Reason string
	// Err is the underlying error, which may include deeper SDK or keeper details.
	Err error
}

// Error implements the error interface by returning the underlying error message.
func (e *CriticalError) Error() string { return e.Err.Error() }

// Unwrap allows errors.Unwrap and errors.Is/As to inspect the underlying error.
func (e *CriticalError) Unwrap() error { return e.Err }

// CriticalErr constructs a new CriticalError with the given reason string and underlying error.
func CriticalErr(reason string, err error) error {
	return &CriticalError{Reason: reason, Err: err}
}
