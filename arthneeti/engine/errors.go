package engine

import (
	"errors"
	"fmt"
)

// Hard failures. Callers map these to their own not-found / forbidden
// handling; they are distinct from player-correctable rejections.
var (
	ErrNotFound = errors.New("resource not found")
	ErrNotOwner = errors.New("session does not belong to user")
	ErrInactive = errors.New("session is no longer active")
)

// Action rejection codes.
const (
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInsufficientUnits = "INSUFFICIENT_UNITS"
	CodeLocked            = "LEVEL_LOCKED"
	CodeInvalidSector     = "INVALID_SECTOR"
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeInvalidLoan       = "INVALID_LOAN_TYPE"
	CodeLoanRejected      = "LOAN_REJECTED"
	CodeIPOClosed         = "IPO_CLOSED"
	CodeIPODuplicate      = "IPO_DUPLICATE"
	CodeInvalidFund       = "INVALID_FUND"
	CodeNoLifelines       = "NO_LIFELINES"
)

// ActionError is a player-correctable rejection: the action was refused,
// nothing was mutated, and the player may retry with different input.
type ActionError struct {
	Code    string
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func reject(code, format string, args ...any) *ActionError {
	return &ActionError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err is an action rejection (as opposed to
// a hard failure).
func IsRejection(err error) bool {
	var ae *ActionError
	return errors.As(err, &ae)
}
