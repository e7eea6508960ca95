package ledger

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrInvalidAccountNumber indicates a number that is not exactly 4 digits.
	ErrInvalidAccountNumber = errors.New("ledger: invalid account number")
	// ErrAccountRangeViolation indicates a number outside the SKR range of its type.
	ErrAccountRangeViolation = errors.New("ledger: account number outside range for type")
	// ErrDuplicateAccount indicates an active account with the same number exists.
	ErrDuplicateAccount = errors.New("ledger: account already exists")
	// ErrAccountNotFound indicates a missing or deactivated account.
	ErrAccountNotFound = errors.New("ledger: account not found")
	// ErrInvalidAmount indicates a non-positive amount or sub-cent precision.
	ErrInvalidAmount = errors.New("ledger: invalid amount")
	// ErrSameAccountTransfer indicates a transfer whose two sides are one account.
	ErrSameAccountTransfer = errors.New("ledger: transfer within the same account")
	// ErrInvalidAccountName indicates an empty, too short or too long name.
	ErrInvalidAccountName = errors.New("ledger: invalid account name")
	// ErrInvalidAccountType indicates a type outside the four HGB account types.
	ErrInvalidAccountType = errors.New("ledger: invalid account type")
)

// Error is a validation failure with enough context to render a message.
type Error struct {
	Kind    error  // one of the Err* kinds above
	Field   string // offending input field, if any
	Account string // account number involved, if any
	Detail  string
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Account != "" {
		msg += fmt.Sprintf(" [%s]", e.Account)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" (%s)", e.Field)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(number string) *Error {
	return &Error{Kind: ErrAccountNotFound, Account: number}
}
