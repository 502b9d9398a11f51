package banking

import (
	"errors"
	"fmt"

	"github.com/tellerkit/teller/internal/model"
)

var (
	// ErrInvalidInput means a supplied field failed validation. Nothing
	// was changed. The concrete error is a *model.FieldError.
	ErrInvalidInput = model.ErrInvalidInput

	// ErrAuthentication means no account matches the account number and
	// PIN together. The message is the same whichever part was wrong.
	ErrAuthentication = errors.New("authentication failed: check account number or PIN")

	// ErrInvalidAmount means a transaction amount was non-positive, not a
	// whole number, or above the per-transaction limit.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds means a withdrawal exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrFieldIgnored marks a non-fatal update warning for one field.
	ErrFieldIgnored = errors.New("field ignored")

	// ErrPersistence means the change was applied in memory but the
	// ledger file could not be written.
	ErrPersistence = errors.New("change applied but not saved")

	// ErrAccountNumberSpace means no unused account number was found
	// within the allocation budget.
	ErrAccountNumberSpace = errors.New("could not allocate a unique account number")
)

// AmountError reports an amount outside (0, Limit]. When Overflow is set,
// Limit is the most the balance can still take.
type AmountError struct {
	Amount   int64
	Limit    int64
	Overflow bool
}

func (e *AmountError) Error() string {
	switch {
	case e.Overflow:
		return fmt.Sprintf("invalid amount %d: balance can take at most %d more", e.Amount, e.Limit)
	case e.Amount <= 0:
		return fmt.Sprintf("invalid amount %d: must be positive", e.Amount)
	}
	return fmt.Sprintf("invalid amount %d: exceeds the per-transaction limit of %d", e.Amount, e.Limit)
}

func (e *AmountError) Unwrap() error { return ErrInvalidAmount }

// FundsError reports a withdrawal larger than the balance.
type FundsError struct {
	Balance   int64
	Requested int64
}

func (e *FundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %d, current balance %d", e.Requested, e.Balance)
}

func (e *FundsError) Unwrap() error { return ErrInsufficientFunds }

// FieldWarning names an update field whose new value was rejected and
// left unchanged.
type FieldWarning struct {
	Field  string
	Reason string
}

func (w FieldWarning) Error() string {
	return fmt.Sprintf("new %s ignored: %s", w.Field, w.Reason)
}

func (w FieldWarning) Unwrap() error { return ErrFieldIgnored }

// PersistenceError wraps a failed save that followed an in-memory
// mutation. It matches both ErrPersistence and the underlying I/O error.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrPersistence, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
