package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState           = errors.New("invalid state")
	ErrNoPriceAvailable       = errors.New("no price available")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrNumberingUnavailable   = errors.New("numbering unavailable")
)

// InvalidStateError reports an operation attempted from a status that does not allow it.
type InvalidStateError struct {
	Operation string
	Status    string
	Reason    string
}

func NewInvalidStateError(operation string, status fmt.Stringer) *InvalidStateError {
	return &InvalidStateError{
		Operation: operation,
		Status:    status.String(),
	}
}

// NewInvalidStateErrorWithReason is used when the status allows the operation
// but another precondition of the aggregate does not.
func NewInvalidStateErrorWithReason(operation string, status fmt.Stringer, reason string) *InvalidStateError {
	return &InvalidStateError{
		Operation: operation,
		Status:    status.String(),
		Reason:    reason,
	}
}

func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: cannot %s an order in %s status: %s", ErrInvalidState, e.Operation, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s: cannot %s an order in %s status", ErrInvalidState, e.Operation, e.Status)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// NoPriceAvailableError reports a menu item that has no price for the requested day.
type NoPriceAvailableError struct {
	MenuItemID any
	Date       string
}

func NewNoPriceAvailableError(menuItemID any, date string) *NoPriceAvailableError {
	return &NoPriceAvailableError{
		MenuItemID: menuItemID,
		Date:       date,
	}
}

func (e *NoPriceAvailableError) Error() string {
	return fmt.Sprintf("%s: menu item %s on %s", ErrNoPriceAvailable, e.MenuItemID, e.Date)
}

func (e *NoPriceAvailableError) Unwrap() error {
	return ErrNoPriceAvailable
}

// ConcurrentModificationError reports a commit whose version token is stale.
// The caller must reload the aggregate and resubmit.
type ConcurrentModificationError struct {
	AggregateID     any
	ExpectedVersion int64
}

func NewConcurrentModificationError(aggregateID any, expectedVersion int64) *ConcurrentModificationError {
	return &ConcurrentModificationError{
		AggregateID:     aggregateID,
		ExpectedVersion: expectedVersion,
	}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s changed after version %d was loaded",
		ErrConcurrentModification, e.AggregateID, e.ExpectedVersion)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// NumberingUnavailableError reports that no order number could be issued for a day.
type NumberingUnavailableError struct {
	Date  string
	Cause error
}

func NewNumberingUnavailableError(date string, cause error) *NumberingUnavailableError {
	return &NumberingUnavailableError{
		Date:  date,
		Cause: cause,
	}
}

func (e *NumberingUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrNumberingUnavailable, e.Date, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrNumberingUnavailable, e.Date)
}

func (e *NumberingUnavailableError) Unwrap() error {
	return ErrNumberingUnavailable
}
