package order

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Draft ──> Submitted ──> Confirmed ──> Paid
//	  │           │             │
//	  └───────────┴─────────────┴──> Cancelled
//
// Paid and Cancelled are terminal. Only Draft orders may be deleted.
type Status int

const (
	// Unknown (0) catches uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status. Lines and details may change freely.
	Draft

	// Submitted orders have been sent to the kitchen. Lines may still change.
	Submitted

	// Confirmed orders have frozen totals and accept payments.
	Confirmed

	// Paid orders have payments covering the total. Terminal.
	Paid

	// Cancelled orders were abandoned before payment completed. Terminal.
	Cancelled
)

// Operation names reported by InvalidStateError.
const (
	OpSubmit        = "submit"
	OpConfirm       = "confirm"
	OpCancel        = "cancel"
	OpPay           = "pay"
	OpDelete        = "delete"
	OpAddLine       = "add a line to"
	OpUpdateLine    = "update a line of"
	OpRemoveLine    = "remove a line from"
	OpUpdateDetails = "update details of"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Draft:     "Draft",
		Submitted: "Submitted",
		Confirmed: "Confirmed",
		Paid:      "Paid",
		Cancelled: "Cancelled",
	}
}

// Validate rejects Unknown and out-of-range values, e.g. from a corrupted row.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus accepts the names returned by String, case-insensitively.
func ParseStatus(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(str, name) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Cancelled
}

// AllowsLineChanges reports whether lines and order details may be changed.
func (s Status) AllowsLineChanges() bool {
	return s == Draft || s == Submitted
}

// ValidateLineChange fails with InvalidState outside Draft and Submitted.
// operation is one of the Op* names and only affects the error message.
func (s Status) ValidateLineChange(operation string) error {
	if !s.AllowsLineChanges() {
		return errs.NewInvalidStateError(operation, s)
	}
	return nil
}

// ValidateDelete fails with InvalidState unless the order is Draft.
func (s Status) ValidateDelete() error {
	if s != Draft {
		return errs.NewInvalidStateError(OpDelete, s)
	}
	return nil
}

// ValidatePayment fails with InvalidState unless the order is Confirmed.
func (s Status) ValidatePayment() error {
	if s != Confirmed {
		return errs.NewInvalidStateError(OpPay, s)
	}
	return nil
}

// Submit transitions Draft -> Submitted.
func (s Status) Submit() (Status, error) {
	if s != Draft {
		return 0, errs.NewInvalidStateError(OpSubmit, s)
	}
	return Submitted, nil
}

// Confirm transitions Submitted -> Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Submitted {
		return 0, errs.NewInvalidStateError(OpConfirm, s)
	}
	return Confirmed, nil
}

// Cancel transitions Draft, Submitted or Confirmed -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Draft && s != Submitted && s != Confirmed {
		return 0, errs.NewInvalidStateError(OpCancel, s)
	}
	return Cancelled, nil
}

// Settle transitions Confirmed -> Paid.
func (s Status) Settle() (Status, error) {
	if err := s.ValidatePayment(); err != nil {
		return 0, err
	}
	return Paid, nil
}
