package order

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"restaurant/internal/pkg/errs"
)

const (
	MaxTableNoLength      = 20
	MaxTakeoutNameLength  = 100
	MaxTakeoutPhoneLength = 20
	MinPartySize          = 1
	MaxPartySize          = 99
)

var (
	ErrTableNoIsRequired   = errs.NewValueIsRequiredError("tableNo is required for DineIn orders")
	ErrPartySizeIsRequired = errs.NewValueIsRequiredError("partySize is required for DineIn orders")
)

// Details holds the type-specific metadata of an order. DineIn orders require
// a table number and a party size; takeout name and phone are always optional.
type Details struct {
	partySize    *int
	tableNo      string
	takeoutName  string
	takeoutPhone string
}

// NewDetails validates the metadata against the order type.
func NewDetails(orderType Type, partySize *int, tableNo, takeoutName, takeoutPhone string) (Details, error) {
	d := Details{
		tableNo:      tableNo,
		takeoutName:  takeoutName,
		takeoutPhone: takeoutPhone,
	}
	if partySize != nil {
		size := *partySize
		d.partySize = &size
	}

	if err := d.validateFor(orderType); err != nil {
		return Details{}, err
	}
	return d, nil
}

// PartySize returns nil when no party size was given.
func (d Details) PartySize() *int {
	if d.partySize == nil {
		return nil
	}
	size := *d.partySize
	return &size
}

func (d Details) TableNo() string {
	return d.tableNo
}

func (d Details) TakeoutName() string {
	return d.takeoutName
}

func (d Details) TakeoutPhone() string {
	return d.takeoutPhone
}

func (d Details) validateFor(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	var required []error
	if orderType == DineIn {
		if d.tableNo == "" {
			required = append(required, ErrTableNoIsRequired)
		}
		if d.partySize == nil {
			required = append(required, ErrPartySizeIsRequired)
		}
	}

	var partySizeErr error
	if d.partySize != nil && (*d.partySize < MinPartySize || *d.partySize > MaxPartySize) {
		partySizeErr = errs.NewValueIsOutOfRangeError("partySize", *d.partySize, MinPartySize, MaxPartySize)
	}

	return errors.Join(append(required,
		partySizeErr,
		maxLength("tableNo", d.tableNo, MaxTableNoLength),
		maxLength("takeoutName", d.takeoutName, MaxTakeoutNameLength),
		maxLength("takeoutPhone", d.takeoutPhone, MaxTakeoutPhoneLength),
	)...)
}

// maxLength counts runes, matching how the columns are sized.
func maxLength(param, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return errs.NewValueIsInvalidErrorWithCause(
			param+" is too long",
			fmt.Errorf("%d characters exceeds the limit of %d", n, limit),
		)
	}
	return nil
}
