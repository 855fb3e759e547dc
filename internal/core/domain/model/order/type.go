package order

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Type distinguishes orders served at a table from orders taken away.
// It is fixed at creation and decides whether a service charge applies.
type Type int

const (
	UnknownType Type = iota
	DineIn
	Takeout
)

func (t Type) String() string {
	switch t {
	case DineIn:
		return "DineIn"
	case Takeout:
		return "Takeout"
	default:
		return "Unknown"
	}
}

func (t Type) Validate() error {
	if t != DineIn && t != Takeout {
		return errs.NewValueIsInvalidErrorWithCause("type is invalid", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// ParseType accepts "DineIn" and "Takeout", case-insensitively.
func ParseType(name string) (Type, error) {
	switch {
	case strings.EqualFold(name, DineIn.String()):
		return DineIn, nil
	case strings.EqualFold(name, Takeout.String()):
		return Takeout, nil
	default:
		return UnknownType, errs.NewValueIsInvalidErrorWithCause("type is invalid", fmt.Errorf("%q is not a valid order type", name))
	}
}
