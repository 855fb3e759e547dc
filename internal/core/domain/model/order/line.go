package order

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const (
	MinQuantity   = 1
	MaxQuantity   = 99
	MaxNameLength = 200
	MaxNoteLength = 500
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is an item on an order. Name and unit price are snapshots taken from the
// menu when the line is added; later menu changes never affect them.
//
// menuItemID becomes nil when the referenced menu item is removed from the
// catalog. The line itself survives.
type Line struct {
	id         kernel.UUID
	menuItemID *kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int
	note       string
	guard      guard.ConstructorGuard
}

// NewLine creates a line with a snapshot of the menu item's name and price.
func NewLine(id kernel.UUID, menuItemID *kernel.UUID, name string, unitPrice kernel.Money, quantity int, note string) (*Line, error) {
	l := &Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setMenuItemID(menuItemID),
		l.setName(name),
		l.setUnitPrice(unitPrice),
		l.setQuantity(quantity),
		l.setNote(note),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLine rebuilds a persisted line. It applies the same checks as NewLine.
func RestoreLine(id kernel.UUID, menuItemID *kernel.UUID, name string, unitPrice kernel.Money, quantity int, note string) (*Line, error) {
	return NewLine(id, menuItemID, name, unitPrice, quantity, note)
}

func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

// MenuItemID returns nil once the menu item no longer exists.
func (l *Line) MenuItemID() *kernel.UUID {
	if l.menuItemID == nil {
		return nil
	}
	id := *l.menuItemID
	return &id
}

func (l *Line) Name() string {
	return l.name
}

func (l *Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l *Line) Quantity() int {
	return l.quantity
}

func (l *Line) Note() string {
	return l.note
}

// Amount is unitPrice × quantity, unrounded.
func (l *Line) Amount() kernel.Money {
	return l.unitPrice.Times(l.quantity)
}

func (l *Line) clone() *Line {
	c := *l
	if l.menuItemID != nil {
		id := *l.menuItemID
		c.menuItemID = &id
	}
	return &c
}

// change validates both values before applying either.
func (l *Line) change(quantity int, note string) error {
	probe := *l
	if err := errors.Join(probe.setQuantity(quantity), probe.setNote(note)); err != nil {
		return err
	}
	l.quantity = probe.quantity
	l.note = probe.note
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setMenuItemID(menuItemID *kernel.UUID) error {
	if menuItemID == nil {
		l.menuItemID = nil
		return nil
	}
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	id := *menuItemID
	l.menuItemID = &id
	return nil
}

func (l *Line) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if err := maxLength("name", name, MaxNameLength); err != nil {
		return err
	}
	l.name = name
	return nil
}

func (l *Line) setUnitPrice(unitPrice kernel.Money) error {
	if _, err := kernel.NewMoney(unitPrice.Decimal()); err != nil {
		return err
	}
	l.unitPrice = unitPrice
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"quantity", quantity, MinQuantity, MaxQuantity,
			fmt.Errorf("%d is not between %d and %d", quantity, MinQuantity, MaxQuantity),
		)
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setNote(note string) error {
	if err := maxLength("note", note, MaxNoteLength); err != nil {
		return err
	}
	l.note = note
	return nil
}
