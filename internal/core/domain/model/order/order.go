package order

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNumberIsRequired is returned when an order is created without a number.
	ErrNumberIsRequired = errs.NewValueIsRequiredError("number")
)

// Order is the aggregate root for a restaurant order. It owns its lines and
// payments; every change to them goes through Order methods so that the
// following invariants hold after each call:
//   - Total == Subtotal + Tax + ServiceCharge, recomputed on every line change
//   - lines change only while the order is Draft or Submitted
//   - payments are recorded only while the order is Confirmed and never removed
//   - the order becomes Paid as soon as the recorded payments cover the total
//
// A failed method call leaves the aggregate unchanged.
//
// Order is not safe for concurrent mutation. Each request loads its own copy
// through a repository, and conflicting writers are rejected at commit time by
// comparing Version.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-facing YYYYMMDD-NNNN number, immutable once assigned
	number Number

	// orderType decides whether a service charge applies
	orderType Type

	// status represents the current state in the order lifecycle
	status Status

	details  Details
	lines    []*Line
	payments []*Payment
	totals   Totals

	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic concurrency token: 0 until first persisted,
	// then the value stored alongside the order
	version int64

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a Draft order without lines.
//
// Parameters:
//   - id: unique identifier for the order
//   - number: order number issued by the numbering authority
//   - orderType: DineIn or Takeout
//   - details: metadata built with NewDetails for the same order type
//   - now: creation time
//
// Returns a Validation error if any parameter is invalid. A DineIn order
// requires a table number and a party size.
//
// Example:
//
//	partySize := 2
//	details, err := order.NewDetails(order.DineIn, &partySize, "5", "", "")
//	if err != nil {
//	    return err
//	}
//	o, err := order.NewOrder(kernel.NewUUID(), number, order.DineIn, details, time.Now().UTC())
func NewOrder(id kernel.UUID, number Number, orderType Type, details Details, now time.Time) (*Order, error) {
	o := &Order{
		status:        Draft,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setType(orderType),
	); err != nil {
		return nil, err
	}
	if err := o.setDetails(details); err != nil {
		return nil, err
	}

	o.totals = CalculateTotals(o.orderType, nil)
	return o, nil
}

// Snapshot is the full persisted state of an order. Repositories fill one
// from storage and pass it to RestoreOrder, and read one back with Order.Snapshot.
type Snapshot struct {
	ID        kernel.UUID
	Number    Number
	Type      Type
	Status    Status
	Details   Details
	Lines     []*Line
	Payments  []*Payment
	Totals    Totals
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

// RestoreOrder reconstructs an Order from persistence. The stored totals must
// equal the totals recomputed from the stored lines.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setType(s.Type),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	if err := errors.Join(
		o.setDetails(s.Details),
		o.setLines(s.Lines),
		o.setPayments(s.Payments),
	); err != nil {
		return nil, err
	}

	o.totals = CalculateTotals(o.orderType, o.lines)
	if !o.totals.Total().IsEqual(s.Totals.Total()) || !o.totals.Subtotal().IsEqual(s.Totals.Subtotal()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("totals are inconsistent", fmt.Errorf(
			"stored total %s does not match %s recomputed from lines", s.Totals.Total(), o.totals.Total()))
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) Type() Type {
	return o.orderType
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) Totals() Totals {
	return o.totals
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the concurrency token read at load time.
func (o *Order) Version() int64 {
	return o.version
}

// Lines returns copies of the order lines in insertion order.
func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	for i, l := range o.lines {
		out[i] = l.clone()
	}
	return out
}

// Line returns a copy of the line with the given id.
func (o *Order) Line(lineID kernel.UUID) (*Line, error) {
	l, _, err := o.findLine(lineID)
	if err != nil {
		return nil, err
	}
	return l.clone(), nil
}

// Payments returns the recorded payments in the order they were taken.
func (o *Order) Payments() []*Payment {
	out := make([]*Payment, len(o.payments))
	copy(out, o.payments)
	return out
}

// AmountPaid is the sum of all recorded payments.
func (o *Order) AmountPaid() kernel.Money {
	paid := kernel.ZeroMoney()
	for _, p := range o.payments {
		paid = paid.Add(p.Amount())
	}
	return paid
}

// BalanceDue is the part of the total not yet covered by payments, never negative.
func (o *Order) BalanceDue() kernel.Money {
	return o.totals.Total().Sub(o.AmountPaid())
}

// Snapshot returns the persisted state of the order. Lines are copies.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:        o.id,
		Number:    o.number,
		Type:      o.orderType,
		Status:    o.status,
		Details:   o.details,
		Lines:     o.Lines(),
		Payments:  o.Payments(),
		Totals:    o.totals,
		CreatedAt: o.createdAt,
		UpdatedAt: o.updatedAt,
		Version:   o.version,
	}
}

// MarkCommitted records the version stored by a successful repository write.
// Only repositories call it.
func (o *Order) MarkCommitted(version int64) {
	o.version = version
}

// UpdateDetails replaces the dine-in and takeout metadata. The order type cannot
// change, so totals are unaffected. Allowed while Draft or Submitted.
func (o *Order) UpdateDetails(partySize *int, tableNo, takeoutName, takeoutPhone string, now time.Time) error {
	if err := o.status.ValidateLineChange(OpUpdateDetails); err != nil {
		return err
	}

	details, err := NewDetails(o.orderType, partySize, tableNo, takeoutName, takeoutPhone)
	if err != nil {
		return err
	}

	o.details = details
	o.touch(now)
	return nil
}

// AddLine appends a line and recomputes totals. Allowed while Draft or Submitted.
func (o *Order) AddLine(line *Line, now time.Time) error {
	if err := o.status.ValidateLineChange(OpAddLine); err != nil {
		return err
	}
	if err := line.Validate(); err != nil {
		return err
	}
	if _, _, err := o.findLine(line.ID()); err == nil {
		return errs.NewValueIsInvalidErrorWithCause("line", fmt.Errorf("line %s already exists", line.ID()))
	}

	o.lines = append(o.lines, line.clone())
	o.recalculate(now)
	return nil
}

// UpdateLine changes quantity and note of an existing line and recomputes totals.
// Allowed while Draft or Submitted.
func (o *Order) UpdateLine(lineID kernel.UUID, quantity int, note string, now time.Time) error {
	if err := o.status.ValidateLineChange(OpUpdateLine); err != nil {
		return err
	}

	l, _, err := o.findLine(lineID)
	if err != nil {
		return err
	}
	if err = l.change(quantity, note); err != nil {
		return err
	}

	o.recalculate(now)
	return nil
}

// RemoveLine deletes a line and recomputes totals. Allowed while Draft or Submitted.
func (o *Order) RemoveLine(lineID kernel.UUID, now time.Time) error {
	if err := o.status.ValidateLineChange(OpRemoveLine); err != nil {
		return err
	}

	_, idx, err := o.findLine(lineID)
	if err != nil {
		return err
	}

	o.lines = append(o.lines[:idx:idx], o.lines[idx+1:]...)
	o.recalculate(now)
	return nil
}

// Submit moves a Draft order with at least one line to Submitted.
func (o *Order) Submit(now time.Time) error {
	newStatus, err := o.status.Submit()
	if err != nil {
		return err
	}
	if len(o.lines) == 0 {
		return errs.NewInvalidStateErrorWithReason(OpSubmit, o.status, "order has no lines")
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// Confirm moves a Submitted order to Confirmed. Totals are frozen from here on.
func (o *Order) Confirm(now time.Time) error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// Cancel moves a Draft, Submitted or Confirmed order to Cancelled.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// ValidateDelete fails with InvalidState unless the order is Draft.
func (o *Order) ValidateDelete() error {
	return o.status.ValidateDelete()
}

// Pay records a payment on a Confirmed order. When the payments recorded so far,
// including this one, reach the total the order becomes Paid. Overpayment is
// accepted; giving change is not the order's concern.
//
// Example:
//
//	payment, err := o.Pay(kernel.NewUUID(), kernel.MustMoney("10000"), order.Cash, staffID, now)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(o.Status(), o.BalanceDue()) // Confirmed 9550.00
func (o *Order) Pay(paymentID kernel.UUID, amount kernel.Money, method Method, recordedBy kernel.UUID, now time.Time) (*Payment, error) {
	if err := o.status.ValidatePayment(); err != nil {
		return nil, err
	}

	payment, err := NewPayment(paymentID, amount, method, now, recordedBy)
	if err != nil {
		return nil, err
	}

	newStatus := o.status
	if o.AmountPaid().Add(amount).GreaterThanOrEqual(o.totals.Total()) {
		if newStatus, err = o.status.Settle(); err != nil {
			return nil, err
		}
	}

	o.payments = append(o.payments, payment)
	o.status = newStatus
	o.touch(now)
	return payment, nil
}

func (o *Order) findLine(lineID kernel.UUID) (*Line, int, error) {
	for i, l := range o.lines {
		if l.ID().IsEqual(lineID) {
			return l, i, nil
		}
	}
	return nil, -1, errs.NewObjectNotFoundError("line", lineID.String())
}

func (o *Order) recalculate(now time.Time) {
	o.totals = CalculateTotals(o.orderType, o.lines)
	o.touch(now)
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if number.IsZero() {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

func (o *Order) setType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

// setDetails must run after setType.
func (o *Order) setDetails(details Details) error {
	if err := details.validateFor(o.orderType); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	restored := make([]*Line, 0, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		restored = append(restored, l.clone())
	}
	o.lines = restored
	return nil
}

func (o *Order) setPayments(payments []*Payment) error {
	restored := make([]*Payment, 0, len(payments))
	for _, p := range payments {
		if err := p.Validate(); err != nil {
			return err
		}
		restored = append(restored, p)
	}
	o.payments = restored
	return nil
}
