package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Method is how a payment was tendered.
type Method int

const (
	UnknownMethod Method = iota
	Cash
	CreditCard
	DebitCard
	DigitalWallet
	BankTransfer
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		Cash:          "Cash",
		CreditCard:    "CreditCard",
		DebitCard:     "DebitCard",
		DigitalWallet: "DigitalWallet",
		BankTransfer:  "BankTransfer",
	}
}

func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

func (m Method) Validate() error {
	if _, ok := getMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("method is invalid", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// ParseMethod accepts the names returned by String, case-insensitively.
func ParseMethod(name string) (Method, error) {
	for method, str := range getMethodStrings() {
		if strings.EqualFold(str, name) {
			return method, nil
		}
	}
	return UnknownMethod, errs.NewValueIsInvalidErrorWithCause("method is invalid", fmt.Errorf("%q is not a valid payment method", name))
}

var (
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")
	ErrPaymentAmountIsRequired = errs.NewValueIsRequiredError("payment amount must be positive")
)

// Payment is an append-only settlement record. Payments are never edited or removed.
type Payment struct {
	id         kernel.UUID
	amount     kernel.Money
	method     Method
	paidAt     time.Time
	recordedBy kernel.UUID
	guard      guard.ConstructorGuard
}

func NewPayment(id kernel.UUID, amount kernel.Money, method Method, paidAt time.Time, recordedBy kernel.UUID) (*Payment, error) {
	p := &Payment{
		paidAt: paidAt,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setAmount(amount),
		method.Validate(),
		recordedBy.Validate(),
	); err != nil {
		return nil, err
	}
	p.method = method
	p.recordedBy = recordedBy

	return p, nil
}

// RestorePayment rebuilds a persisted payment.
func RestorePayment(id kernel.UUID, amount kernel.Money, method Method, paidAt time.Time, recordedBy kernel.UUID) (*Payment, error) {
	return NewPayment(id, amount, method, paidAt, recordedBy)
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) Amount() kernel.Money {
	return p.amount
}

func (p *Payment) Method() Method {
	return p.method
}

func (p *Payment) PaidAt() time.Time {
	return p.paidAt
}

// RecordedBy is the staff member who took the payment.
func (p *Payment) RecordedBy() kernel.UUID {
	return p.recordedBy
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return ErrPaymentAmountIsRequired
	}
	if _, err := kernel.NewMoney(amount.Decimal()); err != nil {
		return err
	}
	p.amount = amount
	return nil
}
