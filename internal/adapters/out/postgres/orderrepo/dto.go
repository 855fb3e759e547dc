package orderrepo

import (
	"errors"
	"time"

	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderNoIndex is the unique index over orders.order_no.
const OrderNoIndex = "ux_orders_order_no"

type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNo      string    `gorm:"type:varchar(13);uniqueIndex:ux_orders_order_no;not null"`
	BusinessDate time.Time `gorm:"type:date;not null"`
	Sequence     int       `gorm:"not null"`
	Type         int       `gorm:"not null"`
	Status       int       `gorm:"not null;index"`

	PartySize    *int
	TableNo      string `gorm:"type:varchar(20)"`
	TakeoutName  string `gorm:"type:varchar(100)"`
	TakeoutPhone string `gorm:"type:varchar(20)"`

	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ServiceCharge decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime:false;not null;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null"`
	Version   int64     `gorm:"not null"`

	Lines    []LineDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments []PaymentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO keeps the menu item reference only while the item exists: deleting
// a menu item sets menu_item_id to NULL and leaves the snapshots in place.
type LineDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position   int             `gorm:"not null"`
	MenuItemID *uuid.UUID      `gorm:"type:uuid;index"`
	Name       string          `gorm:"type:varchar(200);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity   int             `gorm:"not null"`
	Note       string          `gorm:"type:varchar(500)"`

	MenuItem *menurepo.MenuItemDTO `gorm:"foreignKey:MenuItemID;constraint:OnDelete:SET NULL"`
}

func (LineDTO) TableName() string {
	return "order_lines"
}

type PaymentDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method     int             `gorm:"not null"`
	PaidAt     time.Time       `gorm:"not null"`
	RecordedBy uuid.UUID       `gorm:"type:uuid;not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain maps the aggregate to rows. The version column is set by the
// repository, not taken from the aggregate.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	dto := OrderDTO{
		ID:            s.ID.Bytes(),
		OrderNo:       s.Number.String(),
		BusinessDate:  s.Number.Date().Time(),
		Sequence:      s.Number.Sequence(),
		Type:          int(s.Type),
		Status:        int(s.Status),
		PartySize:     s.Details.PartySize(),
		TableNo:       s.Details.TableNo(),
		TakeoutName:   s.Details.TakeoutName(),
		TakeoutPhone:  s.Details.TakeoutPhone(),
		Subtotal:      s.Totals.Subtotal().Decimal(),
		Tax:           s.Totals.Tax().Decimal(),
		ServiceCharge: s.Totals.ServiceCharge().Decimal(),
		Total:         s.Totals.Total().Decimal(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Lines:         make([]LineDTO, 0, len(s.Lines)),
		Payments:      make([]PaymentDTO, 0, len(s.Payments)),
	}

	for i, l := range s.Lines {
		line := LineDTO{
			ID:        l.ID().Bytes(),
			OrderID:   dto.ID,
			Position:  i,
			Name:      l.Name(),
			UnitPrice: l.UnitPrice().Decimal(),
			Quantity:  l.Quantity(),
			Note:      l.Note(),
		}
		if id := l.MenuItemID(); id != nil {
			raw := id.Bytes()
			line.MenuItemID = &raw
		}
		dto.Lines = append(dto.Lines, line)
	}

	for _, p := range s.Payments {
		dto.Payments = append(dto.Payments, PaymentDTO{
			ID:         p.ID().Bytes(),
			OrderID:    dto.ID,
			Amount:     p.Amount().Decimal(),
			Method:     int(p.Method()),
			PaidAt:     p.PaidAt(),
			RecordedBy: p.RecordedBy().Bytes(),
		})
	}

	return dto
}

// toDomain expects Lines ordered by position and Payments by paid_at.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := order.NewNumber(kernel.NewBusinessDate(dto.BusinessDate, time.UTC), dto.Sequence)
	if err != nil {
		return nil, err
	}

	orderType := order.Type(dto.Type)
	details, err := order.NewDetails(orderType, dto.PartySize, dto.TableNo, dto.TakeoutName, dto.TakeoutPhone)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	payments := make([]*order.Payment, 0, len(dto.Payments))
	for _, p := range dto.Payments {
		payment, paymentErr := paymentToDomain(p)
		if paymentErr != nil {
			return nil, paymentErr
		}
		payments = append(payments, payment)
	}

	subtotal, subtotalErr := kernel.NewMoney(dto.Subtotal)
	tax, taxErr := kernel.NewMoney(dto.Tax)
	serviceCharge, serviceChargeErr := kernel.NewMoney(dto.ServiceCharge)
	total, totalErr := kernel.NewMoney(dto.Total)
	if err = errors.Join(subtotalErr, taxErr, serviceChargeErr, totalErr); err != nil {
		return nil, err
	}

	totals, err := order.RestoreTotals(subtotal, tax, serviceCharge, total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:        id,
		Number:    number,
		Type:      orderType,
		Status:    order.Status(dto.Status),
		Details:   details,
		Lines:     lines,
		Payments:  payments,
		Totals:    totals,
		CreatedAt: dto.CreatedAt.UTC(),
		UpdatedAt: dto.UpdatedAt.UTC(),
		Version:   dto.Version,
	})
}

func lineToDomain(dto LineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var menuItemID *kernel.UUID
	if dto.MenuItemID != nil {
		itemID, itemErr := kernel.UUIDFromBytes((*dto.MenuItemID)[:])
		if itemErr != nil {
			return nil, itemErr
		}
		menuItemID = &itemID
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(id, menuItemID, dto.Name, unitPrice, dto.Quantity, dto.Note)
}

func paymentToDomain(dto PaymentDTO) (*order.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recordedBy, err := kernel.UUIDFromBytes(dto.RecordedBy[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return order.RestorePayment(id, amount, order.Method(dto.Method), dto.PaidAt.UTC(), recordedBy)
}
