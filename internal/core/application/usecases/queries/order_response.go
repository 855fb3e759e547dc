// Package queries contains read operations for retrieving order state.
// Queries go through ports.OrderReader and return read models that the HTTP
// layer serializes as-is.
package queries

import (
	"time"

	"restaurant/internal/core/domain/model/order"
)

// OrderResponse is the read model of an order. Money is rendered with two
// decimal places.
type OrderResponse struct {
	ID            string            `json:"id"`
	OrderNo       string            `json:"orderNo"`
	Type          string            `json:"type"`
	Status        string            `json:"status"`
	PartySize     *int              `json:"partySize,omitempty"`
	TableNo       string            `json:"tableNo,omitempty"`
	TakeoutName   string            `json:"takeoutName,omitempty"`
	TakeoutPhone  string            `json:"takeoutPhone,omitempty"`
	Lines         []LineResponse    `json:"items"`
	Payments      []PaymentResponse `json:"payments"`
	Subtotal      string            `json:"subtotal"`
	Tax           string            `json:"tax"`
	ServiceCharge string            `json:"serviceCharge"`
	Total         string            `json:"total"`
	AmountPaid    string            `json:"amountPaid"`
	BalanceDue    string            `json:"balanceDue"`
	Version       int64             `json:"version"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type LineResponse struct {
	ID         string  `json:"id"`
	MenuItemID *string `json:"menuItemId"`
	Name       string  `json:"name"`
	UnitPrice  string  `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
	Amount     string  `json:"amount"`
	Note       string  `json:"note,omitempty"`
}

type PaymentResponse struct {
	ID         string    `json:"id"`
	Amount     string    `json:"amount"`
	Method     string    `json:"method"`
	PaidAt     time.Time `json:"paidAt"`
	RecordedBy string    `json:"recordedBy"`
}

// NewOrderResponse builds the read model from a loaded aggregate.
func NewOrderResponse(o *order.Order) OrderResponse {
	details := o.Details()
	totals := o.Totals()

	lines := make([]LineResponse, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, newLineResponse(l))
	}

	return OrderResponse{
		ID:            o.ID().String(),
		OrderNo:       o.Number().String(),
		Type:          o.Type().String(),
		Status:        o.Status().String(),
		PartySize:     details.PartySize(),
		TableNo:       details.TableNo(),
		TakeoutName:   details.TakeoutName(),
		TakeoutPhone:  details.TakeoutPhone(),
		Lines:         lines,
		Payments:      newPaymentResponses(o.Payments()),
		Subtotal:      totals.Subtotal().String(),
		Tax:           totals.Tax().String(),
		ServiceCharge: totals.ServiceCharge().String(),
		Total:         totals.Total().String(),
		AmountPaid:    o.AmountPaid().String(),
		BalanceDue:    o.BalanceDue().String(),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func newLineResponse(l *order.Line) LineResponse {
	resp := LineResponse{
		ID:        l.ID().String(),
		Name:      l.Name(),
		UnitPrice: l.UnitPrice().String(),
		Quantity:  l.Quantity(),
		Amount:    l.Amount().String(),
		Note:      l.Note(),
	}
	if id := l.MenuItemID(); id != nil {
		s := id.String()
		resp.MenuItemID = &s
	}
	return resp
}

func newPaymentResponses(payments []*order.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentResponse{
			ID:         p.ID().String(),
			Amount:     p.Amount().String(),
			Method:     p.Method().String(),
			PaidAt:     p.PaidAt(),
			RecordedBy: p.RecordedBy().String(),
		})
	}
	return out
}
