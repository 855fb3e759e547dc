package queries

import (
	"context"

	"restaurant/internal/core/ports"
)

// PaymentsResponse lists an order's payments in the order they were recorded.
type PaymentsResponse struct {
	OrderID    string            `json:"orderId"`
	Payments   []PaymentResponse `json:"payments"`
	Total      string            `json:"total"`
	AmountPaid string            `json:"amountPaid"`
	BalanceDue string            `json:"balanceDue"`
}

type ListPaymentsQueryHandler struct {
	reader ports.OrderReader
}

func NewListPaymentsQueryHandler(reader ports.OrderReader) ListPaymentsQueryHandler {
	return ListPaymentsQueryHandler{reader: reader}
}

// Handle returns errs.ErrObjectNotFound for unknown orders.
func (h ListPaymentsQueryHandler) Handle(ctx context.Context, query ListPaymentsQuery) (PaymentsResponse, error) {
	if err := query.Validate(); err != nil {
		return PaymentsResponse{}, err
	}

	o, err := h.reader.GetOrder(ctx, query.OrderID())
	if err != nil {
		return PaymentsResponse{}, err
	}

	return PaymentsResponse{
		OrderID:    o.ID().String(),
		Payments:   newPaymentResponses(o.Payments()),
		Total:      o.Totals().Total().String(),
		AmountPaid: o.AmountPaid().String(),
		BalanceDue: o.BalanceDue().String(),
	}, nil
}
