package queries

import (
	"context"

	"restaurant/internal/core/ports"
)

type GetOrderQueryHandler struct {
	reader ports.OrderReader
}

func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns errs.ErrObjectNotFound for unknown orders.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.reader.GetOrder(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	return NewOrderResponse(o), nil
}
