package queries

import (
	"context"

	"restaurant/internal/core/ports"
)

type ListOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewListOrdersQueryHandler(reader ports.OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: reader}
}

// Handle returns the matching orders newest first. No match is an empty slice.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListOrders(ctx, query.Filter())
	if err != nil {
		return nil, err
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out, nil
}
