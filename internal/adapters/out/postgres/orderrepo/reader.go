package orderrepo

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
)

// GormOrderReader serves queries outside any unit of work.
type GormOrderReader struct {
	db *gorm.DB
}

func NewGormOrderReader(db *gorm.DB) *GormOrderReader {
	return &GormOrderReader{db: db}
}

func (r *GormOrderReader) GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return getOrder(ctx, r.db, id)
}

// ListOrders filters on status and the [From, To) creation window.
func (r *GormOrderReader) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := withChildren(r.db.WithContext(ctx))
	if filter.Status != nil {
		query = query.Where("status = ?", int(*filter.Status))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC, order_no DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
