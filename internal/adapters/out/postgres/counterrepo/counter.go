// Package counterrepo is the Postgres numbering authority. One row per business
// date holds the last sequence issued; the row is incremented by a single
// upsert statement so concurrent callers are serialized by the row lock.
package counterrepo

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/metrics"

	"gorm.io/gorm"
)

const backend = "postgres"

type CounterDTO struct {
	Day       time.Time `gorm:"type:date;primaryKey"`
	LastSeq   int       `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CounterDTO) TableName() string {
	return "order_number_counters"
}

const nextSQL = `
INSERT INTO order_number_counters (day, last_seq, updated_at)
VALUES (?, 1, now())
ON CONFLICT (day) DO UPDATE
SET last_seq = order_number_counters.last_seq + 1, updated_at = now()
RETURNING last_seq`

// GormCounter must be used on the connection pool, never inside an order
// transaction: a rolled back order does not give its number back.
type GormCounter struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

func NewGormCounter(db *gorm.DB, m *metrics.Metrics) *GormCounter {
	return &GormCounter{db: db, metrics: m}
}

func (c *GormCounter) Next(ctx context.Context, date kernel.BusinessDate) (order.Number, error) {
	var seq int
	if err := c.db.WithContext(ctx).Raw(nextSQL, date.Time()).Scan(&seq).Error; err != nil {
		return order.Number{}, errs.NewNumberingUnavailableError(date.Compact(), err)
	}

	number, err := order.NewNumber(date, seq)
	if err != nil {
		return order.Number{}, errs.NewNumberingUnavailableError(date.Compact(), err)
	}

	c.metrics.NumberIssued(backend)
	return number, nil
}

// PruneBefore deletes the counters of days strictly before cutoff.
func (c *GormCounter) PruneBefore(ctx context.Context, cutoff kernel.BusinessDate) (int64, error) {
	result := c.db.WithContext(ctx).Where("day < ?", cutoff.Time()).Delete(&CounterDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
