package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository stores orders in the orders, order_lines and payments
// tables. Writes are guarded by the orders.version column.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate *order.Order)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		switch {
		case pgerr.IsUniqueViolation(err) && pgerr.Constraint(err) == OrderNoIndex:
			return errs.NewNumberingUnavailableError(aggregate.Number().Date().Compact(),
				fmt.Errorf("number %s was already issued: %w", aggregate.Number(), err))
		case pgerr.IsUniqueViolation(err):
			return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s already exists: %w", aggregate.ID(), err))
		}
		return err
	}

	aggregate.MarkCommitted(dto.Version)
	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update rewrites the order row if its version still matches, replaces the
// lines and appends new payments. Payments are never updated or removed.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	expected := aggregate.Version()

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Updates(map[string]any{
			"status":         dto.Status,
			"party_size":     dto.PartySize,
			"table_no":       dto.TableNo,
			"takeout_name":   dto.TakeoutName,
			"takeout_phone":  dto.TakeoutPhone,
			"subtotal":       dto.Subtotal,
			"tax":            dto.Tax,
			"service_charge": dto.ServiceCharge,
			"total":          dto.Total,
			"updated_at":     dto.UpdatedAt,
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return r.classify(aggregate, result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&LineDTO{}).Error; err != nil {
		return r.classify(aggregate, err)
	}
	if len(dto.Lines) > 0 {
		if err := db.Create(&dto.Lines).Error; err != nil {
			return r.classify(aggregate, err)
		}
	}
	if len(dto.Payments) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Payments).Error; err != nil {
			return r.classify(aggregate, err)
		}
	}

	aggregate.MarkCommitted(expected + 1)
	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Delete removes the order under the same version check as Update. Lines and
// payments go with it through ON DELETE CASCADE.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.Version()).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return r.classify(aggregate, result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return getOrder(ctx, r.db, id)
}

// missingOrStale tells a deleted order from one another writer changed.
func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewConcurrentModificationError(aggregate.ID().String(), aggregate.Version())
}

// classify turns races into ConcurrentModification. A foreign key violation on
// the lines means a menu item was deleted after the order was loaded; a reload
// sees the cleared reference.
func (r *GormOrderRepository) classify(aggregate *order.Order, err error) error {
	if pgerr.IsConflict(err) || pgerr.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", errs.NewConcurrentModificationError(aggregate.ID().String(), aggregate.Version()), err)
	}
	return err
}

func getOrder(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := withChildren(db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("paid_at, id") })
}
