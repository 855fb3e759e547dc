// Package menurepo reads effective menu prices from the catalog tables.
package menurepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GormPriceLookup struct {
	db *gorm.DB
}

func NewGormPriceLookup(db *gorm.DB) *GormPriceLookup {
	return &GormPriceLookup{db: db}
}

type priceRow struct {
	Name  string
	Price decimal.Decimal
}

// PriceFor returns the price recorded for exactly that date. Prices of other
// days and inactive items do not count.
func (l *GormPriceLookup) PriceFor(ctx context.Context, menuItemID kernel.UUID, date kernel.BusinessDate) (ports.MenuPrice, error) {
	if err := menuItemID.Validate(); err != nil {
		return ports.MenuPrice{}, err
	}

	var row priceRow
	err := l.db.WithContext(ctx).
		Table("menu_prices AS p").
		Select("i.name, p.price").
		Joins("JOIN menu_items AS i ON i.id = p.menu_item_id").
		Where("p.menu_item_id = ? AND p.effective_date = ? AND i.is_active", menuItemID.Bytes(), date.Time()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MenuPrice{}, errs.NewNoPriceAvailableError(menuItemID.String(), date.String())
		}
		return ports.MenuPrice{}, err
	}

	price, err := kernel.NewMoney(row.Price)
	if err != nil {
		return ports.MenuPrice{}, err
	}

	return ports.MenuPrice{MenuItemID: menuItemID, Name: row.Name, Price: price}, nil
}
