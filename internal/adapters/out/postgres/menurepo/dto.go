package menurepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItemDTO and MenuPriceDTO mirror the tables owned by the menu catalog.
// Orders only read them.
type MenuItemDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name     string    `gorm:"type:varchar(200);not null"`
	IsActive bool      `gorm:"not null;default:true"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

type MenuPriceDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MenuItemID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_menu_prices_item_date"`
	EffectiveDate time.Time       `gorm:"type:date;not null;uniqueIndex:ux_menu_prices_item_date"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:varchar(10);not null;default:'TWD'"`
}

func (MenuPriceDTO) TableName() string {
	return "menu_prices"
}
