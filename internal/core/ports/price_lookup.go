package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
)

// MenuPrice is what the menu catalog reports for an item on a given day.
// Name and Price are copied into the order line.
type MenuPrice struct {
	MenuItemID kernel.UUID
	Name       string
	Price      kernel.Money
}

// PriceLookup resolves the effective price of a menu item for a date.
// A missing price is errs.ErrNoPriceAvailable; it never falls back to zero or
// to another day's price.
type PriceLookup interface {
	PriceFor(ctx context.Context, menuItemID kernel.UUID, date kernel.BusinessDate) (MenuPrice, error)
}
