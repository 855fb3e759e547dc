package postgres

import (
	"fmt"

	"restaurant/internal/adapters/out/postgres/counterrepo"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns: orders with their
// lines and payments, the numbering counters and the menu catalog.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.PaymentDTO{},
		&counterrepo.CounterDTO{},
		&menurepo.MenuItemDTO{},
		&menurepo.MenuPriceDTO{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
