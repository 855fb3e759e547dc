package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

type priceKey struct {
	item kernel.UUID
	date kernel.BusinessDate
}

// PriceTable answers price lookups from dated entries, plus daily entries that
// apply to every date. A dated entry wins over a daily one.
type PriceTable struct {
	mu    sync.RWMutex
	dated map[priceKey]ports.MenuPrice
	daily map[kernel.UUID]ports.MenuPrice
}

func NewPriceTable() *PriceTable {
	return &PriceTable{
		dated: make(map[priceKey]ports.MenuPrice),
		daily: make(map[kernel.UUID]ports.MenuPrice),
	}
}

func (t *PriceTable) Put(date kernel.BusinessDate, price ports.MenuPrice) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dated[priceKey{item: price.MenuItemID, date: date}] = price
}

func (t *PriceTable) PutDaily(price ports.MenuPrice) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.daily[price.MenuItemID] = price
}

func (t *PriceTable) PriceFor(_ context.Context, menuItemID kernel.UUID, date kernel.BusinessDate) (ports.MenuPrice, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if price, ok := t.dated[priceKey{item: menuItemID, date: date}]; ok {
		return price, nil
	}
	if price, ok := t.daily[menuItemID]; ok {
		return price, nil
	}
	return ports.MenuPrice{}, errs.NewNoPriceAvailableError(menuItemID.String(), date.String())
}

type seedItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// LoadDaily reads a JSON array of {"id","name","price"} and registers each item
// as a daily price.
func (t *PriceTable) LoadDaily(r io.Reader) (int, error) {
	var items []seedItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return 0, fmt.Errorf("decode menu seed: %w", err)
	}

	for i, item := range items {
		id, err := kernel.UUIDFromString(item.ID)
		if err != nil {
			return 0, fmt.Errorf("menu seed item %d: %w", i, err)
		}
		price, err := kernel.MoneyFromString(item.Price)
		if err != nil {
			return 0, fmt.Errorf("menu seed item %d: %w", i, err)
		}
		t.PutDaily(ports.MenuPrice{MenuItemID: id, Name: item.Name, Price: price})
	}
	return len(items), nil
}
