// Package integration holds the external collaborators the register talks
// to: the inventory store, the discount catalog and the accounting recorder.
// The implementations here are simulated in-memory stand-ins; the interfaces
// are the contract the engine depends on.
package integration

import (
	"errors"
	"fmt"
	"sync"

	"tillpos/internal/model"
	"tillpos/internal/money"
)

// ErrUnavailable signals that the backing store could not be reached at all.
// Callers must treat it as non-recoverable and distinct from a missing item.
var ErrUnavailable = errors.New("integration: inventory store unreachable")

// NotFoundError is returned by Lookup for an unknown item id.
type NotFoundError struct {
	ItemID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %q not found in inventory", e.ItemID)
}

// failSimulationID triggers ErrUnavailable, simulating a store outage.
const failSimulationID = "fail114514"

// Inventory is the item lookup and stock decrement contract.
type Inventory interface {
	// Lookup returns the item with the given id. Returns *NotFoundError
	// when the id is unknown and ErrUnavailable when the store is down.
	Lookup(itemID string) (model.LineItem, error)
	// DecrementStock reduces stock for every line of a finalized sale.
	// Best-effort: unknown ids are skipped and stock never goes below zero.
	DecrementStock(record *model.SaleRecord)
}

type stockedItem struct {
	item     model.LineItem
	quantity int
}

// SimulatedInventory is an in-memory inventory seeded with the standard
// fixture items.
type SimulatedInventory struct {
	mu    sync.Mutex
	items map[string]*stockedItem
}

// NewSimulatedInventory seeds the store. Base prices are derived from the
// shelf (VAT-inclusive) prices 29.90 and 14.90 at 6% VAT, so that adding
// items reproduces the published totals exactly.
func NewSimulatedInventory() *SimulatedInventory {
	vat := money.MustNew("0.06")

	inv := &SimulatedInventory{items: make(map[string]*stockedItem)}
	inv.seed(model.LineItem{
		ID:          "abc123",
		Name:        "BigWheel Oatmeal",
		Price:       basePrice(money.MustNew("29.9"), vat),
		VATRate:     vat,
		Description: "BigWheel Oatmeal 500g, whole grain oats, high fiber, gluten free",
	}, 2)
	inv.seed(model.LineItem{
		ID:          "def456",
		Name:        "YouGoGo Blueberry",
		Price:       basePrice(money.MustNew("14.9"), vat),
		VATRate:     vat,
		Description: "YouGoGo Blueberry 240g, low sugar youghurt, blueberry flavour",
	}, 2)
	return inv
}

func basePrice(fullPrice, vatRate money.Money) money.Money {
	base, err := fullPrice.Div(vatRate.Add(money.FromInt(1)))
	if err != nil {
		panic(err) // divisor is a constant > 1
	}
	return base
}

func (inv *SimulatedInventory) seed(item model.LineItem, quantity int) {
	inv.items[item.ID] = &stockedItem{item: item, quantity: quantity}
}

func (inv *SimulatedInventory) Lookup(itemID string) (model.LineItem, error) {
	if itemID == failSimulationID {
		return model.LineItem{}, ErrUnavailable
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	stocked, ok := inv.items[itemID]
	if !ok {
		return model.LineItem{}, &NotFoundError{ItemID: itemID}
	}
	return stocked.item, nil
}

func (inv *SimulatedInventory) DecrementStock(record *model.SaleRecord) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for _, line := range record.Items {
		stocked, ok := inv.items[line.ID]
		if !ok {
			continue
		}
		if stocked.quantity > 0 {
			stocked.quantity--
		}
	}
}

// Quantity reports the remaining stock for an item id, -1 when unknown.
func (inv *SimulatedInventory) Quantity(itemID string) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	stocked, ok := inv.items[itemID]
	if !ok {
		return -1
	}
	return stocked.quantity
}
