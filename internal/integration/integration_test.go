package integration

import (
	"context"
	"errors"
	"testing"

	"tillpos/internal/discount"
	"tillpos/internal/model"
	"tillpos/internal/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownItem(t *testing.T) {
	inv := NewSimulatedInventory()

	item, err := inv.Lookup("abc123")
	require.NoError(t, err)
	assert.Equal(t, "BigWheel Oatmeal", item.Name)
	assert.True(t, money.MustNew("0.06").Equal(item.VATRate))
	// Base price times 1.06 rounds back to the 29.90 shelf price.
	full := item.Price.Mul(item.VATRate.Add(money.FromInt(1)))
	assert.Equal(t, "29.90", full.Round().StringFixed())
}

func TestLookupUnknownItem(t *testing.T) {
	inv := NewSimulatedInventory()

	_, err := inv.Lookup("nope999")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope999", notFound.ItemID)
	assert.Contains(t, err.Error(), "nope999")
}

func TestLookupStoreDown(t *testing.T) {
	inv := NewSimulatedInventory()

	_, err := inv.Lookup("fail114514")
	assert.ErrorIs(t, err, ErrUnavailable)

	var notFound *NotFoundError
	assert.False(t, errors.As(err, &notFound), "unavailable must not be reported as not-found")
}

func TestDecrementStockFloorsAtZero(t *testing.T) {
	inv := NewSimulatedInventory()
	item, err := inv.Lookup("abc123")
	require.NoError(t, err)

	record := &model.SaleRecord{Items: []model.LineItem{item, item, item}}
	inv.DecrementStock(record)

	assert.Equal(t, 0, inv.Quantity("abc123"), "stock never goes below zero")
	assert.Equal(t, 2, inv.Quantity("def456"), "unrelated items untouched")
}

func TestDecrementStockSkipsUnknownIDs(t *testing.T) {
	inv := NewSimulatedInventory()
	record := &model.SaleRecord{Items: []model.LineItem{{ID: "ghost"}}}
	inv.DecrementStock(record) // must not panic
	assert.Equal(t, -1, inv.Quantity("ghost"))
}

func threeItems() []model.LineItem {
	return []model.LineItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}
}

func TestCatalogItemCountRuleOnly(t *testing.T) {
	c := NewSimulatedCatalog()

	eligible := c.EligibleDiscounts(threeItems(), money.MustNew("80"), "7777")
	require.Len(t, eligible, 1)
	assert.Equal(t, discount.TypeItemBased, eligible[0].Type)
}

func TestCatalogTotalRuleOnly(t *testing.T) {
	c := NewSimulatedCatalog()

	eligible := c.EligibleDiscounts([]model.LineItem{{ID: "a"}}, money.MustNew("100.01"), "7777")
	require.Len(t, eligible, 1)
	assert.Equal(t, discount.TypeTotalPercent, eligible[0].Type)

	// Exactly 100 does not qualify.
	assert.Empty(t, c.EligibleDiscounts([]model.LineItem{{ID: "a"}}, money.MustNew("100"), "7777"))
}

func TestCatalogCustomerRuleStacks(t *testing.T) {
	c := NewSimulatedCatalog()

	eligible := c.EligibleDiscounts(threeItems(), money.MustNew("150"), ReservedCustomerID)
	require.Len(t, eligible, 3, "all matching rules apply together")

	types := []string{eligible[0].Type, eligible[1].Type, eligible[2].Type}
	assert.Contains(t, types, discount.TypeItemBased)
	assert.Contains(t, types, discount.TypeTotalPercent)
	assert.Contains(t, types, discount.TypeCustomerPercent)
}

func TestMemoryAccountingRecords(t *testing.T) {
	acc := NewMemoryAccounting()
	require.NoError(t, acc.Record(context.Background(), &model.SaleRecord{}))
	require.NoError(t, acc.Record(context.Background(), &model.SaleRecord{}))
	assert.Len(t, acc.Records(), 2)
}
