package integration

import (
	"tillpos/internal/discount"
	"tillpos/internal/model"
	"tillpos/internal/money"
)

// ReservedCustomerID is the customer granted the personal percentage
// discount in the simulated catalog.
const ReservedCustomerID = "114514"

// DiscountCatalog answers which discounts a sale is eligible for. Pure
// query, no side effects; every matching rule applies (stacking).
type DiscountCatalog interface {
	EligibleDiscounts(items []model.LineItem, totalPrice money.Money, customerID string) []discount.Descriptor
}

// SimulatedCatalog is the fixed-rule stand-in for an external discount
// service:
//   - more than 2 line entries        → 5.00 flat off
//   - total price strictly over 100   → 10% off
//   - the reserved customer id        → 5% off
type SimulatedCatalog struct {
	catalog map[string]discount.Descriptor
}

func NewSimulatedCatalog() *SimulatedCatalog {
	return &SimulatedCatalog{catalog: map[string]discount.Descriptor{
		discount.TypeItemBased: {
			Type:        discount.TypeItemBased,
			Value:       money.MustNew("5.00"),
			Description: "5 off for buying more than 2 items",
		},
		discount.TypeTotalPercent: {
			Type:        discount.TypeTotalPercent,
			Value:       money.MustNew("0.10"),
			Description: "10% off for total price over 100",
		},
		discount.TypeCustomerPercent: {
			Type:        discount.TypeCustomerPercent,
			Value:       money.MustNew("0.05"),
			Description: "5% off for customer " + ReservedCustomerID,
		},
	}}
}

func (c *SimulatedCatalog) EligibleDiscounts(items []model.LineItem, totalPrice money.Money, customerID string) []discount.Descriptor {
	var eligible []discount.Descriptor

	if len(items) > 2 {
		eligible = append(eligible, c.catalog[discount.TypeItemBased])
	}
	if totalPrice.Cmp(money.MustNew("100")) > 0 {
		eligible = append(eligible, c.catalog[discount.TypeTotalPercent])
	}
	if customerID == ReservedCustomerID {
		eligible = append(eligible, c.catalog[discount.TypeCustomerPercent])
	}

	return eligible
}
