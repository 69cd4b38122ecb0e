// Package discount holds the discount strategies applied to a sale. Each
// strategy computes its amount against the pre-discount total; eligible
// strategies stack by summation and never compound.
package discount

import "tillpos/internal/money"

// Strategy computes a discount amount for a sale total. Why a sale is
// eligible for a strategy is the catalog's concern, not the strategy's.
type Strategy interface {
	// CalculateDiscount returns the amount to remove, given the
	// pre-discount total price of the sale.
	CalculateDiscount(totalPrice money.Money) money.Money
	// Description is the human-readable label printed on receipts and logs.
	Description() string
}

// FixedAmount removes a flat amount regardless of the total.
type FixedAmount struct {
	amount      money.Money
	description string
}

func NewFixedAmount(amount money.Money, description string) FixedAmount {
	return FixedAmount{amount: amount, description: description}
}

func (d FixedAmount) CalculateDiscount(money.Money) money.Money { return d.amount }
func (d FixedAmount) Description() string                       { return d.description }

// TotalPercentage removes a fraction of the total price.
type TotalPercentage struct {
	rate        money.Money
	description string
}

func NewTotalPercentage(rate money.Money, description string) TotalPercentage {
	return TotalPercentage{rate: rate, description: description}
}

func (d TotalPercentage) CalculateDiscount(totalPrice money.Money) money.Money {
	return totalPrice.Mul(d.rate)
}
func (d TotalPercentage) Description() string { return d.description }

// CustomerPercentage removes a fraction of the total price for a specific
// customer. The formula matches TotalPercentage; only the eligibility
// context differs.
type CustomerPercentage struct {
	rate        money.Money
	description string
}

func NewCustomerPercentage(rate money.Money, description string) CustomerPercentage {
	return CustomerPercentage{rate: rate, description: description}
}

func (d CustomerPercentage) CalculateDiscount(totalPrice money.Money) money.Money {
	return totalPrice.Mul(d.rate)
}
func (d CustomerPercentage) Description() string { return d.description }
