package model

import "tillpos/internal/money"

// LineItem describes one sellable item. As looked up from inventory, Price
// is the unit base price excluding VAT; once retained inside a sale the line
// carries the VAT-inclusive price instead (see Sale.AddItem).
type LineItem struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Price       money.Money `json:"price"`
	VATRate     money.Money `json:"vat_rate"`
	Description string      `json:"description"`
}
