package dto

import "tillpos/internal/money"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type EnterItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type DiscountRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
}

type PaymentRequest struct {
	Amount money.Money `json:"amount" validate:"required"`
	// CustomerEmail: optional — when present, the receipt worker mails the
	// PDF ticket after the sale is finalized.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StartSaleResponse struct {
	SaleID    string `json:"sale_id"`
	StartedAt string `json:"started_at"`
}

type LineItemResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Price       money.Money `json:"price"`
	VATRate     money.Money `json:"vat_rate"`
	Description string      `json:"description"`
}

// EnterItemResponse carries the scanned item (VAT-inclusive price) and the
// running figures, rounded for display.
type EnterItemResponse struct {
	Item         LineItemResponse `json:"item"`
	RunningTotal money.Money      `json:"running_total"`
	RunningVAT   money.Money      `json:"running_vat"`
}

type EndSaleResponse struct {
	Total money.Money `json:"total"`
}

type DiscountResponse struct {
	Total      money.Money `json:"total"`
	Discounted money.Money `json:"discounted"`
	Applied    []string    `json:"applied"`
}

type PaymentResponse struct {
	Total   money.Money `json:"total"`
	VAT     money.Money `json:"vat"`
	Paid    money.Money `json:"paid"`
	Change  money.Money `json:"change"`
	Receipt string      `json:"receipt"`
}
