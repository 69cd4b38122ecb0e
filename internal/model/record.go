package model

import (
	"time"

	"tillpos/internal/money"

	"github.com/google/uuid"
)

// SaleRecord is the finalized, immutable snapshot of a closed sale. It is
// produced exactly once per sale and consumed by the accounting recorder,
// the inventory updater and the receipt renderer. All amounts are unrounded;
// consumers round at their own presentation boundary.
type SaleRecord struct {
	SaleID     uuid.UUID
	Timestamp  time.Time
	Items      []LineItem
	TotalPrice money.Money
	TotalVAT   money.Money
	AmountPaid money.Money
	Change     money.Money
	Discounted money.Money
}
