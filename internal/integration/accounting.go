package integration

import (
	"context"
	"sync"

	"tillpos/internal/model"
)

// Accounting records finalized sales. Recording is best-effort from the
// coordinator's point of view; implementations decide durability.
type Accounting interface {
	Record(ctx context.Context, record *model.SaleRecord) error
}

// MemoryAccounting keeps finalized sales in memory, the simulation default
// when no database is configured.
type MemoryAccounting struct {
	mu      sync.Mutex
	records []*model.SaleRecord
}

func NewMemoryAccounting() *MemoryAccounting {
	return &MemoryAccounting{}
}

func (a *MemoryAccounting) Record(_ context.Context, record *model.SaleRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, record)
	return nil
}

// Records returns the sales recorded so far, in order.
func (a *MemoryAccounting) Records() []*model.SaleRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*model.SaleRecord, len(a.records))
	copy(out, a.records)
	return out
}
