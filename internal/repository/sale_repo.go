package repository

import (
	"context"
	"time"

	"tillpos/internal/integration"
	"tillpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecordedSale is the persisted form of a finalized sale.
type RecordedSale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SoldAt     time.Time       `gorm:"index;not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalVAT   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Change     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discounted decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time

	Lines []RecordedSaleLine `gorm:"foreignKey:SaleID"`
}

type RecordedSaleLine struct {
	ID       uint            `gorm:"primaryKey"`
	SaleID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position int             `gorm:"not null"` // scan order
	ItemID   string          `gorm:"not null"`
	Name     string          `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:decimal(12,4);not null"` // VAT-inclusive unit price
	VATRate  decimal.Decimal `gorm:"type:decimal(6,4);not null"`
}

// SaleRepository records finalized sales into Postgres. It satisfies the
// accounting contract, so the coordinator is unaware whether recording is
// durable or the in-memory simulation.
type SaleRepository struct {
	db *gorm.DB
}

var _ integration.Accounting = (*SaleRepository)(nil)

func NewSaleRepository(db *gorm.DB) (*SaleRepository, error) {
	if err := db.AutoMigrate(&RecordedSale{}, &RecordedSaleLine{}); err != nil {
		return nil, err
	}
	return &SaleRepository{db: db}, nil
}

func (r *SaleRepository) Record(ctx context.Context, record *model.SaleRecord) error {
	row := RecordedSale{
		ID:         record.SaleID,
		SoldAt:     record.Timestamp,
		TotalPrice: record.TotalPrice.Round().Decimal(),
		TotalVAT:   record.TotalVAT.Round().Decimal(),
		AmountPaid: record.AmountPaid.Round().Decimal(),
		Change:     record.Change.Round().Decimal(),
		Discounted: record.Discounted.Round().Decimal(),
	}
	for i, line := range record.Items {
		row.Lines = append(row.Lines, RecordedSaleLine{
			Position: i,
			ItemID:   line.ID,
			Name:     line.Name,
			Price:    line.Price.Decimal(),
			VATRate:  line.VATRate.Decimal(),
		})
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// ListByDay returns the sales recorded on the given calendar day.
func (r *SaleRepository) ListByDay(ctx context.Context, day time.Time) ([]RecordedSale, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var sales []RecordedSale
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("sold_at >= ? AND sold_at < ?", start, end).
		Order("sold_at").
		Find(&sales).Error
	return sales, err
}
