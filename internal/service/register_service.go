package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tillpos/internal/discount"
	"tillpos/internal/dto"
	"tillpos/internal/integration"
	"tillpos/internal/model"
	"tillpos/internal/receipt"
	"tillpos/internal/revenue"
	"tillpos/internal/worker"

	"github.com/rs/zerolog/log"
)

// ErrNoActiveSale is returned by sale operations invoked before StartSale.
var ErrNoActiveSale = errors.New("register: no active sale")

// SystemError wraps a non-recoverable provider failure (e.g. the inventory
// store being unreachable). The original cause is preserved for logging but
// callers must not treat it as recoverable.
type SystemError struct {
	Op    string
	Cause error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("register: %s: system failure: %v", e.Op, e.Cause)
}

func (e *SystemError) Unwrap() error { return e.Cause }

type RegisterService interface {
	// RegisterNotifier adds a revenue observer. Observers must be registered
	// before StartSale; a running sale keeps the set it was created with.
	RegisterNotifier(n revenue.Notifier)
	StartSale(ctx context.Context) (*dto.StartSaleResponse, error)
	EnterItem(ctx context.Context, itemID string) (*dto.EnterItemResponse, error)
	EndSale(ctx context.Context) (*dto.EndSaleResponse, error)
	RequestDiscount(ctx context.Context, customerID string) (*dto.DiscountResponse, error)
	Pay(ctx context.Context, req dto.PaymentRequest) (*dto.PaymentResponse, error)
}

type registerService struct {
	inventory  integration.Inventory
	catalog    integration.DiscountCatalog
	accounting integration.Accounting
	printer    receipt.Sink
	dispatcher *worker.Dispatcher // optional — nil disables receipt emails
	pdfPath    string

	// The register serves one cashier; the mutex only serializes HTTP
	// access, the sale itself carries no locking.
	mu        sync.Mutex
	notifiers []revenue.Notifier
	sale      *model.Sale
}

func NewRegisterService(
	inventory integration.Inventory,
	catalog integration.DiscountCatalog,
	accounting integration.Accounting,
	printer receipt.Sink,
	dispatcher *worker.Dispatcher,
	pdfPath string,
) RegisterService {
	return &registerService{
		inventory:  inventory,
		catalog:    catalog,
		accounting: accounting,
		printer:    printer,
		dispatcher: dispatcher,
		pdfPath:    pdfPath,
	}
}

func (s *registerService) RegisterNotifier(n revenue.Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

// StartSale opens a fresh sale, replacing any prior instance. No explicit
// close of the previous sale is required — single-register usage.
func (s *registerService) StartSale(_ context.Context) (*dto.StartSaleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifiers := make([]revenue.Notifier, len(s.notifiers))
	copy(notifiers, s.notifiers)
	s.sale = model.NewSale(notifiers)

	return &dto.StartSaleResponse{
		SaleID:    s.sale.ID().String(),
		StartedAt: s.sale.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// EnterItem looks the item up in inventory and folds it into the sale.
// An unknown id surfaces as *integration.NotFoundError; an unreachable
// store is translated into a *SystemError.
func (s *registerService) EnterItem(_ context.Context, itemID string) (*dto.EnterItemResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sale == nil {
		return nil, ErrNoActiveSale
	}

	item, err := s.inventory.Lookup(itemID)
	if err != nil {
		if errors.Is(err, integration.ErrUnavailable) {
			log.Error().Err(err).Str("item_id", itemID).Msg("inventory store unreachable")
			return nil, &SystemError{Op: "enter item", Cause: err}
		}
		return nil, err
	}

	entry, err := s.sale.AddItem(item)
	if err != nil {
		return nil, err
	}

	return &dto.EnterItemResponse{
		Item:         lineItemToResponse(entry.Item),
		RunningTotal: entry.RunningTotal.Round(),
		RunningVAT:   entry.RunningVAT.Round(),
	}, nil
}

// EndSale returns the rounded running total and arms the sale for payment.
func (s *registerService) EndSale(_ context.Context) (*dto.EndSaleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sale == nil {
		return nil, ErrNoActiveSale
	}
	return &dto.EndSaleResponse{Total: s.sale.TotalPrice().Round()}, nil
}

// RequestDiscount fetches the eligible discounts for this customer and
// applies them to the sale.
func (s *registerService) RequestDiscount(_ context.Context, customerID string) (*dto.DiscountResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sale == nil {
		return nil, ErrNoActiveSale
	}

	descriptors := s.catalog.EligibleDiscounts(s.sale.Items(), s.sale.TotalPrice(), customerID)
	strategies := discount.BuildStrategies(descriptors)

	total, err := s.sale.ApplyDiscounts(strategies)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(strategies))
	for _, strategy := range strategies {
		applied = append(applied, strategy.Description())
	}

	return &dto.DiscountResponse{
		Total:      total.Round(),
		Discounted: s.sale.TotalDiscounted().Round(),
		Applied:    applied,
	}, nil
}

// Pay records the payment, finalizes the sale and runs the post-finalize
// side effects in order: accounting record, stock decrement, receipt
// emission. All best-effort and non-transactional — a failure in one never
// rolls back the others or the payment result.
func (s *registerService) Pay(ctx context.Context, req dto.PaymentRequest) (*dto.PaymentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sale == nil {
		return nil, ErrNoActiveSale
	}

	if err := s.sale.SetAmountPaid(req.Amount); err != nil {
		return nil, err
	}
	record, err := s.sale.Finalize()
	if err != nil {
		return nil, err
	}

	if err := s.accounting.Record(ctx, record); err != nil {
		log.Error().Err(err).Str("sale_id", record.SaleID.String()).Msg("accounting record failed")
	}
	s.inventory.DecrementStock(record)
	if err := s.printer.Render(record); err != nil {
		log.Error().Err(err).Str("sale_id", record.SaleID.String()).Msg("receipt emission failed")
	}

	receiptText := receipt.Text(record)
	s.dispatchReceiptEmail(ctx, record, receiptText, req.CustomerEmail)

	return &dto.PaymentResponse{
		Total:   record.TotalPrice.Round(),
		VAT:     record.TotalVAT.Round(),
		Paid:    record.AmountPaid.Round(),
		Change:  record.Change.Round(),
		Receipt: receiptText,
	}, nil
}

// dispatchReceiptEmail enqueues a receipt-email job — fire & forget.
func (s *registerService) dispatchReceiptEmail(ctx context.Context, record *model.SaleRecord, receiptText string, to *string) {
	if s.dispatcher == nil || to == nil || *to == "" {
		return
	}

	pdfPath := ""
	if s.pdfPath != "" {
		path, err := receipt.RenderPDF(record, s.pdfPath)
		if err != nil {
			log.Error().Err(err).Str("sale_id", record.SaleID.String()).Msg("ticket PDF generation failed")
		} else {
			pdfPath = path
		}
	}

	payload := worker.ReceiptEmailPayload{
		ToEmail:     *to,
		SaleID:      record.SaleID.String(),
		ReceiptText: receiptText,
		PDFPath:     pdfPath,
	}
	if err := s.dispatcher.EnqueueReceiptEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("failed to enqueue receipt email")
	}
}

func lineItemToResponse(item model.LineItem) dto.LineItemResponse {
	return dto.LineItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price.Round(),
		VATRate:     item.VATRate,
		Description: item.Description,
	}
}
