package model

import (
	"errors"
	"fmt"
	"time"

	"tillpos/internal/discount"
	"tillpos/internal/money"
	"tillpos/internal/revenue"

	"github.com/google/uuid"
)

// ErrIllegalState is returned when a sale operation is invoked outside its
// allowed phase, e.g. adding an item after the sale was priced or recording
// a payment before the total was requested. This is a programmer error.
var ErrIllegalState = errors.New("sale: illegal state")

// Sale phases. Transitions are one-directional:
// open → priced → discounted → closed.
const (
	StateOpen       = "open"
	StatePriced     = "priced"
	StateDiscounted = "discounted"
	StateClosed     = "closed"
)

// payment is the sub-ledger allocated when the total is first requested.
// Recording an amount before the ledger exists is a protocol violation.
type payment struct {
	amount money.Money
	set    bool
}

// Sale is the aggregate root of one register transaction. It owns the item
// list, the running VAT-inclusive totals, discount application and change
// computation. Instances are not safe for concurrent use; the coordinator
// owns exactly one at a time.
type Sale struct {
	id        uuid.UUID
	createdAt time.Time

	items      []LineItem
	totalPrice money.Money
	totalVAT   money.Money
	// grossTotal is the pre-discount VAT-inclusive sum. It keeps growing with
	// items but is never reduced by discounts: revenue observers see the
	// gross sale total, not the net-of-discount or paid amount.
	grossTotal      money.Money
	totalDiscounted money.Money

	payment   *payment
	notifiers []revenue.Notifier
	state     string
}

// NewSale creates an empty open sale. The notifier set is fixed at creation;
// observers registering after a sale started do not see it.
func NewSale(notifiers []revenue.Notifier) *Sale {
	return &Sale{
		id:        uuid.New(),
		createdAt: time.Now(),
		notifiers: notifiers,
		state:     StateOpen,
	}
}

func (s *Sale) ID() uuid.UUID        { return s.id }
func (s *Sale) CreatedAt() time.Time { return s.createdAt }
func (s *Sale) State() string        { return s.state }

// Items returns the lines retained so far, in scan order, each carrying its
// VAT-inclusive price.
func (s *Sale) Items() []LineItem { return s.items }

// ItemEntry is the caller-display result of adding one item: the retained
// line (VAT-inclusive price) plus the running figures.
type ItemEntry struct {
	Item         LineItem
	RunningTotal money.Money
	RunningVAT   money.Money
}

// AddItem folds one scanned item into the running totals and retains the
// line with its VAT-inclusive price. Nothing is rounded at this stage.
func (s *Sale) AddItem(item LineItem) (ItemEntry, error) {
	if s.state != StateOpen {
		return ItemEntry{}, fmt.Errorf("%w: cannot add items in state %q", ErrIllegalState, s.state)
	}

	vatPortion := item.Price.Mul(item.VATRate)
	fullPrice := item.Price.Mul(item.VATRate.Add(money.FromInt(1)))

	s.totalVAT = s.totalVAT.Add(vatPortion)
	s.totalPrice = s.totalPrice.Add(fullPrice)
	s.grossTotal = s.grossTotal.Add(fullPrice)

	retained := item
	retained.Price = fullPrice
	s.items = append(s.items, retained)

	return ItemEntry{Item: retained, RunningTotal: s.totalPrice, RunningVAT: s.totalVAT}, nil
}

// TotalPrice returns the current running total, unrounded. It also arms the
// sale for payment by allocating the payment sub-ledger and, on first call,
// closes the item phase. Safe to call repeatedly.
func (s *Sale) TotalPrice() money.Money {
	s.payment = &payment{}
	if s.state == StateOpen {
		s.state = StatePriced
	}
	return s.totalPrice
}

// TotalVAT returns the running VAT sum, unrounded.
func (s *Sale) TotalVAT() money.Money { return s.totalVAT }

// ApplyDiscounts evaluates every strategy against the pre-discount total,
// sums the amounts (stacking, not compounding) and reduces the total once.
// An empty strategy list leaves the total unchanged. May be applied once.
func (s *Sale) ApplyDiscounts(strategies []discount.Strategy) (money.Money, error) {
	if s.state == StateDiscounted || s.state == StateClosed {
		return money.Zero, fmt.Errorf("%w: discounts already fixed in state %q", ErrIllegalState, s.state)
	}

	discountTotal := money.Zero
	for _, strategy := range strategies {
		discountTotal = discountTotal.Add(strategy.CalculateDiscount(s.totalPrice))
	}

	s.totalDiscounted = discountTotal
	s.totalPrice = s.totalPrice.Sub(discountTotal)
	s.state = StateDiscounted
	return s.totalPrice, nil
}

// TotalDiscounted returns the amount removed by ApplyDiscounts, zero when no
// discount was applied.
func (s *Sale) TotalDiscounted() money.Money { return s.totalDiscounted }

// SetAmountPaid records the paid amount into the payment sub-ledger. Fails
// when the ledger was never armed via TotalPrice, or when already closed.
func (s *Sale) SetAmountPaid(amount money.Money) error {
	if s.payment == nil {
		return fmt.Errorf("%w: payment recorded before total was requested", ErrIllegalState)
	}
	if s.state == StateClosed {
		return fmt.Errorf("%w: sale already closed", ErrIllegalState)
	}
	s.payment.amount = amount
	s.payment.set = true
	return nil
}

// Finalize closes the sale: computes the change from the recorded payment,
// notifies every revenue observer with the gross pre-discount total, and
// returns the immutable snapshot. Change may be negative — underpayment is
// deliberately not rejected at this layer; callers decide whether to guard.
func (s *Sale) Finalize() (*SaleRecord, error) {
	if s.payment == nil || !s.payment.set {
		return nil, fmt.Errorf("%w: finalize without a recorded payment", ErrIllegalState)
	}
	if s.state == StateClosed {
		return nil, fmt.Errorf("%w: sale already closed", ErrIllegalState)
	}

	change := s.payment.amount.Sub(s.totalPrice)
	s.state = StateClosed

	revenue.Notify(s.notifiers, s.grossTotal)

	items := make([]LineItem, len(s.items))
	copy(items, s.items)

	return &SaleRecord{
		SaleID:     s.id,
		Timestamp:  s.createdAt,
		Items:      items,
		TotalPrice: s.totalPrice,
		TotalVAT:   s.totalVAT,
		AmountPaid: s.payment.amount,
		Change:     change,
		Discounted: s.totalDiscounted,
	}, nil
}
