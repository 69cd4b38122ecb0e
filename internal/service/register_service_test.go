package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tillpos/internal/dto"
	"tillpos/internal/integration"
	"tillpos/internal/model"
	"tillpos/internal/money"
	"tillpos/internal/receipt"
	"tillpos/internal/revenue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type captureNotifier struct {
	amounts []money.Money
}

func (n *captureNotifier) OnTotalRevenue(amount money.Money) error {
	n.amounts = append(n.amounts, amount)
	return nil
}

// failingAccounting always errors; Pay must still succeed.
type failingAccounting struct{ calls int }

func (a *failingAccounting) Record(context.Context, *model.SaleRecord) error {
	a.calls++
	return errors.New("ledger offline")
}

type fixture struct {
	svc        RegisterService
	inventory  *integration.SimulatedInventory
	accounting *integration.MemoryAccounting
	printed    *strings.Builder
}

func newFixture(notifiers ...revenue.Notifier) *fixture {
	inventory := integration.NewSimulatedInventory()
	accounting := integration.NewMemoryAccounting()
	printed := &strings.Builder{}

	svc := NewRegisterService(
		inventory,
		integration.NewSimulatedCatalog(),
		accounting,
		receipt.NewPrinter(printed),
		nil, // no dispatcher — receipt emails disabled
		"",
	)
	for _, n := range notifiers {
		svc.RegisterNotifier(n)
	}
	return &fixture{svc: svc, inventory: inventory, accounting: accounting, printed: printed}
}

func pay(amount string) dto.PaymentRequest {
	return dto.PaymentRequest{Amount: money.MustNew(amount)}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestFullSaleFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartSale(ctx)
	require.NoError(t, err)

	for _, id := range []string{"abc123", "abc123", "def456"} {
		entry, err := f.svc.EnterItem(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, entry.Item.ID)
	}

	end, err := f.svc.EndSale(ctx)
	require.NoError(t, err)
	assert.Equal(t, "74.70", end.Total.StringFixed())

	resp, err := f.svc.Pay(ctx, pay("100"))
	require.NoError(t, err)
	assert.Equal(t, "25.30", resp.Change.StringFixed())
	assert.Contains(t, resp.Receipt, "74:70 SEK")
	assert.Contains(t, resp.Receipt, "25:30 SEK")

	// Post-finalize side effects: recorded, stock reduced, receipt printed.
	assert.Len(t, f.accounting.Records(), 1)
	assert.Equal(t, 0, f.inventory.Quantity("abc123"))
	assert.Equal(t, 1, f.inventory.Quantity("def456"))
	assert.Equal(t, resp.Receipt, f.printed.String())
}

func TestEnterItemNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.StartSale(ctx)
	require.NoError(t, err)

	_, err = f.svc.EnterItem(ctx, "nope999")
	var notFound *integration.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope999", notFound.ItemID)
}

func TestEnterItemStoreDownBecomesSystemError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.StartSale(ctx)
	require.NoError(t, err)

	_, err = f.svc.EnterItem(ctx, "fail114514")

	var sysErr *SystemError
	require.ErrorAs(t, err, &sysErr, "unavailable store must become a system error")
	assert.ErrorIs(t, err, integration.ErrUnavailable, "original cause preserved")

	var notFound *integration.NotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestOperationsWithoutSale(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.EnterItem(ctx, "abc123")
	assert.ErrorIs(t, err, ErrNoActiveSale)
	_, err = f.svc.EndSale(ctx)
	assert.ErrorIs(t, err, ErrNoActiveSale)
	_, err = f.svc.RequestDiscount(ctx, "114514")
	assert.ErrorIs(t, err, ErrNoActiveSale)
	_, err = f.svc.Pay(ctx, pay("10"))
	assert.ErrorIs(t, err, ErrNoActiveSale)
}

func TestStartSaleReplacesPrevious(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.StartSale(ctx)
	require.NoError(t, err)
	_, err = f.svc.EnterItem(ctx, "abc123")
	require.NoError(t, err)

	second, err := f.svc.StartSale(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.SaleID, second.SaleID)

	end, err := f.svc.EndSale(ctx)
	require.NoError(t, err)
	assert.True(t, end.Total.IsZero(), "the fresh sale starts empty")
}

func TestDiscountItemCountRuleOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.StartSale(ctx)
	require.NoError(t, err)

	// 3 line entries, total 74.70 ≤ 100, customer does not match.
	for _, id := range []string{"abc123", "abc123", "def456"} {
		_, err := f.svc.EnterItem(ctx, id)
		require.NoError(t, err)
	}
	_, err = f.svc.EndSale(ctx)
	require.NoError(t, err)

	resp, err := f.svc.RequestDiscount(ctx, "7777")
	require.NoError(t, err)
	require.Len(t, resp.Applied, 1)
	assert.Contains(t, resp.Applied[0], "more than 2 items")
	assert.Equal(t, "5.00", resp.Discounted.StringFixed())
	assert.Equal(t, "69.70", resp.Total.StringFixed())
}

func TestDiscountReservedCustomerStacks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.StartSale(ctx)
	require.NoError(t, err)

	for _, id := range []string{"abc123", "abc123", "def456"} {
		_, err := f.svc.EnterItem(ctx, id)
		require.NoError(t, err)
	}
	_, err = f.svc.EndSale(ctx)
	require.NoError(t, err)

	resp, err := f.svc.RequestDiscount(ctx, integration.ReservedCustomerID)
	require.NoError(t, err)
	require.Len(t, resp.Applied, 2, "customer discount stacks on the item-count discount")

	// 5.00 flat plus 5% of the unrounded running total, which sits a shade
	// under 74.70, rounded once at the end.
	assert.Equal(t, "8.73", resp.Discounted.StringFixed())
}

func TestRevenueNotifiedGrossDespiteDiscountAndOverpayment(t *testing.T) {
	notifier := &captureNotifier{}
	f := newFixture(notifier)
	ctx := context.Background()

	_, err := f.svc.StartSale(ctx)
	require.NoError(t, err)
	for _, id := range []string{"abc123", "abc123", "def456"} {
		_, err := f.svc.EnterItem(ctx, id)
		require.NoError(t, err)
	}
	_, err = f.svc.EndSale(ctx)
	require.NoError(t, err)
	_, err = f.svc.RequestDiscount(ctx, "7777")
	require.NoError(t, err)

	resp, err := f.svc.Pay(ctx, pay("200"))
	require.NoError(t, err)

	require.Len(t, notifier.amounts, 1)
	gross := notifier.amounts[0].Round()
	assert.Equal(t, "74.70", gross.StringFixed(), "observers see the gross total")
	assert.NotEqual(t, gross.StringFixed(), resp.Total.StringFixed(), "not the discounted total")
	assert.NotEqual(t, gross.StringFixed(), resp.Paid.StringFixed(), "not the paid amount")
}

func TestPaySurvivesAccountingFailure(t *testing.T) {
	accounting := &failingAccounting{}
	inventory := integration.NewSimulatedInventory()
	printed := &strings.Builder{}
	svc := NewRegisterService(inventory, integration.NewSimulatedCatalog(), accounting,
		receipt.NewPrinter(printed), nil, "")
	ctx := context.Background()

	_, err := svc.StartSale(ctx)
	require.NoError(t, err)
	_, err = svc.EnterItem(ctx, "abc123")
	require.NoError(t, err)
	_, err = svc.EndSale(ctx)
	require.NoError(t, err)

	resp, err := svc.Pay(ctx, pay("50"))
	require.NoError(t, err, "a failing recorder never blocks the payment")
	assert.Equal(t, 1, accounting.calls)
	assert.Equal(t, 1, inventory.Quantity("abc123"), "later side effects still ran")
	assert.NotEmpty(t, printed.String())
	assert.Equal(t, "20.10", resp.Change.StringFixed())
}

func TestPayBeforeEndSale(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.StartSale(ctx)
	require.NoError(t, err)
	_, err = f.svc.EnterItem(ctx, "abc123")
	require.NoError(t, err)

	_, err = f.svc.Pay(ctx, pay("100"))
	assert.ErrorIs(t, err, model.ErrIllegalState)
}

func TestUnderpaymentReturnsNegativeChange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.StartSale(ctx)
	require.NoError(t, err)
	_, err = f.svc.EnterItem(ctx, "abc123")
	require.NoError(t, err)
	_, err = f.svc.EndSale(ctx)
	require.NoError(t, err)

	resp, err := f.svc.Pay(ctx, pay("10"))
	require.NoError(t, err)
	assert.True(t, resp.Change.IsNegative())
	assert.Equal(t, "-19.90", resp.Change.StringFixed())
}
