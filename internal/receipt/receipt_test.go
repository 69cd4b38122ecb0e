package receipt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tillpos/internal/model"
	"tillpos/internal/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *model.SaleRecord {
	oatmeal := model.LineItem{ID: "abc123", Name: "BigWheel Oatmeal", Price: money.MustNew("29.90"), VATRate: money.MustNew("0.06")}
	yoghurt := model.LineItem{ID: "def456", Name: "YouGoGo Blueberry", Price: money.MustNew("14.90"), VATRate: money.MustNew("0.06")}

	return &model.SaleRecord{
		SaleID:     uuid.New(),
		Timestamp:  time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
		Items:      []model.LineItem{oatmeal, oatmeal, yoghurt},
		TotalPrice: money.MustNew("74.70"),
		TotalVAT:   money.MustNew("4.228"),
		AmountPaid: money.MustNew("100"),
		Change:     money.MustNew("25.30"),
		Discounted: money.Zero,
	}
}

func TestTextUsesColonDecimals(t *testing.T) {
	text := Text(sampleRecord())

	assert.Contains(t, text, "Total:")
	assert.Contains(t, text, "74:70 SEK")
	assert.Contains(t, text, "100:00 SEK")
	assert.Contains(t, text, "25:30 SEK")
	assert.NotContains(t, text, "74.70", "receipt must not leak dot decimals")
}

func TestTextAggregatesByScanOrder(t *testing.T) {
	text := Text(sampleRecord())

	oatmealIdx := strings.Index(text, "BigWheel Oatmeal")
	yoghurtIdx := strings.Index(text, "YouGoGo Blueberry")
	require.GreaterOrEqual(t, oatmealIdx, 0)
	require.GreaterOrEqual(t, yoghurtIdx, 0)
	assert.Less(t, oatmealIdx, yoghurtIdx, "first-scanned item is listed first")

	assert.Contains(t, text, " 2 x ", "duplicate scans collapse into one quantified line")
	assert.Equal(t, 1, strings.Count(text, "BigWheel Oatmeal"))
	// 2 × 29.90 line total
	assert.Contains(t, text, "59:80 SEK")
}

func TestTextTruncatesLongNames(t *testing.T) {
	record := sampleRecord()
	record.Items = []model.LineItem{{
		ID:    "long1",
		Name:  "Extra Fancy Organic Sourdough Bread",
		Price: money.MustNew("45"),
	}}

	text := Text(record)
	assert.Contains(t, text, "Extra Fancy Organic...")
	assert.NotContains(t, text, "Sourdough")
}

func TestTextKeepsShortNames(t *testing.T) {
	// 21 characters exactly — the limit itself is not truncated.
	name := strings.Repeat("a", 21)
	record := sampleRecord()
	record.Items = []model.LineItem{{ID: "x", Name: name, Price: money.MustNew("1")}}

	assert.Contains(t, Text(record), name)
	assert.NotContains(t, Text(record), "...")
}

func TestTextBanner(t *testing.T) {
	text := Text(sampleRecord())
	assert.True(t, strings.HasPrefix(text, "------------------ Begin receipt -------------------\n"))
	assert.True(t, strings.HasSuffix(text, "------------------ End receipt ---------------------\n"))
	assert.Contains(t, text, "Time of Sale:")
}

func TestPrinterWritesText(t *testing.T) {
	var out strings.Builder
	p := NewPrinter(&out)
	require.NoError(t, p.Render(sampleRecord()))
	assert.Equal(t, Text(sampleRecord()), out.String())
}

func TestRenderPDFWritesFile(t *testing.T) {
	dir := t.TempDir()
	record := sampleRecord()

	path, err := RenderPDF(record, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ticket_"+record.SaleID.String()+".pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
