// Package receipt renders finalized sales for customers: a fixed-width text
// receipt (the simulated register printer) and a PDF ticket. All money that
// crosses this boundary uses the colon-decimal format.
package receipt

import (
	"fmt"
	"io"
	"strings"

	"tillpos/internal/model"
	"tillpos/internal/money"
)

// Sink consumes a finalized sale record, e.g. a printer or a file.
type Sink interface {
	Render(record *model.SaleRecord) error
}

// nameLimit/nameKeep: item names longer than nameLimit characters are cut to
// nameKeep characters plus an ellipsis.
const (
	nameLimit = 21
	nameKeep  = 19
)

type aggregatedLine struct {
	item     model.LineItem
	quantity int
}

// aggregate groups identical item ids, preserving first-scanned order.
func aggregate(items []model.LineItem) []aggregatedLine {
	index := make(map[string]int)
	var lines []aggregatedLine
	for _, item := range items {
		if i, ok := index[item.ID]; ok {
			lines[i].quantity++
			continue
		}
		index[item.ID] = len(lines)
		lines = append(lines, aggregatedLine{item: item, quantity: 1})
	}
	return lines
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= nameLimit {
		return name
	}
	return string(runes[:nameKeep]) + "..."
}

// Text renders the full receipt as a string.
func Text(record *model.SaleRecord) string {
	var b strings.Builder

	b.WriteString("------------------ Begin receipt -------------------\n")
	fmt.Fprintf(&b, "Time of Sale: %38s\n\n", record.Timestamp.Format("2006-01-02 15:04"))

	for _, line := range aggregate(record.Items) {
		// Retained lines already carry the VAT-inclusive unit price.
		unit := line.item.Price
		lineTotal := unit.Mul(money.FromInt(int64(line.quantity)))
		fmt.Fprintf(&b, "%-24s %2d x %7s %10s SEK\n",
			truncateName(line.item.Name), line.quantity, unit.Colonized(), lineTotal.Colonized())
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Discount Applied: %30s SEK\n", record.Discounted.Colonized())
	fmt.Fprintf(&b, "Total: %41s SEK\n", record.TotalPrice.Colonized())
	fmt.Fprintf(&b, "VAT: %43s SEK\n\n", record.TotalVAT.Colonized())
	fmt.Fprintf(&b, "Cash: %42s SEK\n", record.AmountPaid.Colonized())
	fmt.Fprintf(&b, "Change: %40s SEK\n", record.Change.Colonized())
	b.WriteString("------------------ End receipt ---------------------\n")

	return b.String()
}

// Printer writes the text receipt to an output stream, simulating the
// register's receipt printer.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Render(record *model.SaleRecord) error {
	_, err := io.WriteString(p.out, Text(record))
	return err
}
