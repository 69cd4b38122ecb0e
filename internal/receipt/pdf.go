package receipt

// pdf.go — PDF ticket generation using go-pdf/fpdf.
// Generates A7-size thermal receipt-style tickets with a header, item table,
// discount line, bold total and paid/change breakdown. The output file is
// saved to storagePath/ticket_{saleID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"tillpos/internal/model"
	"tillpos/internal/money"

	"github.com/go-pdf/fpdf"
)

// RenderPDF writes the ticket for a finalized sale and returns the absolute
// path of the generated file. storagePath is created if needed.
func RenderPDF(record *model.SaleRecord, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ticket_%s.pdf", record.SaleID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "tillpos", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sale receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, record.Timestamp.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, line := range aggregate(record.Items) {
		lineTotal := line.item.Price.Mul(money.FromInt(int64(line.quantity)))
		pdf.CellFormat(col1, 5, truncateName(line.item.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", line.quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, lineTotal.Colonized(), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	if !record.Discounted.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Discount:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-"+record.Discounted.Colonized(), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, record.TotalPrice.Colonized(), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Cash:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, record.AmountPaid.Colonized(), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 4, "Change:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, record.Change.Colonized(), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// PDFSink renders tickets into a storage directory.
type PDFSink struct {
	storagePath string
}

func NewPDFSink(storagePath string) *PDFSink {
	return &PDFSink{storagePath: storagePath}
}

func (s *PDFSink) Render(record *model.SaleRecord) error {
	_, err := RenderPDF(record, s.storagePath)
	return err
}
