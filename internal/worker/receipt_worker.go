package worker

// receipt_worker.go
// Processes receipt-email jobs from QueueReceiptEmail: mails the customer a
// copy of the receipt, with the PDF ticket attached when one was generated.

import (
	"context"
	"encoding/json"

	"tillpos/internal/infra"

	"github.com/rs/zerolog/log"
)

// ReceiptEmailPayload is the job envelope sent to QueueReceiptEmail.
type ReceiptEmailPayload struct {
	ToEmail     string `json:"to_email"`
	SaleID      string `json:"sale_id"`
	ReceiptText string `json:"receipt_text"`
	PDFPath     string `json:"pdf_path"`
}

// ReceiptEmailWorker sends receipt copies to customer emails via SMTP.
type ReceiptEmailWorker struct {
	mailer *infra.Mailer
}

func NewReceiptEmailWorker(mailer *infra.Mailer) *ReceiptEmailWorker {
	return &ReceiptEmailWorker{mailer: mailer}
}

// Process sends the receipt email. Failures are logged, never retried — the
// sale itself is already finalized and recorded.
func (w *ReceiptEmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload ReceiptEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("receipt_worker: empty to_email — skipping")
		return
	}

	subject := "Your receipt"
	if err := w.mailer.SendReceipt(payload.ToEmail, subject, payload.ReceiptText, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Str("sale_id", payload.SaleID).
			Msg("receipt_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("sale_id", payload.SaleID).
		Msg("receipt_worker: receipt sent")
}
