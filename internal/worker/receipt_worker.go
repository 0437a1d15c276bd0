package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: renders the PDF for a completed
// sale and, when the payload carries a customer email, chains an email job.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sergiom84/Lucy3000/internal/infra"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SaleID string `json:"sale_id"`
	Email  string `json:"email,omitempty"`
}

type ReceiptWorker struct {
	saleRepo       repository.SaleRepository
	dispatcher     *Dispatcher
	businessName   string
	pdfStoragePath string
}

func NewReceiptWorker(
	saleRepo repository.SaleRepository,
	dispatcher *Dispatcher,
	businessName string,
	pdfStoragePath string,
) *ReceiptWorker {
	return &ReceiptWorker{
		saleRepo:       saleRepo,
		dispatcher:     dispatcher,
		businessName:   businessName,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process renders the PDF and optionally enqueues the email job.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale_id")
		return
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: sale not found")
		return
	}

	pdfPath, err := infra.GenerateReceiptPDF(sale, w.businessName, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("sale", sale.SaleNumber).Msg("receipt_worker: PDF generated")

	if payload.Email == "" {
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: payload.Email,
		Subject: fmt.Sprintf("%s — receipt %s", w.businessName, sale.SaleNumber),
		Body:    fmt.Sprintf("Attached is your purchase receipt.\nTotal: $%s", sale.Total.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("receipt_worker: failed to enqueue email")
	}
}
