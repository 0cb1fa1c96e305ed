package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: renders a PDF copy of the
// ticket and, when a customer email was given at confirm time, enqueues
// an email job with the PDF attached.

import (
	"context"
	"encoding/json"
	"fmt"

	"barpos/internal/infra"
	"barpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	TicketID      string `json:"ticket_id"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

type ReceiptWorker struct {
	ticketRepo     repository.TicketRepository
	dispatcher     *Dispatcher
	businessName   string
	pdfStoragePath string
}

func NewReceiptWorker(ticketRepo repository.TicketRepository, dispatcher *Dispatcher, businessName, pdfStoragePath string) *ReceiptWorker {
	return &ReceiptWorker{
		ticketRepo:     ticketRepo,
		dispatcher:     dispatcher,
		businessName:   businessName,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process renders the PDF receipt for one ticket. A malformed payload is
// dropped; a rendering failure is returned so the pool can retry.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil
	}
	ticketID, err := uuid.Parse(payload.TicketID)
	if err != nil {
		log.Error().Str("ticket_id", payload.TicketID).Msg("receipt_worker: invalid ticket_id")
		return nil
	}

	ticket, err := w.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("receipt_worker: load ticket %s: %w", payload.TicketID, err)
	}

	pdfPath, err := infra.GenerateReceiptPDF(ticket, w.businessName, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("receipt_worker: render pdf: %w", err)
	}
	log.Info().Str("ticket_id", payload.TicketID).Str("pdf", pdfPath).Msg("receipt_worker: PDF generated")

	if payload.CustomerEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: payload.CustomerEmail,
			Subject: fmt.Sprintf("%s — Ticket #%06d", w.businessName, ticket.Number),
			Body:    fmt.Sprintf("Your receipt is attached.\nTotal: $%s", ticket.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", payload.CustomerEmail).Msg("receipt_worker: failed to enqueue email")
		}
	}
	return nil
}
