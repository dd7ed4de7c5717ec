package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"comandapos/internal/infra"
	"comandapos/internal/model"
)

// processTicketPDF genera el comprobante del ticket y, si el cliente dejó su
// correo, encadena el envío.
func (h *WorkerHandlers) processTicketPDF(ctx context.Context, payload TicketPDFPayload) error {
	ticketID, err := uuid.Parse(payload.TicketID)
	if err != nil {
		return fmt.Errorf("ticket_id inválido: %w", err)
	}

	var ticket model.Ticket
	err = h.DB.WithContext(ctx).
		Preload("Items").
		Preload("Pagos").
		First(&ticket, "id = ?", ticketID).Error
	if err != nil {
		return fmt.Errorf("cargar ticket %s: %w", payload.TicketID, err)
	}

	path, err := infra.GenerarTicketPDF(&ticket, h.Cfg.PDFStoragePath)
	if err != nil {
		return fmt.Errorf("generar pdf del ticket %d: %w", ticket.NumeroTicket, err)
	}

	err = h.DB.WithContext(ctx).
		Model(&model.Ticket{}).
		Where("id = ?", ticketID).
		Update("pdf_path", path).Error
	if err != nil {
		return err
	}
	log.Info().Int("numero_ticket", ticket.NumeroTicket).Str("path", path).Msg("pdf generado")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" && h.Dispatcher != nil {
		h.Dispatcher.EncolarEmail(ctx, EmailPayload{
			To:          []string{*payload.ClienteEmail},
			Subject:     fmt.Sprintf("Su comprobante - Ticket N° %d", ticket.NumeroTicket),
			Body:        fmt.Sprintf("<p>Adjuntamos el comprobante del ticket N° %d. ¡Gracias por su visita!</p>", ticket.NumeroTicket),
			Attachments: []string{path},
		})
	}
	return nil
}
