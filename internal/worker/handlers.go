package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"comandapos/internal/config"
	"comandapos/internal/infra"
)

// WorkerHandlers agrupa las dependencias que necesitan los jobs.
type WorkerHandlers struct {
	DB         *gorm.DB
	Mailer     *infra.Mailer
	Dispatcher *Dispatcher
	Cfg        *config.Config
}

// Process rutea el job a su handler.
func (h *WorkerHandlers) Process(ctx context.Context, job *Job) error {
	switch job.Type {
	case JobTicketPDF:
		var payload TicketPDFPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("payload de %s ilegible: %w", job.Type, err)
		}
		return h.processTicketPDF(ctx, payload)
	case JobEmail:
		var payload EmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("payload de %s ilegible: %w", job.Type, err)
		}
		return h.processEmail(ctx, payload)
	default:
		return fmt.Errorf("tipo de job desconocido: %s", job.Type)
	}
}
