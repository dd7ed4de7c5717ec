package worker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// processEmail envía el correo por SMTP. En entornos sin SMTP configurado el
// job se loguea y se da por hecho.
func (h *WorkerHandlers) processEmail(_ context.Context, payload EmailPayload) error {
	if len(payload.To) == 0 {
		return fmt.Errorf("email sin destinatarios")
	}
	if h.Cfg.SMTPHost == "" {
		log.Info().Strs("to", payload.To).Str("subject", payload.Subject).Msg("smtp no configurado, correo omitido")
		return nil
	}
	if err := h.Mailer.Send(payload.To, payload.Subject, payload.Body, payload.Attachments); err != nil {
		return fmt.Errorf("enviar correo %q: %w", payload.Subject, err)
	}
	log.Info().Strs("to", payload.To).Str("subject", payload.Subject).Msg("correo enviado")
	return nil
}
