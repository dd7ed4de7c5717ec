package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"comandapos/internal/model"
)

// Colas de trabajo y sus respectivas colas muertas.
const (
	QueuePDF   = "jobs:pdf"
	QueueEmail = "jobs:email"

	maxAttempts = 3
	popTimeout  = 5 * time.Second
)

// Job es el sobre que viaja por Redis.
type Job struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Tipos de job.
const (
	JobTicketPDF = "ticket_pdf"
	JobEmail     = "email"
)

type TicketPDFPayload struct {
	TicketID     string  `json:"ticket_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

type EmailPayload struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments,omitempty"`
}

// Dispatcher encola trabajo. Implementa los notifiers que esperan los
// servicios; encolar es fuego-y-olvido, un fallo se loguea y no corta la
// operación que lo originó.
type Dispatcher struct {
	rdb     *redis.Client
	alertas []string
}

func NewDispatcher(rdb *redis.Client, emailAlertas []string) *Dispatcher {
	return &Dispatcher{rdb: rdb, alertas: emailAlertas}
}

func (d *Dispatcher) push(ctx context.Context, queue, jobType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("type", jobType).Msg("no se pudo serializar el job")
		return
	}
	job := Job{
		ID:         uuid.NewString(),
		Type:       jobType,
		Payload:    raw,
		EnqueuedAt: time.Now(),
	}
	data, _ := json.Marshal(job)
	if err := d.rdb.LPush(ctx, queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Str("type", jobType).Msg("no se pudo encolar el job")
	}
}

// EncolarTicketPDF pide la generación del comprobante y, si hay correo del
// cliente, su envío posterior.
func (d *Dispatcher) EncolarTicketPDF(ctx context.Context, ticketID uuid.UUID, clienteEmail *string) {
	d.push(ctx, QueuePDF, JobTicketPDF, TicketPDFPayload{
		TicketID:     ticketID.String(),
		ClienteEmail: clienteEmail,
	})
}

// EncolarEmail pide el envío de un correo arbitrario.
func (d *Dispatcher) EncolarEmail(ctx context.Context, payload EmailPayload) {
	d.push(ctx, QueueEmail, JobEmail, payload)
}

// NotificarStockBajo avisa por correo a los destinatarios configurados.
func (d *Dispatcher) NotificarStockBajo(ctx context.Context, ing model.Ingrediente) {
	if len(d.alertas) == 0 {
		return
	}
	d.EncolarEmail(ctx, EmailPayload{
		To:      d.alertas,
		Subject: fmt.Sprintf("Stock bajo: %s", ing.Descripcion),
		Body: fmt.Sprintf(
			"<p>El ingrediente <b>%s</b> quedó en %s %s (mínimo %s).</p>",
			ing.Descripcion, ing.Cantidad.String(), ing.Unidad, ing.StockMinimo.String(),
		),
	})
}

// StartWorkerPool levanta n workers que consumen las colas hasta que el
// contexto se cancele. Un job fallido vuelve a la cola hasta maxAttempts y
// después cae a la cola muerta.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, n int) {
	for i := 0; i < n; i++ {
		go runWorker(ctx, i, rdb, handlers)
	}
	log.Info().Int("workers", n).Msg("worker pool iniciado")
}

func runWorker(ctx context.Context, id int, rdb *redis.Client, handlers *WorkerHandlers) {
	logger := log.With().Int("worker", id).Logger()
	for {
		res, err := rdb.BRPop(ctx, popTimeout, QueuePDF, QueueEmail).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				logger.Info().Msg("worker detenido")
				return
			}
			logger.Error().Err(err).Msg("error leyendo la cola")
			time.Sleep(time.Second)
			continue
		}

		queue, data := res[0], res[1]
		var job Job
		if err := json.Unmarshal([]byte(data), &job); err != nil {
			logger.Error().Err(err).Str("queue", queue).Msg("job ilegible, descartado a la cola muerta")
			SendToDLQ(ctx, rdb, queue, []byte(data))
			continue
		}

		if err := handlers.Process(ctx, &job); err != nil {
			job.Attempts++
			logger.Warn().Err(err).
				Str("job_id", job.ID).
				Str("type", job.Type).
				Int("attempts", job.Attempts).
				Msg("job falló")
			encoded, _ := json.Marshal(job)
			if job.Attempts >= maxAttempts {
				SendToDLQ(ctx, rdb, queue, encoded)
				continue
			}
			if err := rdb.LPush(ctx, queue, encoded).Err(); err != nil {
				logger.Error().Err(err).Str("job_id", job.ID).Msg("no se pudo reencolar")
			}
		}
	}
}
