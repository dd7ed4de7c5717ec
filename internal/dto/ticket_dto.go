package dto

import "github.com/shopspring/decimal"

type EnviarACobroRequest struct {
	OrdenID string `json:"orden_id" validate:"required,uuid"`
}

type PagoRequest struct {
	Metodo string          `json:"metodo" validate:"required,oneof=efectivo debito credito transferencia"`
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
	// Recibido is required for efectivo and must cover Monto.
	Recibido *decimal.Decimal `json:"recibido" validate:"omitempty"`
}

type ConfirmarPagoRequest struct {
	Pagos []PagoRequest `json:"pagos" validate:"required,min=1,dive"`
	// ClienteEmail: optional — when present, the receipt PDF is mailed after payment.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

type ItemTicketResponse struct {
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PagoResponse struct {
	Metodo   string           `json:"metodo"`
	Monto    decimal.Decimal  `json:"monto"`
	Recibido *decimal.Decimal `json:"recibido,omitempty"`
}

type TicketResponse struct {
	ID           string               `json:"id"`
	NumeroTicket int                  `json:"numero_ticket"`
	OrdenID      string               `json:"orden_id"`
	NumeroOrden  int                  `json:"numero_orden,omitempty"`
	Estado       string               `json:"estado"`
	Total        decimal.Decimal      `json:"total"`
	Vuelto       decimal.Decimal      `json:"vuelto"`
	Items        []ItemTicketResponse `json:"items"`
	Pagos        []PagoResponse       `json:"pagos"`
	// SinReceta lists plates that produced no inventory movements because no
	// recipe is defined for them.
	SinReceta []string `json:"sin_receta,omitempty"`
	CreatedAt string   `json:"created_at"`
	FechaPago *string  `json:"fecha_pago,omitempty"`
}

// TicketFilter is bound from the query string of GET /v1/tickets.
type TicketFilter struct {
	Fecha  string `form:"fecha"`                  // YYYY-MM-DD; empty = today
	Estado string `form:"estado,default=pagado"`  // pendiente_pago | pagado | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type TicketListResponse struct {
	Data  []TicketResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
