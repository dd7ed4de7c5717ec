package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket estados.
const (
	TicketPendientePago = "pendiente_pago"
	TicketPagado        = "pagado"
)

// Métodos de pago aceptados.
const (
	PagoEfectivo      = "efectivo"
	PagoDebito        = "debito"
	PagoCredito       = "credito"
	PagoTransferencia = "transferencia"
)

// Ticket is the checkout snapshot of an Orden: active items are copied at the
// moment of "send to checkout" and frozen until payment.
type Ticket struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroTicket int       `gorm:"uniqueIndex;not null"`
	OrdenID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'pendiente_pago';index"`
	FechaPago    *time.Time
	// Vuelto is the change returned on cash payments.
	Vuelto  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PDFPath *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []TicketItem `gorm:"foreignKey:TicketID"`
	Pagos []TicketPago `gorm:"foreignKey:TicketID"`
	Orden *Orden       `gorm:"foreignKey:OrdenID"`
}

// TicketItem is a frozen copy of an active order item.
type TicketItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrdenItemIndice int            `gorm:"not null"`
	PlatoID        uuid.UUID       `gorm:"type:uuid;not null"`
	Nombre         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TicketPago records one payment method's share of a paid ticket.
type TicketPago struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Metodo   string          `gorm:"type:varchar(20);not null"`
	Monto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Recibido applies to efectivo only: amount handed over by the customer.
	Recibido  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt time.Time
}
