package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CierreCaja is the end-of-day closure: a correlative-numbered snapshot of
// the day's collected payments against the cashier's blind declaration.
// ClasificacionDesvio: "normal" | "advertencia" | "critico"
type CierreCaja struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroCierre int       `gorm:"uniqueIndex;not null"`
	// Fecha is the business date the closure covers (YYYY-MM-DD).
	Fecha     string    `gorm:"type:varchar(10);uniqueIndex;not null"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null"`

	EsperadoEfectivo      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EsperadoDebito        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EsperadoCredito       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EsperadoTransferencia decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EsperadoTotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	DeclaradoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Desvio         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DesvioPct      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	ClasificacionDesvio string      `gorm:"type:varchar(20);not null"`
	Observaciones       *string
	CreatedAt           time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

// TableName overrides GORM's default pluralization.
func (CierreCaja) TableName() string { return "cierres_caja" }
