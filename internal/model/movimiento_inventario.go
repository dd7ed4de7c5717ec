package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement types. "salida" debits stock (sale), "entrada" credits it
// (cancellation reversal or manual restock).
const (
	MovimientoSalida  = "salida"
	MovimientoEntrada = "entrada"
)

// MovimientoInventario is an append-only ledger entry for ingredient stock.
// Entries are NEVER modified or deleted — reversals create mirror entries.
type MovimientoInventario struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IngredienteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"type:varchar(10);not null"` // "entrada" | "salida"
	// Cantidad is signed by type: negative for salida, positive for entrada.
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockAnterior decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockNuevo    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Motivo        string          `gorm:"not null"`
	Usuario       string          `gorm:"not null"`
	// ClaveEvento deduplicates postings: "<ordenID>:<itemIndice>:<venta|reversa>:<ingredienteID>".
	// Re-processing the same sale or reversal event is a detected no-op.
	ClaveEvento *string    `gorm:"uniqueIndex"`
	OrdenID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time

	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
