package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingrediente holds the live physical stock of one kitchen/bar supply.
// Cantidad never goes below zero: sales that exceed the available stock
// clamp it at zero (logged as a warning, never rejected).
type Ingrediente struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descripcion string    `gorm:"index;not null"`
	Cantidad    decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Unidad      string          `gorm:"not null;default:'unidad'"`
	// StockMinimo triggers a low-stock alert when Cantidad falls to or below it.
	StockMinimo decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
