package model

import "time"

// Configuracion is the singleton settings row (ID is always 1).
// The numero_*_inicial values are floors for the correlative sequences:
// issued numbers are always >= the configured start.
type Configuracion struct {
	ID                  uint `gorm:"primaryKey"`
	NumeroOrdenInicial  int  `gorm:"not null;default:1"`
	NumeroTicketInicial int  `gorm:"not null;default:1"`
	NumeroCierreInicial int  `gorm:"not null;default:1"`
	// AlertasStock enables low-stock alert emails.
	AlertasStock bool `gorm:"not null;default:true"`
	UpdatedAt    time.Time
}

// TableName pins the singleton to a fixed table name.
func (Configuracion) TableName() string { return "configuracion" }

// ConfiguracionDefault returns the settings used when no row exists yet.
func ConfiguracionDefault() *Configuracion {
	return &Configuracion{
		ID:                  1,
		NumeroOrdenInicial:  1,
		NumeroTicketInicial: 1,
		NumeroCierreInicial: 1,
		AlertasStock:        true,
	}
}
