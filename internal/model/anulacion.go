package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de una solicitud de anulación. pendiente → aprobada | rechazada,
// both terminal.
const (
	SolicitudPendiente = "pendiente"
	SolicitudAprobada  = "aprobada"
	SolicitudRechazada = "rechazada"
)

// SolicitudAnulacionItem is a request to void a single order item. While it
// is pending the referenced item carries en_proceso_anulacion, which blocks
// dispatch and checkout of that item.
type SolicitudAnulacionItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemIndice      int       `gorm:"not null"`
	Motivo          string    `gorm:"not null"`
	UsuarioSolicita string    `gorm:"not null"`
	Estado          string    `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	UsuarioProcesa      *string
	MotivoAdmin         *string
	FechaProcesamiento  *time.Time
	CreatedAt           time.Time

	Orden *Orden `gorm:"foreignKey:OrdenID"`
}

// SolicitudAnulacionOrden is the whole-order analogue: approval voids every
// remaining active item and moves the order to estado anulada.
type SolicitudAnulacionOrden struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Motivo          string    `gorm:"not null"`
	UsuarioSolicita string    `gorm:"not null"`
	Estado          string    `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	UsuarioProcesa      *string
	MotivoAdmin         *string
	FechaProcesamiento  *time.Time
	CreatedAt           time.Time

	Orden *Orden `gorm:"foreignKey:OrdenID"`
}

// TableName overrides GORM's default pluralization.
func (SolicitudAnulacionItem) TableName() string { return "solicitudes_anulacion_item" }

// TableName overrides GORM's default pluralization.
func (SolicitudAnulacionOrden) TableName() string { return "solicitudes_anulacion_orden" }
