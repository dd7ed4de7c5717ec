package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistroAuditoria is a free-form, append-only audit trail entry. Every
// state-changing workflow appends one; a failed append never blocks the
// primary operation.
type RegistroAuditoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Usuario     string    `gorm:"not null;index"`
	Descripcion string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName overrides GORM's default pluralization.
func (RegistroAuditoria) TableName() string { return "registros_auditoria" }
