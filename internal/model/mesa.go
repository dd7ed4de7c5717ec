package model

import (
	"time"

	"github.com/google/uuid"
)

// Mesa is a physical table in the dining room.
type Mesa struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero      int       `gorm:"uniqueIndex;not null"`
	Descripcion string
	Capacidad   int  `gorm:"not null;default:4"`
	Activa      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
