package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Canal de preparación de un plato: determina en qué tablero aparece.
const (
	CanalCocina = "cocina"
	CanalBar    = "bar"
)

// Plato is a sellable menu item.
type Plato struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Categoria   string          `gorm:"not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Canal: "cocina" | "bar" — where the item is prepared and dispatched from.
	Canal     string `gorm:"type:varchar(10);not null;default:'cocina'"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Receta is the bill of materials: which ingredients (and how much of
	// each) one unit of this plate consumes. A plate may have no recipe at
	// all, in which case selling it produces no inventory movements.
	Receta []RecetaIngrediente `gorm:"foreignKey:PlatoID"`
}

// RecetaIngrediente is one line of a plate's bill of materials.
type RecetaIngrediente struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlatoID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_receta_plato_ingrediente"`
	IngredienteID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_receta_plato_ingrediente"`
	CantidadPorUnidad  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt          time.Time

	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
}

// TableName overrides GORM's default pluralization.
func (RecetaIngrediente) TableName() string { return "receta_ingredientes" }
