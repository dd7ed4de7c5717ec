package dto

import "github.com/shopspring/decimal"

type CrearPlatoRequest struct {
	Nombre      string          `json:"nombre"    validate:"required"`
	Descripcion *string         `json:"descripcion"`
	Categoria   string          `json:"categoria" validate:"required"`
	Precio      decimal.Decimal `json:"precio"    validate:"required,gt=0"`
	Canal       string          `json:"canal"     validate:"required,oneof=bar cocina"`
}

type ActualizarPlatoRequest struct {
	Nombre      *string          `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	Categoria   *string          `json:"categoria"`
	Precio      *decimal.Decimal `json:"precio" validate:"omitempty,gt=0"`
	Canal       *string          `json:"canal"  validate:"omitempty,oneof=bar cocina"`
}

// LineaRecetaRequest is one bill-of-materials entry for a plate.
type LineaRecetaRequest struct {
	IngredienteID     string          `json:"ingrediente_id"      validate:"required,uuid"`
	CantidadPorUnidad decimal.Decimal `json:"cantidad_por_unidad" validate:"required"`
}

// DefinirRecetaRequest replaces a plate's recipe wholesale.
type DefinirRecetaRequest struct {
	Lineas []LineaRecetaRequest `json:"lineas" validate:"required,min=1,dive"`
}

type LineaRecetaResponse struct {
	IngredienteID     string          `json:"ingrediente_id"`
	Ingrediente       string          `json:"ingrediente"`
	Unidad            string          `json:"unidad"`
	CantidadPorUnidad decimal.Decimal `json:"cantidad_por_unidad"`
}

type PlatoResponse struct {
	ID          string                `json:"id"`
	Nombre      string                `json:"nombre"`
	Descripcion *string               `json:"descripcion,omitempty"`
	Categoria   string                `json:"categoria"`
	Precio      decimal.Decimal       `json:"precio"`
	Canal       string                `json:"canal"`
	Activo      bool                  `json:"activo"`
	Receta      []LineaRecetaResponse `json:"receta,omitempty"`
}

// PlatoFilter is bound from the query string of GET /v1/carta.
type PlatoFilter struct {
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	Canal     string `form:"canal"`
	Activo    string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PlatoListResponse struct {
	Data  []PlatoResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ConsultaPrecioResponse is the cached, unauthenticated price-check payload.
type ConsultaPrecioResponse struct {
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	Categoria string          `json:"categoria"`
	Canal     string          `json:"canal"`
}
