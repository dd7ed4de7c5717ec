package dto

import "github.com/shopspring/decimal"

type CrearIngredienteRequest struct {
	Descripcion string          `json:"descripcion"  validate:"required"`
	Cantidad    decimal.Decimal `json:"cantidad"     validate:"min=0"`
	Unidad      string          `json:"unidad"       validate:"required"`
	StockMinimo decimal.Decimal `json:"stock_minimo" validate:"min=0"`
}

type ActualizarIngredienteRequest struct {
	Descripcion *string          `json:"descripcion"`
	Unidad      *string          `json:"unidad"`
	StockMinimo *decimal.Decimal `json:"stock_minimo"`
}

// AjusteManualRequest posts a manual entrada/salida movement.
type AjusteManualRequest struct {
	IngredienteID string          `json:"ingrediente_id" validate:"required,uuid"`
	Tipo          string          `json:"tipo"           validate:"required,oneof=entrada salida"`
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"required"`
	Motivo        string          `json:"motivo"         validate:"required,min=3"`
}

type IngredienteResponse struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Unidad      string          `json:"unidad"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
	Activo      bool            `json:"activo"`
}

type MovimientoResponse struct {
	ID            string          `json:"id"`
	IngredienteID string          `json:"ingrediente_id"`
	Ingrediente   string          `json:"ingrediente,omitempty"`
	Tipo          string          `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	StockAnterior decimal.Decimal `json:"stock_anterior"`
	StockNuevo    decimal.Decimal `json:"stock_nuevo"`
	Motivo        string          `json:"motivo"`
	Usuario       string          `json:"usuario"`
	OrdenID       *string         `json:"orden_id,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// MovimientoFilter is bound from the query string of GET /v1/inventario/movimientos.
type MovimientoFilter struct {
	IngredienteID string `form:"ingrediente_id"`
	OrdenID       string `form:"orden_id"`
	Tipo          string `form:"tipo"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type AlertaStockResponse struct {
	IngredienteID string          `json:"ingrediente_id"`
	Descripcion   string          `json:"descripcion"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	Unidad        string          `json:"unidad"`
}
