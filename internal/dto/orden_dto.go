package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type ItemOrdenRequest struct {
	PlatoID     string          `json:"plato_id"    validate:"required,uuid"`
	Cantidad    int             `json:"cantidad"    validate:"required,min=1"`
	Descuento   decimal.Decimal `json:"descuento"   validate:"min=0"`
	Comentarios *string         `json:"comentarios"`
}

type CrearOrdenRequest struct {
	MesaID string             `json:"mesa_id" validate:"required,uuid"`
	Items  []ItemOrdenRequest `json:"items"   validate:"required,min=1,dive"`
}

// DespacharItemRequest marks one item as prepared/served by kitchen or bar.
type DespacharItemRequest struct {
	Indice int    `json:"indice" validate:"min=0"`
	Canal  string `json:"canal"  validate:"required,oneof=bar cocina"`
}

// OrdenFilter is bound from the query string of GET /v1/ordenes.
type OrdenFilter struct {
	Fecha  string `form:"fecha"`                     // YYYY-MM-DD; empty = today
	Estado string `form:"estado,default=pendiente"`  // pendiente | en_cobro | pagada | anulada | all
	MesaID string `form:"mesa_id"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ItemOrdenResponse struct {
	Indice             int             `json:"indice"`
	PlatoID            string          `json:"plato_id"`
	Nombre             string          `json:"nombre"`
	Cantidad           int             `json:"cantidad"`
	PrecioUnitario     decimal.Decimal `json:"precio_unitario"`
	Descuento          decimal.Decimal `json:"descuento"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Comentarios        *string         `json:"comentarios,omitempty"`
	Anulado            bool            `json:"anulado"`
	EnProcesoAnulacion bool            `json:"en_proceso_anulacion"`
	DespachadoBar      bool            `json:"despachado_bar"`
	DespachadoCocina   bool            `json:"despachado_cocina"`
	AvisoRechazo       *string         `json:"aviso_rechazo,omitempty"`
}

type OrdenResponse struct {
	ID          string              `json:"id"`
	NumeroOrden int                 `json:"numero_orden"`
	MesaID      string              `json:"mesa_id"`
	MesaNumero  int                 `json:"mesa_numero,omitempty"`
	MeseroID    string              `json:"mesero_id"`
	Mesero      string              `json:"mesero,omitempty"`
	Estado      string              `json:"estado"`
	Total       decimal.Decimal     `json:"total"`
	Items       []ItemOrdenResponse `json:"items"`
	AnulacionCompletaPendiente bool `json:"anulacion_completa_pendiente"`
	CreatedAt   string              `json:"created_at"`
	FechaPago   *string             `json:"fecha_pago,omitempty"`
}

type OrdenListResponse struct {
	Data  []OrdenResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ItemTablero is one row of the kitchen/bar dispatch board.
type ItemTablero struct {
	OrdenID     string  `json:"orden_id"`
	NumeroOrden int     `json:"numero_orden"`
	MesaNumero  int     `json:"mesa_numero"`
	Indice      int     `json:"indice"`
	Nombre      string  `json:"nombre"`
	Cantidad    int     `json:"cantidad"`
	Comentarios *string `json:"comentarios,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
