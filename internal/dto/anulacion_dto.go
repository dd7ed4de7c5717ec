package dto

type SolicitarAnulacionItemRequest struct {
	OrdenID string `json:"orden_id" validate:"required,uuid"`
	Indice  int    `json:"indice"   validate:"min=0"`
	Motivo  string `json:"motivo"   validate:"required,min=5"`
}

type SolicitarAnulacionOrdenRequest struct {
	OrdenID string `json:"orden_id" validate:"required,uuid"`
	Motivo  string `json:"motivo"   validate:"required,min=5"`
}

// ResolverAnulacionRequest decides a pending request. MotivoAdmin is required
// when the decision is rechazada so the requester sees why.
type ResolverAnulacionRequest struct {
	Decision    string `json:"decision"     validate:"required,oneof=aprobada rechazada"`
	MotivoAdmin string `json:"motivo_admin" validate:"omitempty,min=3"`
}

type MarcarAvisoVistoRequest struct {
	OrdenID string `json:"orden_id" validate:"required,uuid"`
	// Indice identifies the item; nil marks the order-level notice instead.
	Indice *int `json:"indice" validate:"omitempty,min=0"`
}

type SolicitudAnulacionResponse struct {
	ID              string  `json:"id"`
	OrdenID         string  `json:"orden_id"`
	NumeroOrden     int     `json:"numero_orden,omitempty"`
	ItemIndice      *int    `json:"item_indice,omitempty"`
	ItemNombre      string  `json:"item_nombre,omitempty"`
	Motivo          string  `json:"motivo"`
	UsuarioSolicita string  `json:"usuario_solicita"`
	Estado          string  `json:"estado"`
	UsuarioProcesa  *string `json:"usuario_procesa,omitempty"`
	MotivoAdmin     *string `json:"motivo_admin,omitempty"`
	CreatedAt       string  `json:"created_at"`
}
