package dto

type CrearMesaRequest struct {
	Numero      int    `json:"numero"    validate:"required,min=1"`
	Descripcion string `json:"descripcion"`
	Capacidad   int    `json:"capacidad" validate:"min=1"`
}

type ActualizarMesaRequest struct {
	Descripcion *string `json:"descripcion"`
	Capacidad   *int    `json:"capacidad" validate:"omitempty,min=1"`
}

type MesaResponse struct {
	ID          string `json:"id"`
	Numero      int    `json:"numero"`
	Descripcion string `json:"descripcion"`
	Capacidad   int    `json:"capacidad"`
	Activa      bool   `json:"activa"`
}
