package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comandapos/internal/dto"
	"comandapos/internal/service"
)

type CartaHandler struct {
	carta service.CartaService
}

func NewCartaHandler(carta service.CartaService) *CartaHandler {
	return &CartaHandler{carta: carta}
}

func (h *CartaHandler) CrearPlato(c *gin.Context) {
	var req dto.CrearPlatoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.carta.CrearPlato(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CartaHandler) ActualizarPlato(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPlatoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.carta.ActualizarPlato(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartaHandler) DesactivarPlato(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.carta.DesactivarPlato(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartaHandler) ObtenerPlato(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.carta.ObtenerPlato(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartaHandler) ListarPlatos(c *gin.Context) {
	var filter dto.PlatoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.carta.ListarPlatos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DefinirReceta godoc
// @Summary      Definir la receta de un plato
// @Description  Reemplaza la receta completa. Las ventas posteriores descuentan
// @Description  inventario según estas líneas.
// @Tags         carta
// @Accept       json
// @Produce      json
// @Param        id      path      string                   true  "ID del plato"
// @Param        receta  body      dto.DefinirRecetaRequest true  "Líneas de la receta"
// @Success      200     {object}  dto.PlatoResponse
// @Failure      422     {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/carta/{id}/receta [put]
func (h *CartaHandler) DefinirReceta(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.DefinirRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.carta.DefinirReceta(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConsultaPrecio resuelve el precio vigente de un plato, con caché en Redis.
// Es el único endpoint de la carta abierto sin autenticación.
func (h *CartaHandler) ConsultaPrecio(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.carta.ConsultaPrecio(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
