package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comandapos/internal/dto"
	"comandapos/internal/middleware"
	"comandapos/internal/service"
)

type AnulacionesHandler struct {
	anulaciones service.AnulacionService
}

func NewAnulacionesHandler(anulaciones service.AnulacionService) *AnulacionesHandler {
	return &AnulacionesHandler{anulaciones: anulaciones}
}

// SolicitarItem abre una solicitud de anulación sobre un item de una orden
// pendiente. El item queda bloqueado hasta que un administrador resuelva.
func (h *AnulacionesHandler) SolicitarItem(c *gin.Context) {
	var req dto.SolicitarAnulacionItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.anulaciones.SolicitarItem(c.Request.Context(), req, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SolicitarOrden abre una solicitud de anulación de la orden completa.
func (h *AnulacionesHandler) SolicitarOrden(c *gin.Context) {
	var req dto.SolicitarAnulacionOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.anulaciones.SolicitarOrdenCompleta(c.Request.Context(), req, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ResolverItem godoc
// @Summary      Resolver una solicitud de anulación de item
// @Description  La aprobación anula el item, repone el inventario consumido y
// @Description  recalcula el total de la orden en una sola transacción.
// @Tags         anulaciones
// @Accept       json
// @Produce      json
// @Param        id        path  string                       true  "ID de la solicitud"
// @Param        decision  body  dto.ResolverAnulacionRequest true  "Decisión"
// @Success      204
// @Failure      409  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/anulaciones/items/{id}/resolver [post]
func (h *AnulacionesHandler) ResolverItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ResolverAnulacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.anulaciones.ResolverItem(c.Request.Context(), id, req, claims.Username); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResolverOrden resuelve una solicitud de anulación de orden completa.
func (h *AnulacionesHandler) ResolverOrden(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ResolverAnulacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.anulaciones.ResolverOrdenCompleta(c.Request.Context(), id, req, claims.Username); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarcarAvisoVisto confirma la lectura de un aviso de rechazo.
func (h *AnulacionesHandler) MarcarAvisoVisto(c *gin.Context) {
	var req dto.MarcarAvisoVistoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.anulaciones.MarcarAvisoVisto(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarPendientes lista las solicitudes a la espera de resolución.
func (h *AnulacionesHandler) ListarPendientes(c *gin.Context) {
	resp, err := h.anulaciones.ListarPendientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
