package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comandapos/internal/dto"
	"comandapos/internal/middleware"
	"comandapos/internal/service"
)

type InventarioHandler struct {
	inventario service.InventarioService
}

func NewInventarioHandler(inventario service.InventarioService) *InventarioHandler {
	return &InventarioHandler{inventario: inventario}
}

func (h *InventarioHandler) CrearIngrediente(c *gin.Context) {
	var req dto.CrearIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.inventario.CrearIngrediente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) ActualizarIngrediente(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.inventario.ActualizarIngrediente(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) DesactivarIngrediente(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.inventario.DesactivarIngrediente(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventarioHandler) ListarIngredientes(c *gin.Context) {
	resp, err := h.inventario.ListarIngredientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarAjuste godoc
// @Summary      Registrar un ajuste manual de inventario
// @Description  Asienta una entrada (compra, corrección) o salida (merma,
// @Description  rotura) fuera del circuito de ventas.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        ajuste  body      dto.AjusteManualRequest  true  "Ajuste"
// @Success      201     {object}  dto.MovimientoResponse
// @Failure      422     {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/inventario/ajustes [post]
func (h *InventarioHandler) RegistrarAjuste(c *gin.Context) {
	var req dto.AjusteManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.inventario.RegistrarAjuste(c.Request.Context(), req, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.inventario.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas lista los ingredientes en o por debajo de su stock mínimo.
func (h *InventarioHandler) Alertas(c *gin.Context) {
	resp, err := h.inventario.ObtenerAlertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
