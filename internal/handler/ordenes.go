package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"comandapos/internal/dto"
	"comandapos/internal/middleware"
	"comandapos/internal/model"
	"comandapos/internal/service"
)

type OrdenesHandler struct {
	ordenes service.OrdenService
}

func NewOrdenesHandler(ordenes service.OrdenService) *OrdenesHandler {
	return &OrdenesHandler{ordenes: ordenes}
}

// Crear godoc
// @Summary      Crear una orden
// @Description  Abre una orden para una mesa con sus items iniciales. El precio
// @Description  de cada item se congela al precio vigente del plato.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        orden  body      dto.CrearOrdenRequest  true  "Orden"
// @Success      201    {object}  dto.OrdenResponse
// @Failure      422    {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/ordenes [post]
func (h *OrdenesHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	meseroID, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.ordenes.CrearOrden(c.Request.Context(), req, meseroID, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdenesHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.ordenes.ObtenerOrden(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Listar(c *gin.Context) {
	var filter dto.OrdenFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.ordenes.ListarOrdenes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Despachar godoc
// @Summary      Marcar un item como despachado
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la orden"
// @Param        item  body  dto.DespacharItemRequest  true  "Item y canal"
// @Success      204
// @Failure      409  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/ordenes/{id}/despachar [post]
func (h *OrdenesHandler) Despachar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.DespacharItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	err := h.ordenes.MarcarDespachado(c.Request.Context(), id, req.Indice, req.Canal, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TableroCocina lista los items de cocina pendientes de despacho.
func (h *OrdenesHandler) TableroCocina(c *gin.Context) {
	h.tablero(c, model.CanalCocina)
}

// TableroBar lista los items de bar pendientes de despacho.
func (h *OrdenesHandler) TableroBar(c *gin.Context) {
	h.tablero(c, model.CanalBar)
}

func (h *OrdenesHandler) tablero(c *gin.Context, canal string) {
	resp, err := h.ordenes.Tablero(c.Request.Context(), canal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
