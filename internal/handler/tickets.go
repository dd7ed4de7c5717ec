package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comandapos/internal/dto"
	"comandapos/internal/middleware"
	"comandapos/internal/service"
)

type TicketsHandler struct {
	tickets service.TicketService
}

func NewTicketsHandler(tickets service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// EnviarACobro godoc
// @Summary      Enviar una orden a cobro
// @Description  Congela los items activos de la orden en un ticket numerado y
// @Description  pasa la orden a en_cobro. Rechaza órdenes con anulaciones sin
// @Description  resolver.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        orden  body      dto.EnviarACobroRequest  true  "Orden a cobrar"
// @Success      201    {object}  dto.TicketResponse
// @Failure      409    {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/tickets [post]
func (h *TicketsHandler) EnviarACobro(c *gin.Context) {
	var req dto.EnviarACobroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.EnviarACobro(c.Request.Context(), req, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmarPago godoc
// @Summary      Confirmar el pago de un ticket
// @Description  Asienta los pagos, marca ticket y orden como pagados y descuenta
// @Description  el inventario según las recetas. Un segundo intento sobre el
// @Description  mismo ticket responde 409 sin duplicar el descuento.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id     path      string                   true  "ID del ticket"
// @Param        pagos  body      dto.ConfirmarPagoRequest true  "Pagos"
// @Success      200    {object}  dto.TicketResponse
// @Failure      409    {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/tickets/{id}/pagar [post]
func (h *TicketsHandler) ConfirmarPago(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ConfirmarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.ConfirmarPago(c.Request.Context(), id, req, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TicketsHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.tickets.ObtenerTicket(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TicketsHandler) Listar(c *gin.Context) {
	var filter dto.TicketFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.tickets.ListarTickets(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
