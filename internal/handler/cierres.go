package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"comandapos/internal/dto"
	"comandapos/internal/middleware"
	"comandapos/internal/service"
)

type CierresHandler struct {
	cierres service.CierreService
}

func NewCierresHandler(cierres service.CierreService) *CierresHandler {
	return &CierresHandler{cierres: cierres}
}

// CerrarDia godoc
// @Summary      Cerrar la caja de una fecha
// @Description  Recibe la declaración a ciegas del cajero, la contrasta con lo
// @Description  cobrado y clasifica el desvío. Cada fecha se cierra una sola vez.
// @Tags         cierres
// @Accept       json
// @Produce      json
// @Param        cierre  body      dto.CerrarDiaRequest  true  "Declaración"
// @Success      201     {object}  dto.CierreResponse
// @Failure      409     {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/cierres [post]
func (h *CierresHandler) CerrarDia(c *gin.Context) {
	var req dto.CerrarDiaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.cierres.CerrarDia(c.Request.Context(), req, usuarioID, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CierresHandler) Listar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	resp, err := h.cierres.ListarCierres(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
