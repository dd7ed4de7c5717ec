package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comandapos/internal/service"
)

type ReportesHandler struct {
	reportes service.ReporteService
}

func NewReportesHandler(reportes service.ReporteService) *ReportesHandler {
	return &ReportesHandler{reportes: reportes}
}

// ResumenDiario devuelve la proyección de ventas de la fecha pedida (query
// param fecha=YYYY-MM-DD, hoy por defecto).
func (h *ReportesHandler) ResumenDiario(c *gin.Context) {
	resp, err := h.reportes.ResumenDiario(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
