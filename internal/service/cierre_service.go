package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"comandapos/internal/dto"
	"comandapos/internal/model"
	"comandapos/internal/repository"
)

// Umbrales de clasificación del desvío del arqueo, en porcentaje sobre lo
// esperado.
var (
	umbralAdvertencia = decimal.NewFromInt(1)
	umbralCritico     = decimal.NewFromInt(5)
)

const (
	DesvioNormal      = "normal"
	DesvioAdvertencia = "advertencia"
	DesvioCritico     = "critico"
)

type CierreService interface {
	// CerrarDia asienta el cierre de una fecha contra la declaración a ciegas
	// del cajero. Un desvío crítico exige observaciones.
	CerrarDia(ctx context.Context, req dto.CerrarDiaRequest, usuarioID uuid.UUID, usuario string) (*dto.CierreResponse, error)
	ListarCierres(ctx context.Context, limit int) ([]dto.CierreResponse, error)
}

type cierreService struct {
	cierres    repository.CierreRepository
	tickets    repository.TicketRepository
	secuencias SecuenciaService
	auditoria  repository.AuditoriaRepository
}

func NewCierreService(
	cierres repository.CierreRepository,
	tickets repository.TicketRepository,
	secuencias SecuenciaService,
	auditoria repository.AuditoriaRepository,
) CierreService {
	return &cierreService{cierres: cierres, tickets: tickets, secuencias: secuencias, auditoria: auditoria}
}

func (s *cierreService) CerrarDia(ctx context.Context, req dto.CerrarDiaRequest, usuarioID uuid.UUID, usuario string) (*dto.CierreResponse, error) {
	porMetodo, err := s.tickets.SumPagosPorMetodo(ctx, req.Fecha)
	if err != nil {
		return nil, err
	}
	esperado := dto.MontosPorMetodo{
		Efectivo:      porMetodo[model.PagoEfectivo],
		Debito:        porMetodo[model.PagoDebito],
		Credito:       porMetodo[model.PagoCredito],
		Transferencia: porMetodo[model.PagoTransferencia],
	}
	esperado.Total = esperado.Efectivo.Add(esperado.Debito).Add(esperado.Credito).Add(esperado.Transferencia)

	declarado := req.Declaracion.Efectivo.
		Add(req.Declaracion.Debito).
		Add(req.Declaracion.Credito).
		Add(req.Declaracion.Transferencia)
	desvio := declarado.Sub(esperado.Total)
	pct, clasificacion := clasificarDesvio(esperado.Total, desvio)

	if clasificacion == DesvioCritico && (req.Observaciones == nil || *req.Observaciones == "") {
		return nil, fmt.Errorf("%w: un desvío crítico requiere observaciones", ErrValidacion)
	}

	var cierre *model.CierreCaja
	for intento := 1; ; intento++ {
		err = runTx(ctx, s.cierres.DB(), func(tx *gorm.DB) error {
			existe, err := s.cierres.ExisteParaFechaTx(tx, req.Fecha)
			if err != nil {
				return err
			}
			if existe {
				return fmt.Errorf("%w: la fecha %s ya fue cerrada", ErrYaProcesada, req.Fecha)
			}
			numero, err := s.secuencias.ProximoNumeroCierre(tx)
			if err != nil {
				return err
			}
			cierre = &model.CierreCaja{
				NumeroCierre:          numero,
				Fecha:                 req.Fecha,
				UsuarioID:             usuarioID,
				EsperadoEfectivo:      esperado.Efectivo,
				EsperadoDebito:        esperado.Debito,
				EsperadoCredito:       esperado.Credito,
				EsperadoTransferencia: esperado.Transferencia,
				EsperadoTotal:         esperado.Total,
				DeclaradoTotal:        declarado,
				Desvio:                desvio,
				DesvioPct:             pct,
				ClasificacionDesvio:   clasificacion,
				Observaciones:         req.Observaciones,
			}
			return s.cierres.CreateTx(tx, cierre)
		})
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && intento < maxIntentosCorrelativo {
			log.Warn().Int("intento", intento).Msg("colisión de número de cierre, reintentando")
			continue
		}
		return nil, err
	}

	registrarAuditoria(ctx, s.auditoria, usuario,
		fmt.Sprintf("cerró la caja del %s (cierre #%d, desvío %s)", req.Fecha, cierre.NumeroCierre, clasificacion))

	resp := cierreToResponse(cierre)
	return &resp, nil
}

// clasificarDesvio devuelve el desvío porcentual absoluto y su clasificación.
// Con esperado cero, cualquier declaración distinta de cero es crítica.
func clasificarDesvio(esperado, desvio decimal.Decimal) (decimal.Decimal, string) {
	if esperado.IsZero() {
		if desvio.IsZero() {
			return decimal.Zero, DesvioNormal
		}
		return decimal.NewFromInt(100), DesvioCritico
	}
	pct := desvio.Abs().Div(esperado.Abs()).Mul(decimal.NewFromInt(100)).Round(2)
	switch {
	case pct.LessThanOrEqual(umbralAdvertencia):
		return pct, DesvioNormal
	case pct.LessThanOrEqual(umbralCritico):
		return pct, DesvioAdvertencia
	default:
		return pct, DesvioCritico
	}
}

func (s *cierreService) ListarCierres(ctx context.Context, limit int) ([]dto.CierreResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 30
	}
	cierres, err := s.cierres.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CierreResponse, 0, len(cierres))
	for i := range cierres {
		out = append(out, cierreToResponse(&cierres[i]))
	}
	return out, nil
}

func cierreToResponse(c *model.CierreCaja) dto.CierreResponse {
	return dto.CierreResponse{
		ID:           c.ID.String(),
		NumeroCierre: c.NumeroCierre,
		Fecha:        c.Fecha,
		Esperado: dto.MontosPorMetodo{
			Efectivo:      c.EsperadoEfectivo,
			Debito:        c.EsperadoDebito,
			Credito:       c.EsperadoCredito,
			Transferencia: c.EsperadoTransferencia,
			Total:         c.EsperadoTotal,
		},
		Declarado: c.DeclaradoTotal,
		Desvio: dto.DesvioResponse{
			Monto:         c.Desvio,
			Porcentaje:    c.DesvioPct,
			Clasificacion: c.ClasificacionDesvio,
		},
		Observaciones: c.Observaciones,
		CreatedAt:     c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
