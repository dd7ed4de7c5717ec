package service

import (
	"context"
	"time"

	"comandapos/internal/dto"
	"comandapos/internal/model"
	"comandapos/internal/repository"
)

type ReporteService interface {
	// ResumenDiario arma la proyección de ventas de una fecha (YYYY-MM-DD);
	// con fecha vacía usa el día de hoy.
	ResumenDiario(ctx context.Context, fecha string) (*dto.ResumenDiarioResponse, error)
}

type reporteService struct {
	reportes repository.ReporteRepository
	tickets  repository.TicketRepository
}

func NewReporteService(reportes repository.ReporteRepository, tickets repository.TicketRepository) ReporteService {
	return &reporteService{reportes: reportes, tickets: tickets}
}

func (s *reporteService) ResumenDiario(ctx context.Context, fecha string) (*dto.ResumenDiarioResponse, error) {
	if fecha == "" {
		fecha = time.Now().Format("2006-01-02")
	}

	cantidad, total, err := s.reportes.TotalesDia(ctx, fecha)
	if err != nil {
		return nil, err
	}
	porMetodo, err := s.tickets.SumPagosPorMetodo(ctx, fecha)
	if err != nil {
		return nil, err
	}
	porMesero, err := s.reportes.VentasPorMesero(ctx, fecha)
	if err != nil {
		return nil, err
	}
	porPlato, err := s.reportes.VentasPorPlato(ctx, fecha)
	if err != nil {
		return nil, err
	}
	anulados, err := s.reportes.ItemsAnulados(ctx, fecha)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumenDiarioResponse{
		Fecha:   fecha,
		Tickets: cantidad,
		Total:   total,
		PorMetodo: dto.MontosPorMetodo{
			Efectivo:      porMetodo[model.PagoEfectivo],
			Debito:        porMetodo[model.PagoDebito],
			Credito:       porMetodo[model.PagoCredito],
			Transferencia: porMetodo[model.PagoTransferencia],
		},
		ItemsAnulados: anulados,
	}
	resp.PorMetodo.Total = resp.PorMetodo.Efectivo.
		Add(resp.PorMetodo.Debito).
		Add(resp.PorMetodo.Credito).
		Add(resp.PorMetodo.Transferencia)

	for _, f := range porMesero {
		resp.PorMesero = append(resp.PorMesero, dto.VentaPorMesero{
			MeseroID: f.MeseroID,
			Mesero:   f.Mesero,
			Tickets:  f.Tickets,
			Total:    f.Total,
		})
	}
	for _, f := range porPlato {
		resp.PorPlato = append(resp.PorPlato, dto.VentaPorPlato{
			PlatoID:  f.PlatoID,
			Nombre:   f.Nombre,
			Cantidad: f.Cantidad,
			Total:    f.Total,
		})
	}
	return resp, nil
}
