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

// TicketNotifier despacha el trabajo posterior al cobro (PDF del ticket y
// correo opcional al cliente). Nil en tests unitarios.
type TicketNotifier interface {
	EncolarTicketPDF(ctx context.Context, ticketID uuid.UUID, clienteEmail *string)
}

type TicketService interface {
	// EnviarACobro congela la orden en un ticket con los items activos y pasa
	// la orden a en_cobro. Reenviar una orden ya en cobro devuelve su ticket
	// pendiente en lugar de fallar.
	EnviarACobro(ctx context.Context, req dto.EnviarACobroRequest, usuario string) (*dto.TicketResponse, error)
	// ConfirmarPago asienta los pagos, marca ticket y orden como pagados y
	// descuenta el inventario, todo en una transacción.
	ConfirmarPago(ctx context.Context, ticketID uuid.UUID, req dto.ConfirmarPagoRequest, usuario string) (*dto.TicketResponse, error)
	ObtenerTicket(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error)
	ListarTickets(ctx context.Context, filter dto.TicketFilter) (*dto.TicketListResponse, error)
}

type ticketService struct {
	tickets    repository.TicketRepository
	ordenes    repository.OrdenRepository
	secuencias SecuenciaService
	inventario InventarioService
	auditoria  repository.AuditoriaRepository
	notifier   TicketNotifier
}

func NewTicketService(
	tickets repository.TicketRepository,
	ordenes repository.OrdenRepository,
	secuencias SecuenciaService,
	inventario InventarioService,
	auditoria repository.AuditoriaRepository,
	notifier TicketNotifier,
) TicketService {
	return &ticketService{
		tickets:    tickets,
		ordenes:    ordenes,
		secuencias: secuencias,
		inventario: inventario,
		auditoria:  auditoria,
		notifier:   notifier,
	}
}

func (s *ticketService) EnviarACobro(ctx context.Context, req dto.EnviarACobroRequest, usuario string) (*dto.TicketResponse, error) {
	ordenID, err := uuid.Parse(req.OrdenID)
	if err != nil {
		return nil, fmt.Errorf("%w: orden_id inválido", ErrValidacion)
	}

	var (
		ticket  *model.Ticket
		reenvio bool
	)
	for intento := 1; ; intento++ {
		err = runTx(ctx, s.tickets.DB(), func(tx *gorm.DB) error {
			orden, err := s.ordenes.FindByIDTx(tx, ordenID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNoEncontrado
				}
				return err
			}
			if orden.Estado == model.OrdenEnCobro {
				// Reenvío: el ticket ya existe y sigue sin pagar, se devuelve
				// el mismo en lugar de fallar.
				existente, err := s.tickets.FindPendienteByOrdenTx(tx, orden.ID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: la orden está %s", ErrEstadoInvalido, orden.Estado)
					}
					return err
				}
				ticket = existente
				reenvio = true
				return nil
			}
			if orden.Estado != model.OrdenPendiente {
				return fmt.Errorf("%w: la orden está %s", ErrEstadoInvalido, orden.Estado)
			}
			if orden.TieneAnulacionPendiente() {
				return fmt.Errorf("%w: la orden tiene anulaciones sin resolver", ErrEstadoInvalido)
			}
			activos := orden.ItemsActivos()
			if len(activos) == 0 {
				return fmt.Errorf("%w: la orden no tiene items activos", ErrValidacion)
			}

			numero, err := s.secuencias.ProximoNumeroTicket(tx)
			if err != nil {
				return err
			}
			orden.RecomputeTotal()

			ticket = &model.Ticket{
				NumeroTicket: numero,
				OrdenID:      orden.ID,
				Total:        orden.Total,
				Estado:       model.TicketPendientePago,
			}
			for _, item := range activos {
				ticket.Items = append(ticket.Items, model.TicketItem{
					OrdenItemIndice: item.Indice,
					PlatoID:         item.PlatoID,
					Nombre:          item.Nombre,
					Cantidad:        item.Cantidad,
					PrecioUnitario:  item.PrecioUnitario,
					Subtotal:        item.LineaTotal(),
				})
			}
			if err := s.tickets.CreateTx(tx, ticket); err != nil {
				return err
			}

			orden.Estado = model.OrdenEnCobro
			return s.ordenes.SaveTx(tx, orden)
		})
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && intento < maxIntentosCorrelativo {
			log.Warn().Int("intento", intento).Msg("colisión de número de ticket, reintentando")
			continue
		}
		return nil, err
	}

	if !reenvio {
		registrarAuditoria(ctx, s.auditoria, usuario,
			fmt.Sprintf("envió a cobro la orden %s como ticket #%d", req.OrdenID, ticket.NumeroTicket))
	}

	completo, err := s.tickets.FindByID(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	resp := ticketToResponse(completo, nil)
	return &resp, nil
}

func (s *ticketService) ConfirmarPago(ctx context.Context, ticketID uuid.UUID, req dto.ConfirmarPagoRequest, usuario string) (*dto.TicketResponse, error) {
	var (
		ticket    *model.Ticket
		sinReceta []string
	)
	err := runTx(ctx, s.tickets.DB(), func(tx *gorm.DB) error {
		var err error
		ticket, err = s.tickets.FindByIDTx(tx, ticketID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if ticket.Estado == model.TicketPagado {
			return fmt.Errorf("%w: el ticket ya fue pagado", ErrYaProcesada)
		}

		orden, err := s.ordenes.FindByIDTx(tx, ticket.OrdenID)
		if err != nil {
			return err
		}
		if orden.Estado != model.OrdenEnCobro {
			return fmt.Errorf("%w: la orden está %s", ErrEstadoInvalido, orden.Estado)
		}

		vuelto, err := validarPagos(ticket.Total, req.Pagos)
		if err != nil {
			return err
		}

		ahora := nowUTC()
		for _, p := range req.Pagos {
			ticket.Pagos = append(ticket.Pagos, model.TicketPago{
				Metodo:   p.Metodo,
				Monto:    p.Monto,
				Recibido: p.Recibido,
			})
		}
		ticket.Estado = model.TicketPagado
		ticket.FechaPago = &ahora
		ticket.Vuelto = vuelto
		if err := s.tickets.SaveTx(tx, ticket); err != nil {
			return err
		}

		orden.Estado = model.OrdenPagada
		orden.FechaPago = &ahora
		if err := s.ordenes.SaveTx(tx, orden); err != nil {
			return err
		}

		for idx := range orden.Items {
			item := &orden.Items[idx]
			if item.Anulado {
				continue
			}
			sr, err := s.inventario.DescontarItemTx(tx, orden.ID, item, usuario)
			if err != nil {
				return err
			}
			if sr {
				sinReceta = append(sinReceta, item.Nombre)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	registrarAuditoria(ctx, s.auditoria, usuario,
		fmt.Sprintf("cobró el ticket #%d por %s", ticket.NumeroTicket, ticket.Total.StringFixed(2)))
	if s.notifier != nil {
		s.notifier.EncolarTicketPDF(ctx, ticket.ID, req.ClienteEmail)
	}

	completo, err := s.tickets.FindByID(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	resp := ticketToResponse(completo, sinReceta)
	return &resp, nil
}

// validarPagos comprueba que los pagos cubran exactamente el total y devuelve
// el vuelto en efectivo.
func validarPagos(total decimal.Decimal, pagos []dto.PagoRequest) (decimal.Decimal, error) {
	suma := decimal.Zero
	vuelto := decimal.Zero
	for _, p := range pagos {
		if !p.Monto.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: cada pago debe ser positivo", ErrValidacion)
		}
		suma = suma.Add(p.Monto)
		if p.Metodo == model.PagoEfectivo {
			if p.Recibido == nil {
				return decimal.Zero, fmt.Errorf("%w: el pago en efectivo requiere el monto recibido", ErrValidacion)
			}
			if p.Recibido.LessThan(p.Monto) {
				return decimal.Zero, fmt.Errorf("%w: lo recibido no cubre el pago en efectivo", ErrValidacion)
			}
			vuelto = vuelto.Add(p.Recibido.Sub(p.Monto))
		}
	}
	if !suma.Equal(total) {
		return decimal.Zero, fmt.Errorf("%w: los pagos suman %s y el ticket es de %s",
			ErrValidacion, suma.StringFixed(2), total.StringFixed(2))
	}
	return vuelto, nil
}

func (s *ticketService) ObtenerTicket(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := ticketToResponse(ticket, nil)
	return &resp, nil
}

func (s *ticketService) ListarTickets(ctx context.Context, filter dto.TicketFilter) (*dto.TicketListResponse, error) {
	tickets, total, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, ticketToResponse(&tickets[i], nil))
	}
	return &dto.TicketListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ticketToResponse(t *model.Ticket, sinReceta []string) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:           t.ID.String(),
		NumeroTicket: t.NumeroTicket,
		OrdenID:      t.OrdenID.String(),
		Estado:       t.Estado,
		Total:        t.Total,
		Vuelto:       t.Vuelto,
		SinReceta:    sinReceta,
		CreatedAt:    t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if t.Orden != nil {
		resp.NumeroOrden = t.Orden.NumeroOrden
	}
	if t.FechaPago != nil {
		fp := t.FechaPago.Format("2006-01-02 15:04:05")
		resp.FechaPago = &fp
	}
	for _, item := range t.Items {
		resp.Items = append(resp.Items, dto.ItemTicketResponse{
			Nombre:         item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	for _, pago := range t.Pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoResponse{
			Metodo:   pago.Metodo,
			Monto:    pago.Monto,
			Recibido: pago.Recibido,
		})
	}
	return resp
}
