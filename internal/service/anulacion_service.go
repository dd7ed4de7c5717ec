package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"comandapos/internal/dto"
	"comandapos/internal/model"
	"comandapos/internal/repository"
)

// AnulacionService gobierna el circuito de anulación en dos pasos: el mesero
// solicita, un administrador aprueba o rechaza. La aprobación anula el item (u
// orden), repone inventario y recalcula el total en una sola transacción.
type AnulacionService interface {
	SolicitarItem(ctx context.Context, req dto.SolicitarAnulacionItemRequest, usuario string) (*dto.SolicitudAnulacionResponse, error)
	SolicitarOrdenCompleta(ctx context.Context, req dto.SolicitarAnulacionOrdenRequest, usuario string) (*dto.SolicitudAnulacionResponse, error)
	ResolverItem(ctx context.Context, solicitudID uuid.UUID, req dto.ResolverAnulacionRequest, admin string) error
	ResolverOrdenCompleta(ctx context.Context, solicitudID uuid.UUID, req dto.ResolverAnulacionRequest, admin string) error
	MarcarAvisoVisto(ctx context.Context, req dto.MarcarAvisoVistoRequest) error
	ListarPendientes(ctx context.Context) ([]dto.SolicitudAnulacionResponse, error)
}

type anulacionService struct {
	solicitudes repository.AnulacionRepository
	ordenes     repository.OrdenRepository
	inventario  InventarioService
	auditoria   repository.AuditoriaRepository
}

func NewAnulacionService(
	solicitudes repository.AnulacionRepository,
	ordenes repository.OrdenRepository,
	inventario InventarioService,
	auditoria repository.AuditoriaRepository,
) AnulacionService {
	return &anulacionService{
		solicitudes: solicitudes,
		ordenes:     ordenes,
		inventario:  inventario,
		auditoria:   auditoria,
	}
}

func (s *anulacionService) SolicitarItem(ctx context.Context, req dto.SolicitarAnulacionItemRequest, usuario string) (*dto.SolicitudAnulacionResponse, error) {
	ordenID, err := uuid.Parse(req.OrdenID)
	if err != nil {
		return nil, fmt.Errorf("%w: orden_id inválido", ErrValidacion)
	}

	var sol *model.SolicitudAnulacionItem
	err = runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		orden, err := s.ordenes.FindByIDTx(tx, ordenID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if orden.Estado != model.OrdenPendiente {
			return fmt.Errorf("%w: solo se anulan items de órdenes pendientes (la orden está %s)", ErrEstadoInvalido, orden.Estado)
		}
		item := orden.ItemPorIndice(req.Indice)
		if item == nil {
			return ErrIndiceInvalido
		}
		if item.Anulado {
			return fmt.Errorf("%w: el item ya está anulado", ErrEstadoInvalido)
		}
		if item.EnProcesoAnulacion {
			return fmt.Errorf("%w: ya existe una solicitud para este item", ErrYaProcesada)
		}
		existe, err := s.solicitudes.ExisteItemPendienteTx(tx, ordenID, req.Indice)
		if err != nil {
			return err
		}
		if existe {
			return fmt.Errorf("%w: ya existe una solicitud para este item", ErrYaProcesada)
		}

		item.EnProcesoAnulacion = true
		if err := s.ordenes.SaveItemTx(tx, item); err != nil {
			return err
		}
		sol = &model.SolicitudAnulacionItem{
			OrdenID:         ordenID,
			ItemIndice:      req.Indice,
			Motivo:          req.Motivo,
			UsuarioSolicita: usuario,
			Estado:          model.SolicitudPendiente,
		}
		return s.solicitudes.CreateItemTx(tx, sol)
	})
	if err != nil {
		return nil, err
	}

	registrarAuditoria(ctx, s.auditoria, usuario,
		fmt.Sprintf("solicitó anular el item %d de la orden %s", req.Indice, req.OrdenID))
	resp := solicitudItemToResponse(sol, nil)
	return &resp, nil
}

func (s *anulacionService) SolicitarOrdenCompleta(ctx context.Context, req dto.SolicitarAnulacionOrdenRequest, usuario string) (*dto.SolicitudAnulacionResponse, error) {
	ordenID, err := uuid.Parse(req.OrdenID)
	if err != nil {
		return nil, fmt.Errorf("%w: orden_id inválido", ErrValidacion)
	}

	var sol *model.SolicitudAnulacionOrden
	err = runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		orden, err := s.ordenes.FindByIDTx(tx, ordenID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if orden.Estado != model.OrdenPendiente {
			return fmt.Errorf("%w: solo se anulan órdenes pendientes (está %s)", ErrEstadoInvalido, orden.Estado)
		}
		if orden.AnulacionCompletaPendiente {
			return fmt.Errorf("%w: ya existe una solicitud para esta orden", ErrYaProcesada)
		}

		orden.AnulacionCompletaPendiente = true
		if err := s.ordenes.SaveTx(tx, orden); err != nil {
			return err
		}
		sol = &model.SolicitudAnulacionOrden{
			OrdenID:         ordenID,
			Motivo:          req.Motivo,
			UsuarioSolicita: usuario,
			Estado:          model.SolicitudPendiente,
		}
		return s.solicitudes.CreateOrdenTx(tx, sol)
	})
	if err != nil {
		return nil, err
	}

	registrarAuditoria(ctx, s.auditoria, usuario,
		fmt.Sprintf("solicitó anular la orden %s completa", req.OrdenID))
	resp := solicitudOrdenToResponse(sol, nil)
	return &resp, nil
}

func (s *anulacionService) ResolverItem(ctx context.Context, solicitudID uuid.UUID, req dto.ResolverAnulacionRequest, admin string) error {
	if req.Decision == model.SolicitudRechazada && req.MotivoAdmin == "" {
		return fmt.Errorf("%w: el rechazo requiere motivo_admin", ErrValidacion)
	}

	var descripcion string
	err := runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		sol, err := s.solicitudes.FindItemTx(tx, solicitudID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if sol.Estado != model.SolicitudPendiente {
			return fmt.Errorf("%w: la solicitud ya fue %s", ErrYaProcesada, sol.Estado)
		}

		orden, err := s.ordenes.FindByIDTx(tx, sol.OrdenID)
		if err != nil {
			return err
		}
		item := orden.ItemPorIndice(sol.ItemIndice)
		if item == nil {
			return ErrIndiceInvalido
		}

		ahora := nowUTC()
		switch req.Decision {
		case model.SolicitudAprobada:
			if orden.EsTerminal() {
				return fmt.Errorf("%w: la orden ya está %s", ErrEstadoInvalido, orden.Estado)
			}
			item.Anular(sol.Motivo, admin, ahora)
			if err := s.inventario.ReponerItemTx(tx, orden.ID, item, admin); err != nil {
				return err
			}
			orden.RecomputeTotal()
			sol.Estado = model.SolicitudAprobada
			descripcion = fmt.Sprintf("aprobó la anulación del item %d de la orden #%d", sol.ItemIndice, orden.NumeroOrden)
		case model.SolicitudRechazada:
			item.RegistrarRechazo(req.MotivoAdmin)
			sol.Estado = model.SolicitudRechazada
			descripcion = fmt.Sprintf("rechazó la anulación del item %d de la orden #%d", sol.ItemIndice, orden.NumeroOrden)
		default:
			return fmt.Errorf("%w: decisión %q", ErrValidacion, req.Decision)
		}

		sol.UsuarioProcesa = &admin
		if req.MotivoAdmin != "" {
			sol.MotivoAdmin = &req.MotivoAdmin
		}
		sol.FechaProcesamiento = &ahora

		if err := s.ordenes.SaveTx(tx, orden); err != nil {
			return err
		}
		return s.solicitudes.SaveItemTx(tx, sol)
	})
	if err != nil {
		return err
	}

	registrarAuditoria(ctx, s.auditoria, admin, descripcion)
	return nil
}

func (s *anulacionService) ResolverOrdenCompleta(ctx context.Context, solicitudID uuid.UUID, req dto.ResolverAnulacionRequest, admin string) error {
	var descripcion string
	err := runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		sol, err := s.solicitudes.FindOrdenTx(tx, solicitudID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if sol.Estado != model.SolicitudPendiente {
			return fmt.Errorf("%w: la solicitud ya fue %s", ErrYaProcesada, sol.Estado)
		}

		orden, err := s.ordenes.FindByIDTx(tx, sol.OrdenID)
		if err != nil {
			return err
		}

		ahora := nowUTC()
		switch req.Decision {
		case model.SolicitudAprobada:
			if orden.EsTerminal() {
				return fmt.Errorf("%w: la orden ya está %s", ErrEstadoInvalido, orden.Estado)
			}
			for idx := range orden.Items {
				item := &orden.Items[idx]
				if item.Anulado {
					continue
				}
				item.Anular(sol.Motivo, admin, ahora)
				if err := s.inventario.ReponerItemTx(tx, orden.ID, item, admin); err != nil {
					return err
				}
			}
			orden.Estado = model.OrdenAnulada
			orden.AnulacionCompletaPendiente = false
			orden.RecomputeTotal()
			sol.Estado = model.SolicitudAprobada
			descripcion = fmt.Sprintf("aprobó la anulación completa de la orden #%d", orden.NumeroOrden)
		case model.SolicitudRechazada:
			if req.MotivoAdmin == "" {
				return fmt.Errorf("%w: el rechazo requiere motivo_admin", ErrValidacion)
			}
			orden.AnulacionCompletaPendiente = false
			orden.AvisoRechazo = &req.MotivoAdmin
			orden.AvisoRechazoVisto = false
			sol.Estado = model.SolicitudRechazada
			descripcion = fmt.Sprintf("rechazó la anulación completa de la orden #%d", orden.NumeroOrden)
		default:
			return fmt.Errorf("%w: decisión %q", ErrValidacion, req.Decision)
		}

		sol.UsuarioProcesa = &admin
		if req.MotivoAdmin != "" {
			sol.MotivoAdmin = &req.MotivoAdmin
		}
		sol.FechaProcesamiento = &ahora

		if err := s.ordenes.SaveTx(tx, orden); err != nil {
			return err
		}
		return s.solicitudes.SaveOrdenTx(tx, sol)
	})
	if err != nil {
		return err
	}

	registrarAuditoria(ctx, s.auditoria, admin, descripcion)
	return nil
}

func (s *anulacionService) MarcarAvisoVisto(ctx context.Context, req dto.MarcarAvisoVistoRequest) error {
	ordenID, err := uuid.Parse(req.OrdenID)
	if err != nil {
		return fmt.Errorf("%w: orden_id inválido", ErrValidacion)
	}
	return runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		orden, err := s.ordenes.FindByIDTx(tx, ordenID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if req.Indice == nil {
			orden.AvisoRechazoVisto = true
			return s.ordenes.SaveTx(tx, orden)
		}
		item := orden.ItemPorIndice(*req.Indice)
		if item == nil {
			return ErrIndiceInvalido
		}
		item.AvisoRechazoVisto = true
		return s.ordenes.SaveItemTx(tx, item)
	})
}

func (s *anulacionService) ListarPendientes(ctx context.Context) ([]dto.SolicitudAnulacionResponse, error) {
	items, err := s.solicitudes.ListItemsPendientes(ctx)
	if err != nil {
		return nil, err
	}
	ordenes, err := s.solicitudes.ListOrdenesPendientes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SolicitudAnulacionResponse, 0, len(items)+len(ordenes))
	for i := range items {
		out = append(out, solicitudItemToResponse(&items[i], items[i].Orden))
	}
	for i := range ordenes {
		out = append(out, solicitudOrdenToResponse(&ordenes[i], ordenes[i].Orden))
	}
	return out, nil
}

func solicitudItemToResponse(s *model.SolicitudAnulacionItem, orden *model.Orden) dto.SolicitudAnulacionResponse {
	indice := s.ItemIndice
	resp := dto.SolicitudAnulacionResponse{
		ID:              s.ID.String(),
		OrdenID:         s.OrdenID.String(),
		ItemIndice:      &indice,
		Motivo:          s.Motivo,
		UsuarioSolicita: s.UsuarioSolicita,
		Estado:          s.Estado,
		UsuarioProcesa:  s.UsuarioProcesa,
		MotivoAdmin:     s.MotivoAdmin,
		CreatedAt:       s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if orden != nil {
		resp.NumeroOrden = orden.NumeroOrden
		if item := orden.ItemPorIndice(s.ItemIndice); item != nil {
			resp.ItemNombre = item.Nombre
		}
	}
	return resp
}

func solicitudOrdenToResponse(s *model.SolicitudAnulacionOrden, orden *model.Orden) dto.SolicitudAnulacionResponse {
	resp := dto.SolicitudAnulacionResponse{
		ID:              s.ID.String(),
		OrdenID:         s.OrdenID.String(),
		Motivo:          s.Motivo,
		UsuarioSolicita: s.UsuarioSolicita,
		Estado:          s.Estado,
		UsuarioProcesa:  s.UsuarioProcesa,
		MotivoAdmin:     s.MotivoAdmin,
		CreatedAt:       s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if orden != nil {
		resp.NumeroOrden = orden.NumeroOrden
	}
	return resp
}
