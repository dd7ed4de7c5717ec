package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"comandapos/internal/dto"
	"comandapos/internal/model"
	"comandapos/internal/repository"
)

// maxIntentosCorrelativo acota los reintentos cuando dos órdenes compiten por
// el mismo número y el índice único rechaza a una.
const maxIntentosCorrelativo = 3

type OrdenService interface {
	CrearOrden(ctx context.Context, req dto.CrearOrdenRequest, meseroID uuid.UUID, mesero string) (*dto.OrdenResponse, error)
	ObtenerOrden(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error)
	ListarOrdenes(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error)
	// MarcarDespachado marca un item como despachado por cocina o bar. Sobre un
	// item ya anulado no hace nada: la comanda pudo imprimirse antes de la
	// anulación y el despacho tardío no es un error del operario.
	MarcarDespachado(ctx context.Context, ordenID uuid.UUID, indice int, canal, usuario string) error
	// Tablero lista los items activos sin despachar del canal.
	Tablero(ctx context.Context, canal string) ([]dto.ItemTablero, error)
}

type ordenService struct {
	ordenes    repository.OrdenRepository
	mesas      repository.MesaRepository
	platos     repository.PlatoRepository
	secuencias SecuenciaService
	auditoria  repository.AuditoriaRepository
}

func NewOrdenService(
	ordenes repository.OrdenRepository,
	mesas repository.MesaRepository,
	platos repository.PlatoRepository,
	secuencias SecuenciaService,
	auditoria repository.AuditoriaRepository,
) OrdenService {
	return &ordenService{
		ordenes:    ordenes,
		mesas:      mesas,
		platos:     platos,
		secuencias: secuencias,
		auditoria:  auditoria,
	}
}

func (s *ordenService) CrearOrden(ctx context.Context, req dto.CrearOrdenRequest, meseroID uuid.UUID, mesero string) (*dto.OrdenResponse, error) {
	mesaID, err := uuid.Parse(req.MesaID)
	if err != nil {
		return nil, fmt.Errorf("%w: mesa_id inválido", ErrValidacion)
	}
	mesa, err := s.mesas.FindByID(ctx, mesaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mesa", ErrNoEncontrado)
		}
		return nil, err
	}
	if !mesa.Activa {
		return nil, fmt.Errorf("%w: la mesa %d está inactiva", ErrValidacion, mesa.Numero)
	}

	items := make([]model.OrdenItem, 0, len(req.Items))
	for i, it := range req.Items {
		platoID, err := uuid.Parse(it.PlatoID)
		if err != nil {
			return nil, fmt.Errorf("%w: plato_id inválido en item %d", ErrValidacion, i)
		}
		plato, err := s.platos.FindByID(ctx, platoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: plato del item %d", ErrNoEncontrado, i)
			}
			return nil, err
		}
		if !plato.Activo {
			return nil, fmt.Errorf("%w: el plato %q no está disponible", ErrValidacion, plato.Nombre)
		}
		if it.Descuento.GreaterThan(plato.Precio.Mul(decimalFromInt(it.Cantidad))) {
			return nil, fmt.Errorf("%w: el descuento del item %d supera su subtotal", ErrValidacion, i)
		}
		items = append(items, model.OrdenItem{
			Indice:         i,
			PlatoID:        plato.ID,
			Nombre:         plato.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: plato.Precio,
			Descuento:      it.Descuento,
			Comentarios:    it.Comentarios,
		})
	}

	var orden *model.Orden
	for intento := 1; ; intento++ {
		orden = &model.Orden{
			MesaID:   mesaID,
			MeseroID: meseroID,
			Estado:   model.OrdenPendiente,
			Items:    items,
		}
		orden.RecomputeTotal()

		err = runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
			numero, err := s.secuencias.ProximoNumeroOrden(tx)
			if err != nil {
				return err
			}
			orden.NumeroOrden = numero
			return s.ordenes.CreateTx(tx, orden)
		})
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && intento < maxIntentosCorrelativo {
			log.Warn().Int("intento", intento).Msg("colisión de número de orden, reintentando")
			continue
		}
		return nil, err
	}

	registrarAuditoria(ctx, s.auditoria, mesero,
		fmt.Sprintf("creó la orden #%d para la mesa %d", orden.NumeroOrden, mesa.Numero))

	completa, err := s.ordenes.FindByID(ctx, orden.ID)
	if err != nil {
		return nil, err
	}
	resp := ordenToResponse(completa)
	return &resp, nil
}

func (s *ordenService) ObtenerOrden(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	resp := ordenToResponse(orden)
	return &resp, nil
}

func (s *ordenService) ListarOrdenes(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error) {
	ordenes, total, err := s.ordenes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrdenResponse, 0, len(ordenes))
	for i := range ordenes {
		out = append(out, ordenToResponse(&ordenes[i]))
	}
	return &dto.OrdenListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *ordenService) MarcarDespachado(ctx context.Context, ordenID uuid.UUID, indice int, canal, usuario string) error {
	if canal != model.CanalBar && canal != model.CanalCocina {
		return fmt.Errorf("%w: canal %q", ErrValidacion, canal)
	}

	return runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		orden, err := s.ordenes.FindByIDTx(tx, ordenID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if orden.Estado != model.OrdenPendiente {
			return fmt.Errorf("%w: la orden está %s", ErrEstadoInvalido, orden.Estado)
		}
		if orden.AnulacionCompletaPendiente {
			return fmt.Errorf("%w: la orden tiene una anulación completa en curso", ErrEstadoInvalido)
		}

		item := orden.ItemPorIndice(indice)
		if item == nil {
			return ErrIndiceInvalido
		}
		if item.Anulado {
			return nil
		}
		if item.Plato != nil && item.Plato.Canal != canal {
			return fmt.Errorf("%w: el item %q no pertenece al canal %s", ErrValidacion, item.Nombre, canal)
		}

		if err := item.MarcarDespachado(canal, usuario, nowUTC()); err != nil {
			switch {
			case errors.Is(err, model.ErrItemEnAnulacion):
				return fmt.Errorf("%w: el item tiene una anulación en curso", ErrEstadoInvalido)
			case errors.Is(err, model.ErrCanalInvalido):
				return fmt.Errorf("%w: canal %q", ErrValidacion, canal)
			default:
				return err
			}
		}
		return s.ordenes.SaveItemTx(tx, item)
	})
}

func (s *ordenService) Tablero(ctx context.Context, canal string) ([]dto.ItemTablero, error) {
	if canal != model.CanalBar && canal != model.CanalCocina {
		return nil, fmt.Errorf("%w: canal %q", ErrValidacion, canal)
	}
	items, err := s.ordenes.ItemsPendientes(ctx, canal)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ItemTablero, 0, len(items))
	for _, it := range items {
		fila := dto.ItemTablero{
			OrdenID:     it.OrdenID.String(),
			Indice:      it.Indice,
			Nombre:      it.Nombre,
			Cantidad:    it.Cantidad,
			Comentarios: it.Comentarios,
			CreatedAt:   it.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		out = append(out, fila)
	}
	// El número de orden y mesa se resuelven en una segunda pasada para no
	// inflar el join del tablero.
	vistos := map[uuid.UUID]*model.Orden{}
	for i := range out {
		id := items[i].OrdenID
		orden, ok := vistos[id]
		if !ok {
			orden, err = s.ordenes.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			vistos[id] = orden
		}
		out[i].NumeroOrden = orden.NumeroOrden
		if orden.Mesa != nil {
			out[i].MesaNumero = orden.Mesa.Numero
		}
	}
	return out, nil
}

func ordenToResponse(o *model.Orden) dto.OrdenResponse {
	resp := dto.OrdenResponse{
		ID:          o.ID.String(),
		NumeroOrden: o.NumeroOrden,
		MesaID:      o.MesaID.String(),
		MeseroID:    o.MeseroID.String(),
		Estado:      o.Estado,
		Total:       o.Total,
		AnulacionCompletaPendiente: o.AnulacionCompletaPendiente,
		CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.Mesa != nil {
		resp.MesaNumero = o.Mesa.Numero
	}
	if o.Mesero != nil {
		resp.Mesero = o.Mesero.Nombre
	}
	if o.FechaPago != nil {
		fp := o.FechaPago.Format("2006-01-02 15:04:05")
		resp.FechaPago = &fp
	}
	resp.Items = make([]dto.ItemOrdenResponse, 0, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		resp.Items = append(resp.Items, dto.ItemOrdenResponse{
			Indice:             it.Indice,
			PlatoID:            it.PlatoID.String(),
			Nombre:             it.Nombre,
			Cantidad:           it.Cantidad,
			PrecioUnitario:     it.PrecioUnitario,
			Descuento:          it.Descuento,
			Subtotal:           it.LineaTotal(),
			Comentarios:        it.Comentarios,
			Anulado:            it.Anulado,
			EnProcesoAnulacion: it.EnProcesoAnulacion,
			DespachadoBar:      it.DespachadoBar,
			DespachadoCocina:   it.DespachadoCocina,
			AvisoRechazo:       avisoPendiente(it),
		})
	}
	return resp
}

func avisoPendiente(it *model.OrdenItem) *string {
	if it.AvisoRechazo != nil && !it.AvisoRechazoVisto {
		return it.AvisoRechazo
	}
	return nil
}
