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

// AlertaStockNotifier recibe avisos de stock bajo. La implementación real los
// encola para envío por correo; en tests puede ser nil.
type AlertaStockNotifier interface {
	NotificarStockBajo(ctx context.Context, ing model.Ingrediente)
}

type InventarioService interface {
	// DescontarItemTx descuenta del inventario el consumo de un item activo.
	// Es idempotente por item: si el evento de venta ya fue asentado no vuelve
	// a descontar. Devuelve true cuando el plato no tiene receta definida (el
	// item se vende sin tocar inventario).
	DescontarItemTx(tx *gorm.DB, ordenID uuid.UUID, item *model.OrdenItem, usuario string) (bool, error)
	// ReponerItemTx revierte el consumo de un item previamente descontado,
	// espejando los asientos de venta. Idempotente por item; si la venta nunca
	// se asentó, no repone nada.
	ReponerItemTx(tx *gorm.DB, ordenID uuid.UUID, item *model.OrdenItem, usuario string) error

	CrearIngrediente(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error)
	ActualizarIngrediente(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error)
	DesactivarIngrediente(ctx context.Context, id uuid.UUID) error
	ListarIngredientes(ctx context.Context) ([]dto.IngredienteResponse, error)
	RegistrarAjuste(ctx context.Context, req dto.AjusteManualRequest, usuario string) (*dto.MovimientoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type inventarioService struct {
	ingredientes repository.IngredienteRepository
	movimientos  repository.MovimientoRepository
	platos       repository.PlatoRepository
	config       repository.ConfiguracionRepository
	notifier     AlertaStockNotifier
}

func NewInventarioService(
	ingredientes repository.IngredienteRepository,
	movimientos repository.MovimientoRepository,
	platos repository.PlatoRepository,
	config repository.ConfiguracionRepository,
	notifier AlertaStockNotifier,
) InventarioService {
	return &inventarioService{
		ingredientes: ingredientes,
		movimientos:  movimientos,
		platos:       platos,
		config:       config,
		notifier:     notifier,
	}
}

func claveEvento(ordenID uuid.UUID, indice int, tipo string, ingredienteID uuid.UUID) string {
	return fmt.Sprintf("%s:%d:%s:%s", ordenID, indice, tipo, ingredienteID)
}

func clavePrefijo(ordenID uuid.UUID, indice int, tipo string) string {
	return fmt.Sprintf("%s:%d:%s:", ordenID, indice, tipo)
}

func (s *inventarioService) DescontarItemTx(tx *gorm.DB, ordenID uuid.UUID, item *model.OrdenItem, usuario string) (bool, error) {
	lineas, err := s.platos.RecetaTx(tx, item.PlatoID)
	if err != nil {
		return false, err
	}
	if len(lineas) == 0 {
		// Sin receta no hay consumo que asentar. El item se cobra igual.
		log.Info().
			Str("orden_id", ordenID.String()).
			Int("indice", item.Indice).
			Str("plato", item.Nombre).
			Msg("plato sin receta: venta sin movimientos de inventario")
		return true, nil
	}

	yaAsentado, err := s.movimientos.ExistePorClavePrefijo(tx, clavePrefijo(ordenID, item.Indice, "venta"))
	if err != nil {
		return false, err
	}
	if yaAsentado {
		return false, nil
	}

	for _, linea := range lineas {
		consumo := linea.CantidadPorUnidad.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		if err := s.asentarMovimiento(tx, movimientoParams{
			ingredienteID: linea.IngredienteID,
			tipo:          model.MovimientoSalida,
			cantidad:      consumo,
			motivo:        fmt.Sprintf("venta %s x%d", item.Nombre, item.Cantidad),
			usuario:       usuario,
			claveEvento:   claveEvento(ordenID, item.Indice, "venta", linea.IngredienteID),
			ordenID:       &ordenID,
		}); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (s *inventarioService) ReponerItemTx(tx *gorm.DB, ordenID uuid.UUID, item *model.OrdenItem, usuario string) error {
	ventas, err := s.movimientos.ListPorClavePrefijo(tx, clavePrefijo(ordenID, item.Indice, "venta"))
	if err != nil {
		return err
	}
	if len(ventas) == 0 {
		return nil
	}
	yaRepuesto, err := s.movimientos.ExistePorClavePrefijo(tx, clavePrefijo(ordenID, item.Indice, "reversa"))
	if err != nil {
		return err
	}
	if yaRepuesto {
		return nil
	}

	// La reversa espeja los asientos de venta, no la receta: si la salida se
	// ajustó a cero, se repone solo lo efectivamente descontado.
	for _, venta := range ventas {
		reposicion := venta.Cantidad.Neg()
		if !reposicion.IsPositive() {
			continue
		}
		if err := s.asentarMovimiento(tx, movimientoParams{
			ingredienteID: venta.IngredienteID,
			tipo:          model.MovimientoEntrada,
			cantidad:      reposicion,
			motivo:        fmt.Sprintf("anulación %s x%d", item.Nombre, item.Cantidad),
			usuario:       usuario,
			claveEvento:   claveEvento(ordenID, item.Indice, "reversa", venta.IngredienteID),
			ordenID:       &ordenID,
		}); err != nil {
			return err
		}
	}
	return nil
}

type movimientoParams struct {
	ingredienteID uuid.UUID
	tipo          string
	cantidad      decimal.Decimal // magnitud, siempre positiva
	motivo        string
	usuario       string
	claveEvento   string
	ordenID       *uuid.UUID
}

// asentarMovimiento aplica un movimiento sobre el stock con la fila del
// ingrediente bloqueada y deja el asiento en el libro. Las salidas nunca
// llevan el stock por debajo de cero.
func (s *inventarioService) asentarMovimiento(tx *gorm.DB, p movimientoParams) error {
	ing, err := s.ingredientes.FindByIDTx(tx, p.ingredienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: ingrediente %s", ErrNoEncontrado, p.ingredienteID)
		}
		return err
	}

	anterior := ing.Cantidad
	var nuevo, delta decimal.Decimal
	switch p.tipo {
	case model.MovimientoSalida:
		nuevo = anterior.Sub(p.cantidad)
		if nuevo.IsNegative() {
			log.Warn().
				Str("ingrediente", ing.Descripcion).
				Str("stock", anterior.String()).
				Str("consumo", p.cantidad.String()).
				Msg("stock insuficiente: se ajusta a cero")
			nuevo = decimal.Zero
		}
		delta = nuevo.Sub(anterior)
	case model.MovimientoEntrada:
		nuevo = anterior.Add(p.cantidad)
		delta = p.cantidad
	default:
		return fmt.Errorf("%w: tipo de movimiento %q", ErrValidacion, p.tipo)
	}

	var clave *string
	if p.claveEvento != "" {
		clave = &p.claveEvento
	}
	mov := &model.MovimientoInventario{
		IngredienteID: p.ingredienteID,
		Tipo:          p.tipo,
		Cantidad:      delta,
		StockAnterior: anterior,
		StockNuevo:    nuevo,
		Motivo:        p.motivo,
		Usuario:       p.usuario,
		ClaveEvento:   clave,
		OrdenID:       p.ordenID,
	}
	if err := s.movimientos.CreateTx(tx, mov); err != nil {
		return err
	}
	if err := s.ingredientes.UpdateCantidadTx(tx, p.ingredienteID, nuevo); err != nil {
		return err
	}

	if p.tipo == model.MovimientoSalida && nuevo.LessThanOrEqual(ing.StockMinimo) {
		s.avisarStockBajo(tx, *ing, nuevo)
	}
	return nil
}

func (s *inventarioService) avisarStockBajo(tx *gorm.DB, ing model.Ingrediente, nuevo decimal.Decimal) {
	if s.notifier == nil {
		return
	}
	cfg, err := s.config.GetTx(tx)
	if err != nil || !cfg.AlertasStock {
		return
	}
	ing.Cantidad = nuevo
	s.notifier.NotificarStockBajo(context.Background(), ing)
}

func (s *inventarioService) CrearIngrediente(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error) {
	ing := &model.Ingrediente{
		Descripcion: req.Descripcion,
		Cantidad:    req.Cantidad,
		Unidad:      req.Unidad,
		StockMinimo: req.StockMinimo,
		Activo:      true,
	}
	if err := s.ingredientes.Create(ctx, ing); err != nil {
		return nil, err
	}
	resp := ingredienteToResponse(ing)
	return &resp, nil
}

func (s *inventarioService) ActualizarIngrediente(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error) {
	ing, err := s.ingredientes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if req.Descripcion != nil {
		ing.Descripcion = *req.Descripcion
	}
	if req.Unidad != nil {
		ing.Unidad = *req.Unidad
	}
	if req.StockMinimo != nil {
		ing.StockMinimo = *req.StockMinimo
	}
	if err := s.ingredientes.Update(ctx, ing); err != nil {
		return nil, err
	}
	resp := ingredienteToResponse(ing)
	return &resp, nil
}

func (s *inventarioService) DesactivarIngrediente(ctx context.Context, id uuid.UUID) error {
	ing, err := s.ingredientes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	ing.Activo = false
	return s.ingredientes.Update(ctx, ing)
}

func (s *inventarioService) ListarIngredientes(ctx context.Context) ([]dto.IngredienteResponse, error) {
	ings, err := s.ingredientes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredienteResponse, 0, len(ings))
	for i := range ings {
		out = append(out, ingredienteToResponse(&ings[i]))
	}
	return out, nil
}

func (s *inventarioService) RegistrarAjuste(ctx context.Context, req dto.AjusteManualRequest, usuario string) (*dto.MovimientoResponse, error) {
	if !req.Cantidad.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", ErrValidacion)
	}
	ingredienteID, err := uuid.Parse(req.IngredienteID)
	if err != nil {
		return nil, fmt.Errorf("%w: ingrediente_id inválido", ErrValidacion)
	}

	var resp *dto.MovimientoResponse
	err = runTx(ctx, s.ingredientes.DB(), func(tx *gorm.DB) error {
		if err := s.asentarMovimiento(tx, movimientoParams{
			ingredienteID: ingredienteID,
			tipo:          req.Tipo,
			cantidad:      req.Cantidad,
			motivo:        req.Motivo,
			usuario:       usuario,
		}); err != nil {
			return err
		}
		resp = &dto.MovimientoResponse{
			IngredienteID: req.IngredienteID,
			Tipo:          req.Tipo,
			Cantidad:      req.Cantidad,
			Motivo:        req.Motivo,
			Usuario:       usuario,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	movs, total, err := s.movimientos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for i := range movs {
		out = append(out, movimientoToResponse(&movs[i]))
	}
	return &dto.MovimientoListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventarioService) ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	ings, err := s.ingredientes.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertaStockResponse, 0, len(ings))
	for _, ing := range ings {
		out = append(out, dto.AlertaStockResponse{
			IngredienteID: ing.ID.String(),
			Descripcion:   ing.Descripcion,
			Cantidad:      ing.Cantidad,
			StockMinimo:   ing.StockMinimo,
			Unidad:        ing.Unidad,
		})
	}
	return out, nil
}

func ingredienteToResponse(ing *model.Ingrediente) dto.IngredienteResponse {
	return dto.IngredienteResponse{
		ID:          ing.ID.String(),
		Descripcion: ing.Descripcion,
		Cantidad:    ing.Cantidad,
		Unidad:      ing.Unidad,
		StockMinimo: ing.StockMinimo,
		Activo:      ing.Activo,
	}
}

func movimientoToResponse(m *model.MovimientoInventario) dto.MovimientoResponse {
	resp := dto.MovimientoResponse{
		ID:            m.ID.String(),
		IngredienteID: m.IngredienteID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		Usuario:       m.Usuario,
		CreatedAt:     m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if m.Ingrediente != nil {
		resp.Ingrediente = m.Ingrediente.Descripcion
	}
	if m.OrdenID != nil {
		id := m.OrdenID.String()
		resp.OrdenID = &id
	}
	return resp
}
