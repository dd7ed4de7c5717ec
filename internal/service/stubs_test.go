package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"comandapos/internal/dto"
	"comandapos/internal/model"
	"comandapos/internal/repository"
)

// Stubs en memoria de los repositorios. Los servicios corren con db nil, así
// que runTx ejecuta la función directamente y todo queda en los mapas.

// ─── usuarios ────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: map[uuid.UUID]*model.Usuario{}}
}

func (s *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.usuarios[u.ID] = u
	return nil
}

func (s *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := s.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range s.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	s.usuarios[u.ID] = u
	return nil
}

func (s *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(s.usuarios))
	for _, u := range s.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

// ─── mesas ───────────────────────────────────────────────────────────────────

type stubMesaRepo struct {
	mesas map[uuid.UUID]*model.Mesa
}

var _ repository.MesaRepository = (*stubMesaRepo)(nil)

func newStubMesaRepo() *stubMesaRepo {
	return &stubMesaRepo{mesas: map[uuid.UUID]*model.Mesa{}}
}

func (s *stubMesaRepo) Create(_ context.Context, m *model.Mesa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.mesas[m.ID] = m
	return nil
}

func (s *stubMesaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Mesa, error) {
	m, ok := s.mesas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (s *stubMesaRepo) Update(_ context.Context, m *model.Mesa) error {
	s.mesas[m.ID] = m
	return nil
}

func (s *stubMesaRepo) List(_ context.Context) ([]model.Mesa, error) {
	out := make([]model.Mesa, 0, len(s.mesas))
	for _, m := range s.mesas {
		out = append(out, *m)
	}
	return out, nil
}

// ─── platos y recetas ────────────────────────────────────────────────────────

type stubPlatoRepo struct {
	platos  map[uuid.UUID]*model.Plato
	recetas map[uuid.UUID][]model.RecetaIngrediente
}

var _ repository.PlatoRepository = (*stubPlatoRepo)(nil)

func newStubPlatoRepo() *stubPlatoRepo {
	return &stubPlatoRepo{
		platos:  map[uuid.UUID]*model.Plato{},
		recetas: map[uuid.UUID][]model.RecetaIngrediente{},
	}
}

func (s *stubPlatoRepo) DB() *gorm.DB { return nil }

func (s *stubPlatoRepo) Create(_ context.Context, p *model.Plato) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.platos[p.ID] = p
	return nil
}

func (s *stubPlatoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Plato, error) {
	p, ok := s.platos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	copia.Receta = s.recetas[id]
	return &copia, nil
}

func (s *stubPlatoRepo) Update(_ context.Context, p *model.Plato) error {
	s.platos[p.ID] = p
	return nil
}

func (s *stubPlatoRepo) List(_ context.Context, _ dto.PlatoFilter) ([]model.Plato, int64, error) {
	out := make([]model.Plato, 0, len(s.platos))
	for _, p := range s.platos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *stubPlatoRepo) RecetaTx(_ *gorm.DB, platoID uuid.UUID) ([]model.RecetaIngrediente, error) {
	return s.recetas[platoID], nil
}

func (s *stubPlatoRepo) ReplaceRecetaTx(_ *gorm.DB, platoID uuid.UUID, lineas []model.RecetaIngrediente) error {
	s.recetas[platoID] = lineas
	return nil
}

// ─── ingredientes ────────────────────────────────────────────────────────────

type stubIngredienteRepo struct {
	ingredientes map[uuid.UUID]*model.Ingrediente
}

var _ repository.IngredienteRepository = (*stubIngredienteRepo)(nil)

func newStubIngredienteRepo() *stubIngredienteRepo {
	return &stubIngredienteRepo{ingredientes: map[uuid.UUID]*model.Ingrediente{}}
}

func (s *stubIngredienteRepo) DB() *gorm.DB { return nil }

func (s *stubIngredienteRepo) Create(_ context.Context, i *model.Ingrediente) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	s.ingredientes[i.ID] = i
	return nil
}

func (s *stubIngredienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	return s.findByID(id)
}

func (s *stubIngredienteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Ingrediente, error) {
	return s.findByID(id)
}

func (s *stubIngredienteRepo) findByID(id uuid.UUID) (*model.Ingrediente, error) {
	i, ok := s.ingredientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *i
	return &copia, nil
}

func (s *stubIngredienteRepo) Update(_ context.Context, i *model.Ingrediente) error {
	s.ingredientes[i.ID] = i
	return nil
}

func (s *stubIngredienteRepo) UpdateCantidadTx(_ *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	i, ok := s.ingredientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.Cantidad = cantidad
	return nil
}

func (s *stubIngredienteRepo) List(_ context.Context) ([]model.Ingrediente, error) {
	out := make([]model.Ingrediente, 0, len(s.ingredientes))
	for _, i := range s.ingredientes {
		if i.Activo {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (s *stubIngredienteRepo) ListBajoStock(_ context.Context) ([]model.Ingrediente, error) {
	var out []model.Ingrediente
	for _, i := range s.ingredientes {
		if i.Activo && i.Cantidad.LessThanOrEqual(i.StockMinimo) {
			out = append(out, *i)
		}
	}
	return out, nil
}

// ─── movimientos ─────────────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []*model.MovimientoInventario
}

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

func newStubMovimientoRepo() *stubMovimientoRepo {
	return &stubMovimientoRepo{}
}

func (s *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoInventario) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.movimientos = append(s.movimientos, m)
	return nil
}

func (s *stubMovimientoRepo) ExistePorClavePrefijo(_ *gorm.DB, prefijo string) (bool, error) {
	for _, m := range s.movimientos {
		if m.ClaveEvento != nil && strings.HasPrefix(*m.ClaveEvento, prefijo) {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubMovimientoRepo) ListPorClavePrefijo(_ *gorm.DB, prefijo string) ([]model.MovimientoInventario, error) {
	var out []model.MovimientoInventario
	for _, m := range s.movimientos {
		if m.ClaveEvento != nil && strings.HasPrefix(*m.ClaveEvento, prefijo) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *stubMovimientoRepo) List(_ context.Context, _ dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	out := make([]model.MovimientoInventario, 0, len(s.movimientos))
	for _, m := range s.movimientos {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

// ─── órdenes ─────────────────────────────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes map[uuid.UUID]*model.Orden
	// platos emula el preload/join de Plato que hace el repositorio real.
	platos *stubPlatoRepo
}

var _ repository.OrdenRepository = (*stubOrdenRepo)(nil)

func newStubOrdenRepo(platos *stubPlatoRepo) *stubOrdenRepo {
	return &stubOrdenRepo{ordenes: map[uuid.UUID]*model.Orden{}, platos: platos}
}

func (s *stubOrdenRepo) DB() *gorm.DB { return nil }

func (s *stubOrdenRepo) CreateTx(_ *gorm.DB, o *model.Orden) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for _, existente := range s.ordenes {
		if existente.NumeroOrden == o.NumeroOrden {
			return gorm.ErrDuplicatedKey
		}
	}
	for idx := range o.Items {
		o.Items[idx].OrdenID = o.ID
	}
	s.ordenes[o.ID] = o
	return nil
}

func (s *stubOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Orden, error) {
	return s.findByID(id)
}

func (s *stubOrdenRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Orden, error) {
	return s.findByID(id)
}

func (s *stubOrdenRepo) findByID(id uuid.UUID) (*model.Orden, error) {
	o, ok := s.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for idx := range o.Items {
		if o.Items[idx].Plato == nil && s.platos != nil {
			o.Items[idx].Plato = s.platos.platos[o.Items[idx].PlatoID]
		}
	}
	return o, nil
}

func (s *stubOrdenRepo) MaxNumeroOrden(_ *gorm.DB) (int, error) {
	max := 0
	for _, o := range s.ordenes {
		if o.NumeroOrden > max {
			max = o.NumeroOrden
		}
	}
	return max, nil
}

func (s *stubOrdenRepo) SaveTx(_ *gorm.DB, o *model.Orden) error {
	s.ordenes[o.ID] = o
	return nil
}

func (s *stubOrdenRepo) SaveItemTx(_ *gorm.DB, item *model.OrdenItem) error {
	o, ok := s.ordenes[item.OrdenID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for idx := range o.Items {
		if o.Items[idx].Indice == item.Indice {
			o.Items[idx] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubOrdenRepo) List(_ context.Context, filter dto.OrdenFilter) ([]model.Orden, int64, error) {
	var out []model.Orden
	for _, o := range s.ordenes {
		if filter.Estado != "" && filter.Estado != "all" && o.Estado != filter.Estado {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (s *stubOrdenRepo) ItemsPendientes(_ context.Context, canal string) ([]model.OrdenItem, error) {
	var out []model.OrdenItem
	for _, o := range s.ordenes {
		if o.Estado != model.OrdenPendiente {
			continue
		}
		for _, item := range o.Items {
			if item.Anulado || item.EnProcesoAnulacion || item.Despachado(canal) {
				continue
			}
			plato := s.platos.platos[item.PlatoID]
			if plato == nil || plato.Canal != canal {
				continue
			}
			out = append(out, item)
		}
	}
	return out, nil
}

// ─── tickets ─────────────────────────────────────────────────────────────────

type stubTicketRepo struct {
	tickets map[uuid.UUID]*model.Ticket
}

var _ repository.TicketRepository = (*stubTicketRepo)(nil)

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{tickets: map[uuid.UUID]*model.Ticket{}}
}

func (s *stubTicketRepo) DB() *gorm.DB { return nil }

func (s *stubTicketRepo) CreateTx(_ *gorm.DB, t *model.Ticket) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	for _, existente := range s.tickets {
		if existente.NumeroTicket == t.NumeroTicket {
			return gorm.ErrDuplicatedKey
		}
	}
	s.tickets[t.ID] = t
	return nil
}

func (s *stubTicketRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ticket, error) {
	return s.findByID(id)
}

func (s *stubTicketRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Ticket, error) {
	return s.findByID(id)
}

func (s *stubTicketRepo) findByID(id uuid.UUID) (*model.Ticket, error) {
	t, ok := s.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (s *stubTicketRepo) FindPendienteByOrdenTx(_ *gorm.DB, ordenID uuid.UUID) (*model.Ticket, error) {
	for _, t := range s.tickets {
		if t.OrdenID == ordenID && t.Estado == model.TicketPendientePago {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTicketRepo) MaxNumeroTicket(_ *gorm.DB) (int, error) {
	max := 0
	for _, t := range s.tickets {
		if t.NumeroTicket > max {
			max = t.NumeroTicket
		}
	}
	return max, nil
}

func (s *stubTicketRepo) SaveTx(_ *gorm.DB, t *model.Ticket) error {
	s.tickets[t.ID] = t
	return nil
}

func (s *stubTicketRepo) List(_ context.Context, _ dto.TicketFilter) ([]model.Ticket, int64, error) {
	out := make([]model.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (s *stubTicketRepo) SumPagosPorMetodo(_ context.Context, fecha string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, t := range s.tickets {
		if t.Estado != model.TicketPagado || t.FechaPago == nil {
			continue
		}
		if t.FechaPago.Format("2006-01-02") != fecha {
			continue
		}
		for _, pago := range t.Pagos {
			out[pago.Metodo] = out[pago.Metodo].Add(pago.Monto)
		}
	}
	return out, nil
}

// ─── anulaciones ─────────────────────────────────────────────────────────────

type stubAnulacionRepo struct {
	items   map[uuid.UUID]*model.SolicitudAnulacionItem
	ordenes map[uuid.UUID]*model.SolicitudAnulacionOrden
}

var _ repository.AnulacionRepository = (*stubAnulacionRepo)(nil)

func newStubAnulacionRepo() *stubAnulacionRepo {
	return &stubAnulacionRepo{
		items:   map[uuid.UUID]*model.SolicitudAnulacionItem{},
		ordenes: map[uuid.UUID]*model.SolicitudAnulacionOrden{},
	}
}

func (s *stubAnulacionRepo) DB() *gorm.DB { return nil }

func (s *stubAnulacionRepo) CreateItemTx(_ *gorm.DB, sol *model.SolicitudAnulacionItem) error {
	if sol.ID == uuid.Nil {
		sol.ID = uuid.New()
	}
	s.items[sol.ID] = sol
	return nil
}

func (s *stubAnulacionRepo) CreateOrdenTx(_ *gorm.DB, sol *model.SolicitudAnulacionOrden) error {
	if sol.ID == uuid.Nil {
		sol.ID = uuid.New()
	}
	s.ordenes[sol.ID] = sol
	return nil
}

func (s *stubAnulacionRepo) FindItemTx(_ *gorm.DB, id uuid.UUID) (*model.SolicitudAnulacionItem, error) {
	sol, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sol, nil
}

func (s *stubAnulacionRepo) FindOrdenTx(_ *gorm.DB, id uuid.UUID) (*model.SolicitudAnulacionOrden, error) {
	sol, ok := s.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sol, nil
}

func (s *stubAnulacionRepo) SaveItemTx(_ *gorm.DB, sol *model.SolicitudAnulacionItem) error {
	s.items[sol.ID] = sol
	return nil
}

func (s *stubAnulacionRepo) SaveOrdenTx(_ *gorm.DB, sol *model.SolicitudAnulacionOrden) error {
	s.ordenes[sol.ID] = sol
	return nil
}

func (s *stubAnulacionRepo) ExisteItemPendienteTx(_ *gorm.DB, ordenID uuid.UUID, indice int) (bool, error) {
	for _, sol := range s.items {
		if sol.OrdenID == ordenID && sol.ItemIndice == indice && sol.Estado == model.SolicitudPendiente {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubAnulacionRepo) ListItemsPendientes(_ context.Context) ([]model.SolicitudAnulacionItem, error) {
	var out []model.SolicitudAnulacionItem
	for _, sol := range s.items {
		if sol.Estado == model.SolicitudPendiente {
			out = append(out, *sol)
		}
	}
	return out, nil
}

func (s *stubAnulacionRepo) ListOrdenesPendientes(_ context.Context) ([]model.SolicitudAnulacionOrden, error) {
	var out []model.SolicitudAnulacionOrden
	for _, sol := range s.ordenes {
		if sol.Estado == model.SolicitudPendiente {
			out = append(out, *sol)
		}
	}
	return out, nil
}

// ─── cierres ─────────────────────────────────────────────────────────────────

type stubCierreRepo struct {
	cierres map[uuid.UUID]*model.CierreCaja
}

var _ repository.CierreRepository = (*stubCierreRepo)(nil)

func newStubCierreRepo() *stubCierreRepo {
	return &stubCierreRepo{cierres: map[uuid.UUID]*model.CierreCaja{}}
}

func (s *stubCierreRepo) DB() *gorm.DB { return nil }

func (s *stubCierreRepo) CreateTx(_ *gorm.DB, c *model.CierreCaja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.cierres[c.ID] = c
	return nil
}

func (s *stubCierreRepo) MaxNumeroCierre(_ *gorm.DB) (int, error) {
	max := 0
	for _, c := range s.cierres {
		if c.NumeroCierre > max {
			max = c.NumeroCierre
		}
	}
	return max, nil
}

func (s *stubCierreRepo) ExisteParaFechaTx(_ *gorm.DB, fecha string) (bool, error) {
	for _, c := range s.cierres {
		if c.Fecha == fecha {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubCierreRepo) List(_ context.Context, _ int) ([]model.CierreCaja, error) {
	out := make([]model.CierreCaja, 0, len(s.cierres))
	for _, c := range s.cierres {
		out = append(out, *c)
	}
	return out, nil
}

// ─── configuración y auditoría ───────────────────────────────────────────────

type stubConfiguracionRepo struct {
	config model.Configuracion
}

var _ repository.ConfiguracionRepository = (*stubConfiguracionRepo)(nil)

func newStubConfiguracionRepo() *stubConfiguracionRepo {
	return &stubConfiguracionRepo{config: *model.ConfiguracionDefault()}
}

func (s *stubConfiguracionRepo) Get(_ context.Context) (*model.Configuracion, error) {
	copia := s.config
	return &copia, nil
}

func (s *stubConfiguracionRepo) GetTx(_ *gorm.DB) (*model.Configuracion, error) {
	copia := s.config
	return &copia, nil
}

func (s *stubConfiguracionRepo) Save(_ context.Context, c *model.Configuracion) error {
	s.config = *c
	return nil
}

type stubAuditoriaRepo struct {
	registros []model.RegistroAuditoria
}

var _ repository.AuditoriaRepository = (*stubAuditoriaRepo)(nil)

func newStubAuditoriaRepo() *stubAuditoriaRepo { return &stubAuditoriaRepo{} }

func (s *stubAuditoriaRepo) Create(_ context.Context, r *model.RegistroAuditoria) error {
	s.registros = append(s.registros, *r)
	return nil
}

func (s *stubAuditoriaRepo) List(_ context.Context, _ string, _ int) ([]model.RegistroAuditoria, error) {
	return s.registros, nil
}
