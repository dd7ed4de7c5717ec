package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"comandapos/internal/dto"
	"comandapos/internal/model"
)

// entorno arma todos los servicios sobre los stubs en memoria.
type entorno struct {
	usuariosRepo     *stubUsuarioRepo
	mesasRepo        *stubMesaRepo
	platosRepo       *stubPlatoRepo
	ingredientesRepo *stubIngredienteRepo
	movimientosRepo  *stubMovimientoRepo
	ordenesRepo      *stubOrdenRepo
	ticketsRepo      *stubTicketRepo
	anulacionesRepo  *stubAnulacionRepo
	cierresRepo      *stubCierreRepo
	configRepo       *stubConfiguracionRepo
	auditoriaRepo    *stubAuditoriaRepo

	secuencias  SecuenciaService
	inventario  InventarioService
	ordenes     OrdenService
	anulaciones AnulacionService
	tickets     TicketService
	cierres     CierreService
}

func newEntorno() *entorno {
	e := &entorno{
		usuariosRepo:     newStubUsuarioRepo(),
		mesasRepo:        newStubMesaRepo(),
		platosRepo:       newStubPlatoRepo(),
		ingredientesRepo: newStubIngredienteRepo(),
		movimientosRepo:  newStubMovimientoRepo(),
		ticketsRepo:      newStubTicketRepo(),
		anulacionesRepo:  newStubAnulacionRepo(),
		cierresRepo:      newStubCierreRepo(),
		configRepo:       newStubConfiguracionRepo(),
		auditoriaRepo:    newStubAuditoriaRepo(),
	}
	e.ordenesRepo = newStubOrdenRepo(e.platosRepo)
	e.secuencias = NewSecuenciaService(e.ordenesRepo, e.ticketsRepo, e.cierresRepo, e.configRepo)
	e.inventario = NewInventarioService(e.ingredientesRepo, e.movimientosRepo, e.platosRepo, e.configRepo, nil)
	e.ordenes = NewOrdenService(e.ordenesRepo, e.mesasRepo, e.platosRepo, e.secuencias, e.auditoriaRepo)
	e.anulaciones = NewAnulacionService(e.anulacionesRepo, e.ordenesRepo, e.inventario, e.auditoriaRepo)
	e.tickets = NewTicketService(e.ticketsRepo, e.ordenesRepo, e.secuencias, e.inventario, e.auditoriaRepo, nil)
	e.cierres = NewCierreService(e.cierresRepo, e.ticketsRepo, e.secuencias, e.auditoriaRepo)
	return e
}

func (e *entorno) seedMesa(t *testing.T, numero int) *model.Mesa {
	t.Helper()
	mesa := &model.Mesa{Numero: numero, Capacidad: 4, Activa: true}
	require.NoError(t, e.mesasRepo.Create(context.Background(), mesa))
	return mesa
}

func (e *entorno) seedIngrediente(t *testing.T, descripcion, cantidad, minimo string) *model.Ingrediente {
	t.Helper()
	ing := &model.Ingrediente{
		Descripcion: descripcion,
		Cantidad:    dec(cantidad),
		Unidad:      "unidad",
		StockMinimo: dec(minimo),
		Activo:      true,
	}
	require.NoError(t, e.ingredientesRepo.Create(context.Background(), ing))
	return ing
}

// seedPlato crea un plato con su receta: pares ingrediente → cantidad por unidad.
func (e *entorno) seedPlato(t *testing.T, nombre, precio, canal string, receta map[*model.Ingrediente]string) *model.Plato {
	t.Helper()
	plato := &model.Plato{
		Nombre:    nombre,
		Categoria: "test",
		Precio:    dec(precio),
		Canal:     canal,
		Activo:    true,
	}
	require.NoError(t, e.platosRepo.Create(context.Background(), plato))
	var lineas []model.RecetaIngrediente
	for ing, cantidad := range receta {
		lineas = append(lineas, model.RecetaIngrediente{
			PlatoID:           plato.ID,
			IngredienteID:     ing.ID,
			CantidadPorUnidad: dec(cantidad),
		})
	}
	require.NoError(t, e.platosRepo.ReplaceRecetaTx(nil, plato.ID, lineas))
	return plato
}

func (e *entorno) crearOrden(t *testing.T, mesa *model.Mesa, items ...dto.ItemOrdenRequest) *dto.OrdenResponse {
	t.Helper()
	resp, err := e.ordenes.CrearOrden(context.Background(), dto.CrearOrdenRequest{
		MesaID: mesa.ID.String(),
		Items:  items,
	}, uuid.New(), "mesero1")
	require.NoError(t, err)
	return resp
}

func item(plato *model.Plato, cantidad int) dto.ItemOrdenRequest {
	return dto.ItemOrdenRequest{PlatoID: plato.ID.String(), Cantidad: cantidad}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// stockDe lee el stock actual de un ingrediente del stub.
func (e *entorno) stockDe(t *testing.T, ing *model.Ingrediente) decimal.Decimal {
	t.Helper()
	actual, err := e.ingredientesRepo.FindByID(context.Background(), ing.ID)
	require.NoError(t, err)
	return actual.Cantidad
}
