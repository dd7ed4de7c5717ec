package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comandapos/internal/dto"
	"comandapos/internal/model"
)

func TestCrearOrdenCongelaPreciosYCalculaTotal(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	empanada := e.seedPlato(t, "Empanada", "2.00", model.CanalCocina, nil)
	pizza := e.seedPlato(t, "Pizza", "5.00", model.CanalCocina, nil)

	orden := e.crearOrden(t, mesa, item(empanada, 3), item(pizza, 1))

	assert.Equal(t, model.OrdenPendiente, orden.Estado)
	assert.True(t, dec("11.00").Equal(orden.Total), "3x2 + 1x5 = 11, got %s", orden.Total)
	require.Len(t, orden.Items, 2)
	assert.Equal(t, 0, orden.Items[0].Indice)
	assert.Equal(t, 1, orden.Items[1].Indice)
	assert.True(t, dec("2.00").Equal(orden.Items[0].PrecioUnitario))

	// El precio queda congelado aunque la carta cambie después.
	pizza.Precio = dec("9.00")
	require.NoError(t, e.platosRepo.Update(context.Background(), pizza))
	recargada, err := e.ordenes.ObtenerOrden(context.Background(), uuid.MustParse(orden.ID))
	require.NoError(t, err)
	assert.True(t, dec("11.00").Equal(recargada.Total))
}

func TestCrearOrdenNumeracionCorrelativa(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Café", "1.50", model.CanalBar, nil)

	primera := e.crearOrden(t, mesa, item(plato, 1))
	segunda := e.crearOrden(t, mesa, item(plato, 1))

	assert.Equal(t, 1, primera.NumeroOrden)
	assert.Equal(t, 2, segunda.NumeroOrden)
}

func TestCrearOrdenArrancaDesdeElPisoConfigurado(t *testing.T) {
	e := newEntorno()
	cfg, _ := e.configRepo.Get(context.Background())
	cfg.NumeroOrdenInicial = 500
	require.NoError(t, e.configRepo.Save(context.Background(), cfg))
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Café", "1.50", model.CanalBar, nil)

	orden := e.crearOrden(t, mesa, item(plato, 1))
	assert.Equal(t, 500, orden.NumeroOrden)
}

func TestCrearOrdenRechazaMesaInactivaYPlatoInactivo(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	mesa.Activa = false
	require.NoError(t, e.mesasRepo.Update(context.Background(), mesa))
	plato := e.seedPlato(t, "Café", "1.50", model.CanalBar, nil)

	_, err := e.ordenes.CrearOrden(context.Background(), dto.CrearOrdenRequest{
		MesaID: mesa.ID.String(),
		Items:  []dto.ItemOrdenRequest{item(plato, 1)},
	}, uuid.New(), "mesero1")
	assert.ErrorIs(t, err, ErrValidacion)

	mesa.Activa = true
	require.NoError(t, e.mesasRepo.Update(context.Background(), mesa))
	plato.Activo = false
	require.NoError(t, e.platosRepo.Update(context.Background(), plato))

	_, err = e.ordenes.CrearOrden(context.Background(), dto.CrearOrdenRequest{
		MesaID: mesa.ID.String(),
		Items:  []dto.ItemOrdenRequest{item(plato, 1)},
	}, uuid.New(), "mesero1")
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestMarcarDespachado(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	ordenID := uuid.MustParse(orden.ID)

	err := e.ordenes.MarcarDespachado(context.Background(), ordenID, 0, model.CanalCocina, "cocina1")
	require.NoError(t, err)

	recargada, err := e.ordenes.ObtenerOrden(context.Background(), ordenID)
	require.NoError(t, err)
	assert.True(t, recargada.Items[0].DespachadoCocina)
	assert.False(t, recargada.Items[0].DespachadoBar)
}

func TestMarcarDespachadoIndiceFueraDeRango(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))

	err := e.ordenes.MarcarDespachado(context.Background(), uuid.MustParse(orden.ID), 7, model.CanalCocina, "cocina1")
	assert.ErrorIs(t, err, ErrIndiceInvalido)
}

func TestMarcarDespachadoSobreItemAnuladoNoHaceNada(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	ordenID := uuid.MustParse(orden.ID)

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), ordenID)
	guardada.Items[0].Anular("se cayó el plato", "admin", nowUTC())

	err := e.ordenes.MarcarDespachado(context.Background(), ordenID, 0, model.CanalCocina, "cocina1")
	require.NoError(t, err)
	assert.False(t, guardada.Items[0].DespachadoCocina)
}

func TestMarcarDespachadoBloqueadoPorAnulacionEnCurso(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	ordenID := uuid.MustParse(orden.ID)

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), ordenID)
	guardada.Items[0].EnProcesoAnulacion = true

	err := e.ordenes.MarcarDespachado(context.Background(), ordenID, 0, model.CanalCocina, "cocina1")
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestTableroFiltraPorCanalYEstado(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	milanesa := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	cerveza := e.seedPlato(t, "Cerveza", "3.00", model.CanalBar, nil)
	e.crearOrden(t, mesa, item(milanesa, 1), item(cerveza, 2))

	cocina, err := e.ordenes.Tablero(context.Background(), model.CanalCocina)
	require.NoError(t, err)
	bar, err := e.ordenes.Tablero(context.Background(), model.CanalBar)
	require.NoError(t, err)

	require.Len(t, cocina, 1)
	assert.Equal(t, "Milanesa", cocina[0].Nombre)
	require.Len(t, bar, 1)
	assert.Equal(t, "Cerveza", bar[0].Nombre)
}
