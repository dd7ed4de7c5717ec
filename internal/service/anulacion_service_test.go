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

func (e *entorno) solicitarItem(t *testing.T, ordenID string, indice int) uuid.UUID {
	t.Helper()
	sol, err := e.anulaciones.SolicitarItem(context.Background(), dto.SolicitarAnulacionItemRequest{
		OrdenID: ordenID,
		Indice:  indice,
		Motivo:  "el cliente se arrepintió",
	}, "mesero1")
	require.NoError(t, err)
	return uuid.MustParse(sol.ID)
}

func (e *entorno) solicitarOrden(t *testing.T, ordenID string) uuid.UUID {
	t.Helper()
	sol, err := e.anulaciones.SolicitarOrdenCompleta(context.Background(), dto.SolicitarAnulacionOrdenRequest{
		OrdenID: ordenID,
		Motivo:  "la mesa se retiró sin consumir",
	}, "mesero1")
	require.NoError(t, err)
	return uuid.MustParse(sol.ID)
}

func TestSolicitarItemMarcaEnProceso(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))

	e.solicitarItem(t, orden.ID, 0)

	guardada, err := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	require.NoError(t, err)
	assert.True(t, guardada.Items[0].EnProcesoAnulacion)
	assert.False(t, guardada.Items[0].Anulado)

	pendientes, err := e.anulaciones.ListarPendientes(context.Background())
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.Equal(t, model.SolicitudPendiente, pendientes[0].Estado)
}

func TestSolicitarItemDuplicadaRechazada(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))

	e.solicitarItem(t, orden.ID, 0)
	_, err := e.anulaciones.SolicitarItem(context.Background(), dto.SolicitarAnulacionItemRequest{
		OrdenID: orden.ID,
		Indice:  0,
		Motivo:  "el cliente se arrepintió",
	}, "mesero1")
	assert.ErrorIs(t, err, ErrYaProcesada)
}

func TestSolicitarItemSobreOrdenNoPendiente(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	guardada.Estado = model.OrdenEnCobro

	_, err := e.anulaciones.SolicitarItem(context.Background(), dto.SolicitarAnulacionItemRequest{
		OrdenID: orden.ID,
		Indice:  0,
		Motivo:  "el cliente se arrepintió",
	}, "mesero1")
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestSolicitarItemIndiceFueraDeRango(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))

	_, err := e.anulaciones.SolicitarItem(context.Background(), dto.SolicitarAnulacionItemRequest{
		OrdenID: orden.ID,
		Indice:  4,
		Motivo:  "el cliente se arrepintió",
	}, "mesero1")
	assert.ErrorIs(t, err, ErrIndiceInvalido)
}

func TestResolverItemAprobadaAnulaYRecalcula(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	empanada := e.seedPlato(t, "Empanada", "2.00", model.CanalCocina, nil)
	pizza := e.seedPlato(t, "Pizza", "5.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(empanada, 3), item(pizza, 1))
	solicitudID := e.solicitarItem(t, orden.ID, 0)

	err := e.anulaciones.ResolverItem(context.Background(), solicitudID, dto.ResolverAnulacionRequest{
		Decision: model.SolicitudAprobada,
	}, "admin")
	require.NoError(t, err)

	guardada, err := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	require.NoError(t, err)
	assert.True(t, guardada.Items[0].Anulado)
	assert.False(t, guardada.Items[0].EnProcesoAnulacion)
	assert.True(t, dec("5.00").Equal(guardada.Total), "11.00 - 3x2.00 = 5.00, got %s", guardada.Total)
	assert.Equal(t, model.OrdenPendiente, guardada.Estado)
}

func TestResolverItemDosVeces(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	solicitudID := e.solicitarItem(t, orden.ID, 0)

	req := dto.ResolverAnulacionRequest{Decision: model.SolicitudAprobada}
	require.NoError(t, e.anulaciones.ResolverItem(context.Background(), solicitudID, req, "admin"))
	err := e.anulaciones.ResolverItem(context.Background(), solicitudID, req, "admin")
	assert.ErrorIs(t, err, ErrYaProcesada)
}

func TestResolverItemRechazadaDejaAviso(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	solicitudID := e.solicitarItem(t, orden.ID, 0)

	err := e.anulaciones.ResolverItem(context.Background(), solicitudID, dto.ResolverAnulacionRequest{
		Decision: model.SolicitudRechazada,
	}, "admin")
	assert.ErrorIs(t, err, ErrValidacion, "el rechazo sin motivo_admin no se acepta")

	err = e.anulaciones.ResolverItem(context.Background(), solicitudID, dto.ResolverAnulacionRequest{
		Decision:    model.SolicitudRechazada,
		MotivoAdmin: "el plato ya salió de cocina",
	}, "admin")
	require.NoError(t, err)

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	it := guardada.Items[0]
	assert.False(t, it.Anulado)
	assert.False(t, it.EnProcesoAnulacion)
	require.NotNil(t, it.AvisoRechazo)
	assert.Equal(t, "el plato ya salió de cocina", *it.AvisoRechazo)
	assert.False(t, it.AvisoRechazoVisto)
	assert.True(t, dec("8.00").Equal(guardada.Total))
}

func TestResolverOrdenCompletaAprobada(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	empanada := e.seedPlato(t, "Empanada", "2.00", model.CanalCocina, nil)
	pizza := e.seedPlato(t, "Pizza", "5.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(empanada, 3), item(pizza, 1))
	solicitudID := e.solicitarOrden(t, orden.ID)

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	require.True(t, guardada.AnulacionCompletaPendiente)

	err := e.anulaciones.ResolverOrdenCompleta(context.Background(), solicitudID, dto.ResolverAnulacionRequest{
		Decision: model.SolicitudAprobada,
	}, "admin")
	require.NoError(t, err)

	guardada, _ = e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	assert.Equal(t, model.OrdenAnulada, guardada.Estado)
	assert.False(t, guardada.AnulacionCompletaPendiente)
	assert.True(t, guardada.Total.IsZero())
	for _, it := range guardada.Items {
		assert.True(t, it.Anulado)
	}
}

func TestResolverOrdenCompletaRechazada(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	solicitudID := e.solicitarOrden(t, orden.ID)

	err := e.anulaciones.ResolverOrdenCompleta(context.Background(), solicitudID, dto.ResolverAnulacionRequest{
		Decision:    model.SolicitudRechazada,
		MotivoAdmin: "la mesa sigue ocupada",
	}, "admin")
	require.NoError(t, err)

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	assert.Equal(t, model.OrdenPendiente, guardada.Estado)
	assert.False(t, guardada.AnulacionCompletaPendiente)
	require.NotNil(t, guardada.AvisoRechazo)
	assert.Equal(t, "la mesa sigue ocupada", *guardada.AvisoRechazo)
	assert.False(t, guardada.AvisoRechazoVisto)
}

func TestMarcarAvisoVisto(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	solicitudID := e.solicitarItem(t, orden.ID, 0)
	require.NoError(t, e.anulaciones.ResolverItem(context.Background(), solicitudID, dto.ResolverAnulacionRequest{
		Decision:    model.SolicitudRechazada,
		MotivoAdmin: "el plato ya salió",
	}, "admin"))

	indice := 0
	require.NoError(t, e.anulaciones.MarcarAvisoVisto(context.Background(), dto.MarcarAvisoVistoRequest{
		OrdenID: orden.ID,
		Indice:  &indice,
	}))

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	assert.True(t, guardada.Items[0].AvisoRechazoVisto)
}
