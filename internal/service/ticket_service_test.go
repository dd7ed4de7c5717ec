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

func (e *entorno) enviarACobro(t *testing.T, ordenID string) *dto.TicketResponse {
	t.Helper()
	ticket, err := e.tickets.EnviarACobro(context.Background(), dto.EnviarACobroRequest{OrdenID: ordenID}, "cajero1")
	require.NoError(t, err)
	return ticket
}

func pagoEfectivo(monto, recibido string) dto.PagoRequest {
	r := dec(recibido)
	return dto.PagoRequest{Metodo: model.PagoEfectivo, Monto: dec(monto), Recibido: &r}
}

func pagoDebito(monto string) dto.PagoRequest {
	return dto.PagoRequest{Metodo: model.PagoDebito, Monto: dec(monto)}
}

func TestEnviarACobroCongelaItemsActivos(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	empanada := e.seedPlato(t, "Empanada", "2.00", model.CanalCocina, nil)
	pizza := e.seedPlato(t, "Pizza", "5.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(empanada, 3), item(pizza, 1))

	// Se anula la pizza antes del cobro: el ticket no la incluye.
	solicitudID := e.solicitarItem(t, orden.ID, 1)
	require.NoError(t, e.anulaciones.ResolverItem(context.Background(), solicitudID, dto.ResolverAnulacionRequest{
		Decision: model.SolicitudAprobada,
	}, "admin"))

	ticket := e.enviarACobro(t, orden.ID)

	assert.Equal(t, 1, ticket.NumeroTicket)
	assert.Equal(t, model.TicketPendientePago, ticket.Estado)
	assert.True(t, dec("6.00").Equal(ticket.Total))
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, "Empanada", ticket.Items[0].Nombre)

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	assert.Equal(t, model.OrdenEnCobro, guardada.Estado)
}

func TestEnviarACobroSinItemsActivos(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))

	solicitudID := e.solicitarItem(t, orden.ID, 0)
	require.NoError(t, e.anulaciones.ResolverItem(context.Background(), solicitudID, dto.ResolverAnulacionRequest{
		Decision: model.SolicitudAprobada,
	}, "admin"))

	_, err := e.tickets.EnviarACobro(context.Background(), dto.EnviarACobroRequest{OrdenID: orden.ID}, "cajero1")
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestEnviarACobroBloqueadoPorAnulacionPendiente(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	e.solicitarItem(t, orden.ID, 0)

	_, err := e.tickets.EnviarACobro(context.Background(), dto.EnviarACobroRequest{OrdenID: orden.ID}, "cajero1")
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestEnviarACobroReenvioDevuelveElMismoTicket(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))

	primero := e.enviarACobro(t, orden.ID)
	segundo, err := e.tickets.EnviarACobro(context.Background(), dto.EnviarACobroRequest{OrdenID: orden.ID}, "cajero1")
	require.NoError(t, err)

	assert.Equal(t, primero.ID, segundo.ID)
	assert.Equal(t, primero.NumeroTicket, segundo.NumeroTicket)
	assert.Len(t, e.ticketsRepo.tickets, 1, "el reenvío no emite un segundo ticket")

	// Sobre una orden ya pagada el envío sí falla.
	_, err = e.tickets.ConfirmarPago(context.Background(), uuid.MustParse(primero.ID), dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{pagoDebito("8.00")},
	}, "cajero1")
	require.NoError(t, err)
	_, err = e.tickets.EnviarACobro(context.Background(), dto.EnviarACobroRequest{OrdenID: orden.ID}, "cajero1")
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestConfirmarPagoDescuentaInventarioUnaVez(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	carne := e.seedIngrediente(t, "Carne picada", "1000", "100")
	hamburguesa := e.seedPlato(t, "Hamburguesa", "5.00", model.CanalCocina, map[*model.Ingrediente]string{
		carne: "180",
	})
	orden := e.crearOrden(t, mesa, item(hamburguesa, 2))
	ticket := e.enviarACobro(t, orden.ID)
	ticketID := uuid.MustParse(ticket.ID)

	pagado, err := e.tickets.ConfirmarPago(context.Background(), ticketID, dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{pagoDebito("10.00")},
	}, "cajero1")
	require.NoError(t, err)

	assert.Equal(t, model.TicketPagado, pagado.Estado)
	assert.True(t, dec("640").Equal(e.stockDe(t, carne)), "1000 - 2x180 = 640")

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	assert.Equal(t, model.OrdenPagada, guardada.Estado)
	require.NotNil(t, guardada.FechaPago)

	// El segundo cobro se rechaza y no vuelve a tocar el inventario.
	_, err = e.tickets.ConfirmarPago(context.Background(), ticketID, dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{pagoDebito("10.00")},
	}, "cajero1")
	assert.ErrorIs(t, err, ErrYaProcesada)
	assert.True(t, dec("640").Equal(e.stockDe(t, carne)))
	assert.Len(t, e.movimientosRepo.movimientos, 1)
}

func TestConfirmarPagoMontosNoCubrenTotal(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	ticket := e.enviarACobro(t, orden.ID)

	_, err := e.tickets.ConfirmarPago(context.Background(), uuid.MustParse(ticket.ID), dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{pagoDebito("5.00")},
	}, "cajero1")
	assert.ErrorIs(t, err, ErrValidacion)

	guardada, _ := e.ordenesRepo.FindByID(context.Background(), uuid.MustParse(orden.ID))
	assert.Equal(t, model.OrdenEnCobro, guardada.Estado, "el pago fallido no cambia el estado")
}

func TestConfirmarPagoEfectivoCalculaVuelto(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	ticket := e.enviarACobro(t, orden.ID)

	// Recibido menor al monto: rechazado.
	_, err := e.tickets.ConfirmarPago(context.Background(), uuid.MustParse(ticket.ID), dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{pagoEfectivo("8.00", "5.00")},
	}, "cajero1")
	assert.ErrorIs(t, err, ErrValidacion)

	// Efectivo sin recibido: rechazado.
	_, err = e.tickets.ConfirmarPago(context.Background(), uuid.MustParse(ticket.ID), dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: dec("8.00")}},
	}, "cajero1")
	assert.ErrorIs(t, err, ErrValidacion)

	pagado, err := e.tickets.ConfirmarPago(context.Background(), uuid.MustParse(ticket.ID), dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{pagoEfectivo("8.00", "10.00")},
	}, "cajero1")
	require.NoError(t, err)
	assert.True(t, dec("2.00").Equal(pagado.Vuelto))
}

func TestConfirmarPagoMixto(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 2))
	ticket := e.enviarACobro(t, orden.ID)

	pagado, err := e.tickets.ConfirmarPago(context.Background(), uuid.MustParse(ticket.ID), dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{pagoDebito("10.00"), pagoEfectivo("6.00", "6.00")},
	}, "cajero1")
	require.NoError(t, err)
	assert.True(t, pagado.Vuelto.IsZero())
	require.Len(t, pagado.Pagos, 2)
}

func TestConfirmarPagoInformaPlatosSinReceta(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	carne := e.seedIngrediente(t, "Carne picada", "1000", "100")
	hamburguesa := e.seedPlato(t, "Hamburguesa", "5.00", model.CanalCocina, map[*model.Ingrediente]string{
		carne: "180",
	})
	menu := e.seedPlato(t, "Menú del día", "4.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(hamburguesa, 1), item(menu, 1))
	ticket := e.enviarACobro(t, orden.ID)

	pagado, err := e.tickets.ConfirmarPago(context.Background(), uuid.MustParse(ticket.ID), dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{pagoDebito("9.00")},
	}, "cajero1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Menú del día"}, pagado.SinReceta)
	assert.True(t, dec("820").Equal(e.stockDe(t, carne)), "solo la hamburguesa descuenta stock")
}

func TestAnularOrdenPagadaRechazada(t *testing.T) {
	e := newEntorno()
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)
	orden := e.crearOrden(t, mesa, item(plato, 1))
	ticket := e.enviarACobro(t, orden.ID)
	_, err := e.tickets.ConfirmarPago(context.Background(), uuid.MustParse(ticket.ID), dto.ConfirmarPagoRequest{
		Pagos: []dto.PagoRequest{pagoDebito("8.00")},
	}, "cajero1")
	require.NoError(t, err)

	_, err = e.anulaciones.SolicitarItem(context.Background(), dto.SolicitarAnulacionItemRequest{
		OrdenID: orden.ID,
		Indice:  0,
		Motivo:  "se facturó de más",
	}, "mesero1")
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestNumeracionDeTicketsCorrelativa(t *testing.T) {
	e := newEntorno()
	cfg, _ := e.configRepo.Get(context.Background())
	cfg.NumeroTicketInicial = 100
	require.NoError(t, e.configRepo.Save(context.Background(), cfg))
	mesa := e.seedMesa(t, 1)
	plato := e.seedPlato(t, "Milanesa", "8.00", model.CanalCocina, nil)

	primera := e.crearOrden(t, mesa, item(plato, 1))
	segunda := e.crearOrden(t, mesa, item(plato, 1))

	t1 := e.enviarACobro(t, primera.ID)
	t2 := e.enviarACobro(t, segunda.ID)
	assert.Equal(t, 100, t1.NumeroTicket)
	assert.Equal(t, 101, t2.NumeroTicket)
}
