package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"comandapos/internal/model"
)

// Filas de agregación para reportes. Se escanean directo desde SQL.
type VentaMeseroRow struct {
	MeseroID string
	Mesero   string
	Tickets  int
	Total    decimal.Decimal
}

type VentaPlatoRow struct {
	PlatoID  string
	Nombre   string
	Cantidad int
	Total    decimal.Decimal
}

type ReporteRepository interface {
	// TotalesDia cuenta los tickets pagados de la fecha y suma sus totales.
	TotalesDia(ctx context.Context, fecha string) (int64, decimal.Decimal, error)
	VentasPorMesero(ctx context.Context, fecha string) ([]VentaMeseroRow, error)
	VentasPorPlato(ctx context.Context, fecha string) ([]VentaPlatoRow, error)
	ItemsAnulados(ctx context.Context, fecha string) (int64, error)
}

type reporteRepo struct {
	db *gorm.DB
}

func NewReporteRepository(db *gorm.DB) ReporteRepository {
	return &reporteRepo{db: db}
}

func (r *reporteRepo) TotalesDia(ctx context.Context, fecha string) (int64, decimal.Decimal, error) {
	type fila struct {
		Tickets int64
		Total   decimal.Decimal
	}
	var f fila
	err := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Select("COUNT(*) AS tickets, COALESCE(SUM(total), 0) AS total").
		Where("estado = ?", model.TicketPagado).
		Where("DATE(fecha_pago) = ?", fecha).
		Scan(&f).Error
	return f.Tickets, f.Total, err
}

func (r *reporteRepo) VentasPorMesero(ctx context.Context, fecha string) ([]VentaMeseroRow, error) {
	var filas []VentaMeseroRow
	err := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Select("ordenes.mesero_id AS mesero_id, usuarios.nombre AS mesero, COUNT(*) AS tickets, COALESCE(SUM(tickets.total), 0) AS total").
		Joins("JOIN ordenes ON ordenes.id = tickets.orden_id").
		Joins("JOIN usuarios ON usuarios.id = ordenes.mesero_id").
		Where("tickets.estado = ?", model.TicketPagado).
		Where("DATE(tickets.fecha_pago) = ?", fecha).
		Group("ordenes.mesero_id, usuarios.nombre").
		Order("total DESC").
		Scan(&filas).Error
	return filas, err
}

func (r *reporteRepo) VentasPorPlato(ctx context.Context, fecha string) ([]VentaPlatoRow, error) {
	var filas []VentaPlatoRow
	err := r.db.WithContext(ctx).
		Model(&model.TicketItem{}).
		Select("ticket_items.plato_id AS plato_id, ticket_items.nombre AS nombre, COALESCE(SUM(ticket_items.cantidad), 0) AS cantidad, COALESCE(SUM(ticket_items.subtotal), 0) AS total").
		Joins("JOIN tickets ON tickets.id = ticket_items.ticket_id").
		Where("tickets.estado = ?", model.TicketPagado).
		Where("DATE(tickets.fecha_pago) = ?", fecha).
		Group("ticket_items.plato_id, ticket_items.nombre").
		Order("cantidad DESC").
		Scan(&filas).Error
	return filas, err
}

func (r *reporteRepo) ItemsAnulados(ctx context.Context, fecha string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OrdenItem{}).
		Where("anulado = ?", true).
		Where("DATE(fecha_anulacion) = ?", fecha).
		Count(&count).Error
	return count, err
}
