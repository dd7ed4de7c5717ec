package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comandapos/internal/dto"
	"comandapos/internal/model"
)

type TicketRepository interface {
	CreateTx(tx *gorm.DB, t *model.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Ticket, error)
	FindPendienteByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) (*model.Ticket, error)
	MaxNumeroTicket(tx *gorm.DB) (int, error)
	SaveTx(tx *gorm.DB, t *model.Ticket) error
	List(ctx context.Context, filter dto.TicketFilter) ([]model.Ticket, int64, error)
	// SumPagosPorMetodo totals paid-ticket payments per method for one date.
	SumPagosPorMetodo(ctx context.Context, fecha string) (map[string]decimal.Decimal, error)

	DB() *gorm.DB
}

type ticketRepo struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepo{db: db}
}

func (r *ticketRepo) DB() *gorm.DB { return r.db }

func (r *ticketRepo) CreateTx(tx *gorm.DB, t *model.Ticket) error {
	return tx.Create(t).Error
}

func (r *ticketRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Pagos").
		Preload("Orden").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if err := tx.Where("ticket_id = ?", id).Find(&t.Items).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) FindPendienteByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := tx.Where("orden_id = ? AND estado = ?", ordenID, model.TicketPendientePago).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) MaxNumeroTicket(tx *gorm.DB) (int, error) {
	var max int
	err := tx.Model(&model.Ticket{}).
		Select("COALESCE(MAX(numero_ticket), 0)").
		Scan(&max).Error
	return max, err
}

func (r *ticketRepo) SaveTx(tx *gorm.DB, t *model.Ticket) error {
	return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(t).Error
}

func (r *ticketRepo) List(ctx context.Context, filter dto.TicketFilter) ([]model.Ticket, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Ticket{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []model.Ticket
	err := q.Preload("Items").
		Preload("Pagos").
		Preload("Orden").
		Order("numero_ticket DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&tickets).Error
	return tickets, total, err
}

func (r *ticketRepo) SumPagosPorMetodo(ctx context.Context, fecha string) (map[string]decimal.Decimal, error) {
	type fila struct {
		Metodo string
		Total  decimal.Decimal
	}
	var filas []fila
	err := r.db.WithContext(ctx).
		Model(&model.TicketPago{}).
		Select("ticket_pagos.metodo, COALESCE(SUM(ticket_pagos.monto), 0) AS total").
		Joins("JOIN tickets ON tickets.id = ticket_pagos.ticket_id").
		Where("tickets.estado = ?", model.TicketPagado).
		Where("DATE(tickets.fecha_pago) = ?", fecha).
		Group("ticket_pagos.metodo").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]decimal.Decimal, len(filas))
	for _, f := range filas {
		out[f.Metodo] = f.Total
	}
	return out, nil
}
