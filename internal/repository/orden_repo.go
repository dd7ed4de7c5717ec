package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comandapos/internal/dto"
	"comandapos/internal/model"
)

type OrdenRepository interface {
	CreateTx(tx *gorm.DB, o *model.Orden) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Orden, error)
	// FindByIDTx locks the order row so state transitions serialize.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Orden, error)
	// MaxNumeroOrden returns the highest correlative issued so far, 0 when none.
	MaxNumeroOrden(tx *gorm.DB) (int, error)
	SaveTx(tx *gorm.DB, o *model.Orden) error
	SaveItemTx(tx *gorm.DB, item *model.OrdenItem) error
	List(ctx context.Context, filter dto.OrdenFilter) ([]model.Orden, int64, error)
	// ItemsPendientes lists undispatched active items for one channel's board.
	ItemsPendientes(ctx context.Context, canal string) ([]model.OrdenItem, error)

	DB() *gorm.DB
}

type ordenRepo struct {
	db *gorm.DB
}

func NewOrdenRepository(db *gorm.DB) OrdenRepository {
	return &ordenRepo{db: db}
}

func (r *ordenRepo) DB() *gorm.DB { return r.db }

func (r *ordenRepo) CreateTx(tx *gorm.DB, o *model.Orden) error {
	return tx.Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Orden, error) {
	var o model.Orden
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("indice") }).
		Preload("Items.Plato").
		Preload("Mesa").
		Preload("Mesero").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Orden, error) {
	var o model.Orden
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	// Items se cargan sin lock: el lock de la fila madre serializa la orden.
	err = tx.Preload("Plato").
		Where("orden_id = ?", id).
		Order("indice").
		Find(&o.Items).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) MaxNumeroOrden(tx *gorm.DB) (int, error) {
	var max int
	err := tx.Model(&model.Orden{}).
		Select("COALESCE(MAX(numero_orden), 0)").
		Scan(&max).Error
	return max, err
}

func (r *ordenRepo) SaveTx(tx *gorm.DB, o *model.Orden) error {
	return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(o).Error
}

func (r *ordenRepo) SaveItemTx(tx *gorm.DB, item *model.OrdenItem) error {
	return tx.Save(item).Error
}

func (r *ordenRepo) List(ctx context.Context, filter dto.OrdenFilter) ([]model.Orden, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Orden{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}
	if filter.MesaID != "" {
		q = q.Where("mesa_id = ?", filter.MesaID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ordenes []model.Orden
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("indice") }).
		Preload("Mesa").
		Preload("Mesero").
		Order("numero_orden DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&ordenes).Error
	return ordenes, total, err
}

func (r *ordenRepo) ItemsPendientes(ctx context.Context, canal string) ([]model.OrdenItem, error) {
	despachadoCol := "despachado_cocina"
	if canal == model.CanalBar {
		despachadoCol = "despachado_bar"
	}

	var items []model.OrdenItem
	err := r.db.WithContext(ctx).
		Joins("JOIN ordenes ON ordenes.id = orden_items.orden_id").
		Joins("JOIN platos ON platos.id = orden_items.plato_id").
		Where("ordenes.estado = ?", model.OrdenPendiente).
		Where("platos.canal = ?", canal).
		Where("orden_items."+despachadoCol+" = ?", false).
		Where("orden_items.anulado = ?", false).
		Where("orden_items.en_proceso_anulacion = ?", false).
		Preload("Plato").
		Order("orden_items.created_at").
		Find(&items).Error
	return items, err
}
