package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comandapos/internal/model"
)

type AnulacionRepository interface {
	CreateItemTx(tx *gorm.DB, s *model.SolicitudAnulacionItem) error
	CreateOrdenTx(tx *gorm.DB, s *model.SolicitudAnulacionOrden) error
	// FindItemTx locks the request row; a second resolver blocks and then sees
	// the already-processed state.
	FindItemTx(tx *gorm.DB, id uuid.UUID) (*model.SolicitudAnulacionItem, error)
	FindOrdenTx(tx *gorm.DB, id uuid.UUID) (*model.SolicitudAnulacionOrden, error)
	SaveItemTx(tx *gorm.DB, s *model.SolicitudAnulacionItem) error
	SaveOrdenTx(tx *gorm.DB, s *model.SolicitudAnulacionOrden) error
	// ExisteItemPendiente guards against duplicate requests for the same item.
	ExisteItemPendienteTx(tx *gorm.DB, ordenID uuid.UUID, indice int) (bool, error)
	ListItemsPendientes(ctx context.Context) ([]model.SolicitudAnulacionItem, error)
	ListOrdenesPendientes(ctx context.Context) ([]model.SolicitudAnulacionOrden, error)

	DB() *gorm.DB
}

type anulacionRepo struct {
	db *gorm.DB
}

func NewAnulacionRepository(db *gorm.DB) AnulacionRepository {
	return &anulacionRepo{db: db}
}

func (r *anulacionRepo) DB() *gorm.DB { return r.db }

func (r *anulacionRepo) CreateItemTx(tx *gorm.DB, s *model.SolicitudAnulacionItem) error {
	return tx.Create(s).Error
}

func (r *anulacionRepo) CreateOrdenTx(tx *gorm.DB, s *model.SolicitudAnulacionOrden) error {
	return tx.Create(s).Error
}

func (r *anulacionRepo) FindItemTx(tx *gorm.DB, id uuid.UUID) (*model.SolicitudAnulacionItem, error) {
	var s model.SolicitudAnulacionItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *anulacionRepo) FindOrdenTx(tx *gorm.DB, id uuid.UUID) (*model.SolicitudAnulacionOrden, error) {
	var s model.SolicitudAnulacionOrden
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *anulacionRepo) SaveItemTx(tx *gorm.DB, s *model.SolicitudAnulacionItem) error {
	return tx.Save(s).Error
}

func (r *anulacionRepo) SaveOrdenTx(tx *gorm.DB, s *model.SolicitudAnulacionOrden) error {
	return tx.Save(s).Error
}

func (r *anulacionRepo) ExisteItemPendienteTx(tx *gorm.DB, ordenID uuid.UUID, indice int) (bool, error) {
	var count int64
	err := tx.Model(&model.SolicitudAnulacionItem{}).
		Where("orden_id = ? AND item_indice = ? AND estado = ?", ordenID, indice, model.SolicitudPendiente).
		Count(&count).Error
	return count > 0, err
}

func (r *anulacionRepo) ListItemsPendientes(ctx context.Context) ([]model.SolicitudAnulacionItem, error) {
	var sols []model.SolicitudAnulacionItem
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.SolicitudPendiente).
		Preload("Orden").
		Preload("Orden.Items", func(db *gorm.DB) *gorm.DB { return db.Order("indice") }).
		Order("created_at").
		Find(&sols).Error
	return sols, err
}

func (r *anulacionRepo) ListOrdenesPendientes(ctx context.Context) ([]model.SolicitudAnulacionOrden, error) {
	var sols []model.SolicitudAnulacionOrden
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.SolicitudPendiente).
		Preload("Orden").
		Order("created_at").
		Find(&sols).Error
	return sols, err
}
