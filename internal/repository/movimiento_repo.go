package repository

import (
	"context"

	"gorm.io/gorm"

	"comandapos/internal/dto"
	"comandapos/internal/model"
)

type MovimientoRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error
	// ExistePorClavePrefijo reports whether any movement carries an event key
	// starting with prefijo. Used to make sale/reversal postings idempotent.
	ExistePorClavePrefijo(tx *gorm.DB, prefijo string) (bool, error)
	// ListPorClavePrefijo returns the movements whose event key starts with
	// prefijo. Reversals use it to mirror exactly what a sale debited.
	ListPorClavePrefijo(tx *gorm.DB, prefijo string) ([]model.MovimientoInventario, error)
	List(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error)
}

type movimientoRepo struct {
	db *gorm.DB
}

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository {
	return &movimientoRepo{db: db}
}

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) ExistePorClavePrefijo(tx *gorm.DB, prefijo string) (bool, error) {
	var count int64
	err := tx.Model(&model.MovimientoInventario{}).
		Where("clave_evento LIKE ?", prefijo+"%").
		Count(&count).Error
	return count > 0, err
}

func (r *movimientoRepo) ListPorClavePrefijo(tx *gorm.DB, prefijo string) ([]model.MovimientoInventario, error) {
	var movs []model.MovimientoInventario
	err := tx.Where("clave_evento LIKE ?", prefijo+"%").Find(&movs).Error
	return movs, err
}

func (r *movimientoRepo) List(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoInventario{})

	if filter.IngredienteID != "" {
		q = q.Where("ingrediente_id = ?", filter.IngredienteID)
	}
	if filter.OrdenID != "" {
		q = q.Where("orden_id = ?", filter.OrdenID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movs []model.MovimientoInventario
	err := q.Preload("Ingrediente").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&movs).Error
	return movs, total, err
}
