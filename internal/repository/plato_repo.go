package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"comandapos/internal/dto"
	"comandapos/internal/model"
)

type PlatoRepository interface {
	Create(ctx context.Context, p *model.Plato) error
	// FindByID preloads the recipe with its ingredients.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Plato, error)
	Update(ctx context.Context, p *model.Plato) error
	List(ctx context.Context, filter dto.PlatoFilter) ([]model.Plato, int64, error)
	// ReplaceRecetaTx swaps the plate's recipe atomically inside tx.
	ReplaceRecetaTx(tx *gorm.DB, platoID uuid.UUID, lineas []model.RecetaIngrediente) error
	// RecetaTx reads the plate's recipe lines inside tx.
	RecetaTx(tx *gorm.DB, platoID uuid.UUID) ([]model.RecetaIngrediente, error)

	DB() *gorm.DB
}

type platoRepo struct {
	db *gorm.DB
}

func NewPlatoRepository(db *gorm.DB) PlatoRepository {
	return &platoRepo{db: db}
}

func (r *platoRepo) DB() *gorm.DB { return r.db }

func (r *platoRepo) Create(ctx context.Context, p *model.Plato) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *platoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Plato, error) {
	var p model.Plato
	err := r.db.WithContext(ctx).
		Preload("Receta.Ingrediente").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *platoRepo) Update(ctx context.Context, p *model.Plato) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *platoRepo) List(ctx context.Context, filter dto.PlatoFilter) ([]model.Plato, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Plato{})

	switch filter.Activo {
	case "all":
	case "false":
		q = q.Where("activo = ?", false)
	default:
		q = q.Where("activo = ?", true)
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if filter.Canal != "" {
		q = q.Where("canal = ?", filter.Canal)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var platos []model.Plato
	err := q.Preload("Receta.Ingrediente").
		Order("categoria, nombre").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&platos).Error
	return platos, total, err
}

func (r *platoRepo) RecetaTx(tx *gorm.DB, platoID uuid.UUID) ([]model.RecetaIngrediente, error) {
	var lineas []model.RecetaIngrediente
	err := tx.Where("plato_id = ?", platoID).Find(&lineas).Error
	return lineas, err
}

func (r *platoRepo) ReplaceRecetaTx(tx *gorm.DB, platoID uuid.UUID, lineas []model.RecetaIngrediente) error {
	if err := tx.Where("plato_id = ?", platoID).Delete(&model.RecetaIngrediente{}).Error; err != nil {
		return err
	}
	if len(lineas) == 0 {
		return nil
	}
	return tx.Create(&lineas).Error
}
