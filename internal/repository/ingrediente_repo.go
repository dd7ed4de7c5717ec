package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comandapos/internal/model"
)

type IngredienteRepository interface {
	Create(ctx context.Context, i *model.Ingrediente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error)
	// FindByIDTx takes a row lock so concurrent sales serialize per ingredient.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Ingrediente, error)
	Update(ctx context.Context, i *model.Ingrediente) error
	UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error
	List(ctx context.Context) ([]model.Ingrediente, error)
	ListBajoStock(ctx context.Context) ([]model.Ingrediente, error)

	DB() *gorm.DB
}

type ingredienteRepo struct {
	db *gorm.DB
}

func NewIngredienteRepository(db *gorm.DB) IngredienteRepository {
	return &ingredienteRepo{db: db}
}

func (r *ingredienteRepo) DB() *gorm.DB { return r.db }

func (r *ingredienteRepo) Create(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	var ing model.Ingrediente
	if err := r.db.WithContext(ctx).First(&ing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredienteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Ingrediente, error) {
	var ing model.Ingrediente
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ing, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredienteRepo) Update(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingredienteRepo) UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	return tx.Model(&model.Ingrediente{}).
		Where("id = ?", id).
		Update("cantidad", cantidad).Error
}

func (r *ingredienteRepo) List(ctx context.Context) ([]model.Ingrediente, error) {
	var ings []model.Ingrediente
	err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("descripcion").
		Find(&ings).Error
	return ings, err
}

func (r *ingredienteRepo) ListBajoStock(ctx context.Context) ([]model.Ingrediente, error) {
	var ings []model.Ingrediente
	err := r.db.WithContext(ctx).
		Where("activo = ? AND cantidad <= stock_minimo", true).
		Order("descripcion").
		Find(&ings).Error
	return ings, err
}
