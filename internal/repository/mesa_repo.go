package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"comandapos/internal/model"
)

type MesaRepository interface {
	Create(ctx context.Context, m *model.Mesa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mesa, error)
	Update(ctx context.Context, m *model.Mesa) error
	List(ctx context.Context) ([]model.Mesa, error)
}

type mesaRepo struct {
	db *gorm.DB
}

func NewMesaRepository(db *gorm.DB) MesaRepository {
	return &mesaRepo{db: db}
}

func (r *mesaRepo) Create(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mesaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mesaRepo) Update(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *mesaRepo) List(ctx context.Context) ([]model.Mesa, error) {
	var mesas []model.Mesa
	err := r.db.WithContext(ctx).Order("numero").Find(&mesas).Error
	return mesas, err
}
