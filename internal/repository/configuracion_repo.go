package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"comandapos/internal/model"
)

type ConfiguracionRepository interface {
	// Get returns the singleton row, or the defaults when none was saved yet.
	Get(ctx context.Context) (*model.Configuracion, error)
	GetTx(tx *gorm.DB) (*model.Configuracion, error)
	Save(ctx context.Context, c *model.Configuracion) error
}

type configuracionRepo struct {
	db *gorm.DB
}

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Get(ctx context.Context) (*model.Configuracion, error) {
	return r.GetTx(r.db.WithContext(ctx))
}

func (r *configuracionRepo) GetTx(tx *gorm.DB) (*model.Configuracion, error) {
	var c model.Configuracion
	err := tx.First(&c, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ConfiguracionDefault(), nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *configuracionRepo) Save(ctx context.Context, c *model.Configuracion) error {
	c.ID = 1
	return r.db.WithContext(ctx).Save(c).Error
}
