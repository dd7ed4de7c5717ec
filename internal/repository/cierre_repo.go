package repository

import (
	"context"

	"gorm.io/gorm"

	"comandapos/internal/model"
)

type CierreRepository interface {
	CreateTx(tx *gorm.DB, c *model.CierreCaja) error
	MaxNumeroCierre(tx *gorm.DB) (int, error)
	ExisteParaFechaTx(tx *gorm.DB, fecha string) (bool, error)
	List(ctx context.Context, limit int) ([]model.CierreCaja, error)

	DB() *gorm.DB
}

type cierreRepo struct {
	db *gorm.DB
}

func NewCierreRepository(db *gorm.DB) CierreRepository {
	return &cierreRepo{db: db}
}

func (r *cierreRepo) DB() *gorm.DB { return r.db }

func (r *cierreRepo) CreateTx(tx *gorm.DB, c *model.CierreCaja) error {
	return tx.Create(c).Error
}

func (r *cierreRepo) MaxNumeroCierre(tx *gorm.DB) (int, error) {
	var max int
	err := tx.Model(&model.CierreCaja{}).
		Select("COALESCE(MAX(numero_cierre), 0)").
		Scan(&max).Error
	return max, err
}

func (r *cierreRepo) ExisteParaFechaTx(tx *gorm.DB, fecha string) (bool, error) {
	var count int64
	err := tx.Model(&model.CierreCaja{}).
		Where("fecha = ?", fecha).
		Count(&count).Error
	return count > 0, err
}

func (r *cierreRepo) List(ctx context.Context, limit int) ([]model.CierreCaja, error) {
	var cierres []model.CierreCaja
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Order("numero_cierre DESC").
		Limit(limit).
		Find(&cierres).Error
	return cierres, err
}
