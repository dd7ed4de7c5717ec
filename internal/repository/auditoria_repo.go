package repository

import (
	"context"

	"gorm.io/gorm"

	"comandapos/internal/model"
)

type AuditoriaRepository interface {
	Create(ctx context.Context, r *model.RegistroAuditoria) error
	List(ctx context.Context, usuario string, limit int) ([]model.RegistroAuditoria, error)
}

type auditoriaRepo struct {
	db *gorm.DB
}

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository {
	return &auditoriaRepo{db: db}
}

func (r *auditoriaRepo) Create(ctx context.Context, reg *model.RegistroAuditoria) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *auditoriaRepo) List(ctx context.Context, usuario string, limit int) ([]model.RegistroAuditoria, error) {
	q := r.db.WithContext(ctx).Model(&model.RegistroAuditoria{})
	if usuario != "" {
		q = q.Where("usuario = ?", usuario)
	}
	var regs []model.RegistroAuditoria
	err := q.Order("created_at DESC").Limit(limit).Find(&regs).Error
	return regs, err
}
