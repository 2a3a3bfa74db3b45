package repository

import (
	"context"

	"github.com/marcusroqy/foodsystempdv/internal/model"

	"gorm.io/gorm"
)

// TenantRepository is deliberately small: tenant CRUD belongs to the
// surrounding platform. The core only needs the active set for background
// sweeps.
type TenantRepository interface {
	ListActive(ctx context.Context) ([]model.Tenant, error)
}

type tenantRepo struct{ db *gorm.DB }

func NewTenantRepository(db *gorm.DB) TenantRepository { return &tenantRepo{db: db} }

func (r *tenantRepo) ListActive(ctx context.Context) ([]model.Tenant, error) {
	var tenants []model.Tenant
	err := r.db.WithContext(ctx).
		Where("active = true").
		Find(&tenants).Error
	return tenants, err
}
