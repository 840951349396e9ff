package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/types"
)

type SupplierRepo interface {
	Create(ctx context.Context, tx *gorm.DB, supplier *types.Supplier) (*types.Supplier, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Supplier, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Supplier, error)
}

type supplierRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSupplierRepo(db *gorm.DB, baseLog *logger.Logger) SupplierRepo {
	return &supplierRepo{db: db, log: baseLog.With("repo", "SupplierRepo")}
}

func (r *supplierRepo) Create(ctx context.Context, tx *gorm.DB, supplier *types.Supplier) (*types.Supplier, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

func (r *supplierRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Supplier, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Supplier
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *supplierRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Supplier, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Supplier
	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
