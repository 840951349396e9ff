package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/types"
)

type VariantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, variant *types.ProductVariant) (*types.ProductVariant, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ProductVariant, error)
	// GetByProductID preloads colors, ordered by creation so cascades walk
	// variants in a stable order.
	GetByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.ProductVariant, error)
	UpdateSKU(ctx context.Context, tx *gorm.DB, id uuid.UUID, skuCode string) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type variantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVariantRepo(db *gorm.DB, baseLog *logger.Logger) VariantRepo {
	return &variantRepo{db: db, log: baseLog.With("repo", "VariantRepo")}
}

func (r *variantRepo) Create(ctx context.Context, tx *gorm.DB, variant *types.ProductVariant) (*types.ProductVariant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

func (r *variantRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ProductVariant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ProductVariant
	if err := transaction.WithContext(ctx).
		Preload("Color").
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *variantRepo) GetByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.ProductVariant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ProductVariant
	if err := transaction.WithContext(ctx).
		Preload("Color").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *variantRepo) UpdateSKU(ctx context.Context, tx *gorm.DB, id uuid.UUID, skuCode string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.ProductVariant{}).
		Where("id = ?", id).
		Update("sku_code", skuCode).Error
}

func (r *variantRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.ProductVariant{}).Error
}
