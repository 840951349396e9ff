package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/types"
)

type PictureRepo interface {
	Create(ctx context.Context, tx *gorm.DB, picture *types.Picture) (*types.Picture, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Picture, error)
	// GetByProductID returns every picture the product transitively owns,
	// product-scope pictures first, then variant pictures, each block in
	// ascending display order.
	GetByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.Picture, error)
	GetByVariantID(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) ([]*types.Picture, error)
	// UpdateNameAndLocator flushes one picture's rename reconciliation.
	UpdateNameAndLocator(ctx context.Context, tx *gorm.DB, id uuid.UUID, name, locator string) error
	// UpdateName updates the canonical name only, leaving the locator as is.
	UpdateName(ctx context.Context, tx *gorm.DB, id uuid.UUID, name string) error
	UpdateDisplayOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int) error
	SetPrimary(ctx context.Context, tx *gorm.DB, picture *types.Picture) error
	MaxDisplayOrder(ctx context.Context, tx *gorm.DB, productID uuid.UUID, variantID *uuid.UUID) (int, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type pictureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPictureRepo(db *gorm.DB, baseLog *logger.Logger) PictureRepo {
	return &pictureRepo{db: db, log: baseLog.With("repo", "PictureRepo")}
}

func (r *pictureRepo) Create(ctx context.Context, tx *gorm.DB, picture *types.Picture) (*types.Picture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(picture).Error; err != nil {
		return nil, err
	}
	return picture, nil
}

func (r *pictureRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Picture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Picture
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *pictureRepo) GetByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.Picture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Picture
	if err := transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("variant_id ASC").
		Order("display_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pictureRepo) GetByVariantID(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) ([]*types.Picture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Picture
	if err := transaction.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("display_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pictureRepo) UpdateNameAndLocator(ctx context.Context, tx *gorm.DB, id uuid.UUID, name, locator string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Picture{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "locator": locator}).Error
}

func (r *pictureRepo) UpdateName(ctx context.Context, tx *gorm.DB, id uuid.UUID, name string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Picture{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *pictureRepo) UpdateDisplayOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Picture{}).
		Where("id = ?", id).
		Update("display_order", order).Error
}

// SetPrimary marks one picture primary and clears the flag on every other
// picture in the same scope, keeping the at-most-one-primary invariant.
func (r *pictureRepo) SetPrimary(ctx context.Context, tx *gorm.DB, picture *types.Picture) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		scope := inner.Model(&types.Picture{}).Where("product_id = ?", picture.ProductID)
		if picture.VariantID != nil {
			scope = scope.Where("variant_id = ?", *picture.VariantID)
		} else {
			scope = scope.Where("variant_id IS NULL")
		}
		if err := scope.Update("is_primary", false).Error; err != nil {
			return err
		}
		return inner.Model(&types.Picture{}).
			Where("id = ?", picture.ID).
			Update("is_primary", true).Error
	})
}

func (r *pictureRepo) MaxDisplayOrder(ctx context.Context, tx *gorm.DB, productID uuid.UUID, variantID *uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).
		Model(&types.Picture{}).
		Where("product_id = ?", productID)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}
	var max *int
	if err := query.Select("MAX(display_order)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *pictureRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Picture{}).Error
}
