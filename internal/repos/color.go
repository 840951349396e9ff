package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/types"
)

type ColorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, color *types.Color) (*types.Color, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Color, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Color, error)
}

type colorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewColorRepo(db *gorm.DB, baseLog *logger.Logger) ColorRepo {
	return &colorRepo{db: db, log: baseLog.With("repo", "ColorRepo")}
}

func (r *colorRepo) Create(ctx context.Context, tx *gorm.DB, color *types.Color) (*types.Color, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(color).Error; err != nil {
		return nil, err
	}
	return color, nil
}

func (r *colorRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Color, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Color
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *colorRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Color, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Color
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
