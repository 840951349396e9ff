package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/repos"
	"github.com/casavera/catalog-media-backend/internal/types"
)

// VariantService manages the color variants of a product. Creating a
// variant derives its SKU immediately, so a variant never exists without one.
type VariantService interface {
	Create(ctx context.Context, input CreateVariantInput) (*types.ProductVariant, error)
	Delete(ctx context.Context, variantID uuid.UUID) error
}

type CreateVariantInput struct {
	ProductID uuid.UUID
	ColorID   uuid.UUID
}

type variantService struct {
	log         *logger.Logger
	variantRepo repos.VariantRepo
	productRepo repos.ProductRepo
	colorRepo   repos.ColorRepo
	sku         SKUService
}

func NewVariantService(
	baseLog *logger.Logger,
	variantRepo repos.VariantRepo,
	productRepo repos.ProductRepo,
	colorRepo repos.ColorRepo,
	sku SKUService,
) (VariantService, error) {
	if variantRepo == nil || productRepo == nil || colorRepo == nil {
		return nil, fmt.Errorf("NewVariantService: nil repo")
	}
	if sku == nil {
		return nil, fmt.Errorf("NewVariantService: nil sku service")
	}
	return &variantService{
		log:         baseLog.With("service", "VariantService"),
		variantRepo: variantRepo,
		productRepo: productRepo,
		colorRepo:   colorRepo,
		sku:         sku,
	}, nil
}

func (s *variantService) Create(ctx context.Context, input CreateVariantInput) (*types.ProductVariant, error) {
	if _, err := s.productRepo.GetByID(ctx, nil, input.ProductID); err != nil {
		return nil, fmt.Errorf("load product %s: %w", input.ProductID, err)
	}
	color, err := s.colorRepo.GetByID(ctx, nil, input.ColorID)
	if err != nil {
		return nil, fmt.Errorf("load color %s: %w", input.ColorID, err)
	}

	variant := &types.ProductVariant{
		ProductID: input.ProductID,
		ColorID:   color.ID,
	}
	created, err := s.variantRepo.Create(ctx, nil, variant)
	if err != nil {
		return nil, fmt.Errorf("create variant: %w", err)
	}
	created.Color = color

	code, err := s.sku.Regenerate(ctx, nil, created.ID)
	if err != nil {
		return nil, fmt.Errorf("derive sku for variant %s: %w", created.ID, err)
	}
	created.SKUCode = code
	s.log.Info("created variant", "variantID", created.ID, "productID", input.ProductID, "sku", code)
	return created, nil
}

func (s *variantService) Delete(ctx context.Context, variantID uuid.UUID) error {
	if _, err := s.variantRepo.GetByID(ctx, nil, variantID); err != nil {
		return fmt.Errorf("load variant %s: %w", variantID, err)
	}
	return s.variantRepo.SoftDeleteByID(ctx, nil, variantID)
}
