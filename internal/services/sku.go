package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casavera/catalog-media-backend/internal/naming"
	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/repos"
)

// SKUService derives variant SKU codes from the product identity fields.
// The code is a function of supplier code, product number and color name,
// so it has to be regenerated whenever any of those change.
type SKUService interface {
	Regenerate(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (string, error)
}

type skuService struct {
	log         *logger.Logger
	variantRepo repos.VariantRepo
	productRepo repos.ProductRepo
}

func NewSKUService(baseLog *logger.Logger, variantRepo repos.VariantRepo, productRepo repos.ProductRepo) (SKUService, error) {
	if variantRepo == nil || productRepo == nil {
		return nil, fmt.Errorf("NewSKUService: nil repo")
	}
	return &skuService{
		log:         baseLog.With("service", "SKUService"),
		variantRepo: variantRepo,
		productRepo: productRepo,
	}, nil
}

func (s *skuService) Regenerate(ctx context.Context, tx *gorm.DB, variantID uuid.UUID) (string, error) {
	variant, err := s.variantRepo.GetByID(ctx, tx, variantID)
	if err != nil {
		return "", fmt.Errorf("load variant %s: %w", variantID, err)
	}
	product, err := s.productRepo.GetByID(ctx, tx, variant.ProductID)
	if err != nil {
		return "", fmt.Errorf("load product %s: %w", variant.ProductID, err)
	}
	if product.Supplier == nil {
		return "", fmt.Errorf("product %s has no supplier", product.ID)
	}

	colorName := ""
	if variant.Color != nil {
		colorName = variant.Color.Name
	}
	code := ComposeSKU(product.Supplier.Code, product.ProductNumber, colorName)
	if err := s.variantRepo.UpdateSKU(ctx, tx, variantID, code); err != nil {
		return "", fmt.Errorf("update sku for variant %s: %w", variantID, err)
	}
	s.log.Info("regenerated sku", "variantID", variantID, "sku", code)
	return code, nil
}

// ComposeSKU builds the SKU code the same way canonical picture names are
// built, minus the order suffix, upper-cased for catalog display.
func ComposeSKU(supplierCode, productNumber, colorName string) string {
	parts := []string{
		naming.Token(productNumber),
		naming.Token(supplierCode),
	}
	if colorName != "" {
		parts = append(parts, naming.Token(colorName))
	}
	return strings.ToUpper(strings.Join(parts, "-"))
}
