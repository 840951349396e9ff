package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casavera/catalog-media-backend/internal/types"
)

func SeedSupplier(tb testing.TB, ctx context.Context, tx *gorm.DB, code string) *types.Supplier {
	tb.Helper()
	s := &types.Supplier{
		ID:   uuid.New(),
		Code: code,
		Name: "Supplier " + code,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed supplier: %v", err)
	}
	return s
}

func SeedColor(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Color {
	tb.Helper()
	c := &types.Color{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed color: %v", err)
	}
	return c
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, supplierID uuid.UUID, productNumber string) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:            uuid.New(),
		ProductNumber: productNumber,
		SupplierID:    supplierID,
		Name:          "Product " + productNumber,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedVariant(tb testing.TB, ctx context.Context, tx *gorm.DB, productID, colorID uuid.UUID) *types.ProductVariant {
	tb.Helper()
	v := &types.ProductVariant{
		ID:        uuid.New(),
		ProductID: productID,
		ColorID:   colorID,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed variant: %v", err)
	}
	return v
}

func SeedPicture(tb testing.TB, ctx context.Context, tx *gorm.DB, productID uuid.UUID, variantID *uuid.UUID, name string, order int) *types.Picture {
	tb.Helper()
	p := &types.Picture{
		ID:           uuid.New(),
		ProductID:    productID,
		VariantID:    variantID,
		Name:         name,
		Locator:      "https://pictures.test/" + name,
		DisplayOrder: order,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed picture: %v", err)
	}
	return p
}
