package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/types"
)

type fakeColorRepo struct {
	colors []*types.Color
}

func (r *fakeColorRepo) Create(ctx context.Context, tx *gorm.DB, c *types.Color) (*types.Color, error) {
	r.colors = append(r.colors, c)
	return c, nil
}

func (r *fakeColorRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Color, error) {
	for _, c := range r.colors {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeColorRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Color, error) {
	for _, c := range r.colors {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newVariantFixture(t *testing.T) (*renameFixture, *fakeColorRepo, VariantService) {
	t.Helper()
	f := newRenameFixture(t, newFakeStore())
	colors := &fakeColorRepo{colors: []*types.Color{
		{ID: uuid.New(), Name: "Blue"},
	}}
	svc, err := NewVariantService(logger.Nop(), f.variants, f.products, colors, f.sku)
	if err != nil {
		t.Fatalf("NewVariantService: %v", err)
	}
	return f, colors, svc
}

func TestVariantServiceCreate(t *testing.T) {
	f, colors, svc := newVariantFixture(t)

	variant, err := svc.Create(context.Background(), CreateVariantInput{
		ProductID: f.productID,
		ColorID:   colors.colors[0].ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if variant.ColorID != colors.colors[0].ID {
		t.Fatalf("color id = %s, want %s", variant.ColorID, colors.colors[0].ID)
	}
	if variant.SKUCode == "" {
		t.Fatal("variant created without a sku")
	}
	if f.sku.calls[variant.ID] != 1 {
		t.Fatalf("sku derived %d times, want 1", f.sku.calls[variant.ID])
	}
	if _, err := f.variants.GetByID(context.Background(), nil, variant.ID); err != nil {
		t.Fatalf("created variant not stored: %v", err)
	}
}

func TestVariantServiceCreateRejectsUnknownReferences(t *testing.T) {
	f, colors, svc := newVariantFixture(t)

	if _, err := svc.Create(context.Background(), CreateVariantInput{
		ProductID: uuid.New(),
		ColorID:   colors.colors[0].ID,
	}); err == nil {
		t.Fatal("unknown product accepted")
	}
	if _, err := svc.Create(context.Background(), CreateVariantInput{
		ProductID: f.productID,
		ColorID:   uuid.New(),
	}); err == nil {
		t.Fatal("unknown color accepted")
	}
}

func TestVariantServiceDelete(t *testing.T) {
	f, _, svc := newVariantFixture(t)

	if err := svc.Delete(context.Background(), f.variantID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), uuid.New()); err == nil {
		t.Fatal("unknown variant accepted")
	}
}
