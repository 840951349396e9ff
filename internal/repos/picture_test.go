package repos

import (
	"context"
	"testing"

	"github.com/casavera/catalog-media-backend/internal/repos/testutil"
)

func TestPictureRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewPictureRepo(db, testutil.Logger(t))

	supplier := testutil.SeedSupplier(t, ctx, tx, "SUP001")
	product := testutil.SeedProduct(t, ctx, tx, supplier.ID, "ABC")
	color := testutil.SeedColor(t, ctx, tx, "Red")
	variant := testutil.SeedVariant(t, ctx, tx, product.ID, color.ID)

	productPic := testutil.SeedPicture(t, ctx, tx, product.ID, nil, "ABC_SUP001_1.jpg", 1)
	variantPic1 := testutil.SeedPicture(t, ctx, tx, product.ID, &variant.ID, "ABC_SUP001_red_1.jpg", 1)
	variantPic2 := testutil.SeedPicture(t, ctx, tx, product.ID, &variant.ID, "ABC_SUP001_red_2.jpg", 2)

	t.Run("GetByProductID returns everything the product owns", func(t *testing.T) {
		pics, err := repo.GetByProductID(ctx, tx, product.ID)
		if err != nil {
			t.Fatalf("GetByProductID: %v", err)
		}
		if len(pics) != 3 {
			t.Fatalf("got %d pictures, want 3", len(pics))
		}
	})

	t.Run("GetByVariantID orders by display order", func(t *testing.T) {
		pics, err := repo.GetByVariantID(ctx, tx, variant.ID)
		if err != nil {
			t.Fatalf("GetByVariantID: %v", err)
		}
		if len(pics) != 2 || pics[0].ID != variantPic1.ID || pics[1].ID != variantPic2.ID {
			t.Fatalf("unexpected order: %+v", pics)
		}
	})

	t.Run("UpdateNameAndLocator flushes one row", func(t *testing.T) {
		if err := repo.UpdateNameAndLocator(ctx, tx, productPic.ID, "ABC_SUP002_1.jpg", "https://pictures.test/ABC_SUP002_1.jpg"); err != nil {
			t.Fatalf("UpdateNameAndLocator: %v", err)
		}
		got, err := repo.GetByID(ctx, tx, productPic.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Name != "ABC_SUP002_1.jpg" || got.Locator != "https://pictures.test/ABC_SUP002_1.jpg" {
			t.Fatalf("row = %q / %q", got.Name, got.Locator)
		}
	})

	t.Run("UpdateName keeps the locator", func(t *testing.T) {
		before, err := repo.GetByID(ctx, tx, variantPic1.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if err := repo.UpdateName(ctx, tx, variantPic1.ID, "ABC_SUP002_red_1.jpg"); err != nil {
			t.Fatalf("UpdateName: %v", err)
		}
		after, err := repo.GetByID(ctx, tx, variantPic1.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if after.Name != "ABC_SUP002_red_1.jpg" {
			t.Fatalf("name = %q", after.Name)
		}
		if after.Locator != before.Locator {
			t.Fatalf("locator changed: %q -> %q", before.Locator, after.Locator)
		}
	})

	t.Run("SetPrimary clears siblings in the same scope", func(t *testing.T) {
		if err := repo.SetPrimary(ctx, tx, variantPic1); err != nil {
			t.Fatalf("SetPrimary: %v", err)
		}
		if err := repo.SetPrimary(ctx, tx, variantPic2); err != nil {
			t.Fatalf("SetPrimary: %v", err)
		}
		first, _ := repo.GetByID(ctx, tx, variantPic1.ID)
		second, _ := repo.GetByID(ctx, tx, variantPic2.ID)
		if first.IsPrimary {
			t.Fatal("first variant picture still primary")
		}
		if !second.IsPrimary {
			t.Fatal("second variant picture not primary")
		}
		// Product-scope picture lives in a different scope and is unaffected.
		prodScoped, _ := repo.GetByID(ctx, tx, productPic.ID)
		if prodScoped.IsPrimary {
			t.Fatal("product-scope picture must not be primary")
		}
	})

	t.Run("MaxDisplayOrder per scope", func(t *testing.T) {
		max, err := repo.MaxDisplayOrder(ctx, tx, product.ID, &variant.ID)
		if err != nil {
			t.Fatalf("MaxDisplayOrder: %v", err)
		}
		if max != 2 {
			t.Fatalf("variant max = %d, want 2", max)
		}
		max, err = repo.MaxDisplayOrder(ctx, tx, product.ID, nil)
		if err != nil {
			t.Fatalf("MaxDisplayOrder: %v", err)
		}
		if max != 1 {
			t.Fatalf("product max = %d, want 1", max)
		}
	})
}
