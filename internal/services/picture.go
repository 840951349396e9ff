package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/casavera/catalog-media-backend/internal/naming"
	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/platform/picstore"
	"github.com/casavera/catalog-media-backend/internal/repos"
	"github.com/casavera/catalog-media-backend/internal/types"
)

// PictureService owns the picture lifecycle: upload, delete, primary flag
// and display ordering. Remote writes happen before catalog rows so a crash
// between the two leaves an orphan object, never a dangling row.
type PictureService interface {
	Upload(ctx context.Context, input UploadPictureInput) (*types.Picture, error)
	Delete(ctx context.Context, pictureID uuid.UUID) error
	SetPrimary(ctx context.Context, pictureID uuid.UUID) error
	Reorder(ctx context.Context, productID uuid.UUID, orderedIDs []uuid.UUID) error
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]*types.Picture, error)
}

type UploadPictureInput struct {
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	Data        []byte
	ContentType string
	Alt         *string
}

type pictureService struct {
	log         *logger.Logger
	store       picstore.Store
	productRepo repos.ProductRepo
	variantRepo repos.VariantRepo
	pictureRepo repos.PictureRepo
}

func NewPictureService(
	baseLog *logger.Logger,
	store picstore.Store,
	productRepo repos.ProductRepo,
	variantRepo repos.VariantRepo,
	pictureRepo repos.PictureRepo,
) (PictureService, error) {
	if store == nil {
		return nil, fmt.Errorf("NewPictureService: nil store")
	}
	if productRepo == nil || variantRepo == nil || pictureRepo == nil {
		return nil, fmt.Errorf("NewPictureService: nil repo")
	}
	return &pictureService{
		log:         baseLog.With("service", "PictureService"),
		store:       store,
		productRepo: productRepo,
		variantRepo: variantRepo,
		pictureRepo: pictureRepo,
	}, nil
}

func (s *pictureService) Upload(ctx context.Context, input UploadPictureInput) (*types.Picture, error) {
	if len(input.Data) == 0 {
		return nil, fmt.Errorf("upload: empty payload")
	}

	product, err := s.productRepo.GetByID(ctx, nil, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", input.ProductID, err)
	}
	if product.Supplier == nil {
		return nil, fmt.Errorf("product %s has no supplier", input.ProductID)
	}

	scope := naming.ScopeProduct
	colorName := ""
	if input.VariantID != nil {
		scope = naming.ScopeVariant
		variant, err := s.variantRepo.GetByID(ctx, nil, *input.VariantID)
		if err != nil {
			return nil, fmt.Errorf("load variant %s: %w", *input.VariantID, err)
		}
		if variant.ProductID != input.ProductID {
			return nil, fmt.Errorf("variant %s does not belong to product %s", variant.ID, input.ProductID)
		}
		if variant.Color != nil {
			colorName = variant.Color.Name
		}
	}

	maxOrder, err := s.pictureRepo.MaxDisplayOrder(ctx, nil, input.ProductID, input.VariantID)
	if err != nil {
		return nil, fmt.Errorf("next display order: %w", err)
	}
	order := maxOrder + 1

	name := naming.Resolve(scope, product.Supplier.Code, product.ProductNumber, colorName, order)
	name += extensionFor(input.ContentType)
	if err := picstore.ValidateName(name); err != nil {
		return nil, err
	}

	result := s.store.Upload(ctx, name, input.Data, input.ContentType)
	if !result.OK() {
		return nil, fmt.Errorf("store upload %q: %s", name, result.Outcome)
	}
	locator := result.Locator
	if locator == "" {
		locator = s.store.URLFor(name)
	}

	picture := &types.Picture{
		ProductID:    input.ProductID,
		VariantID:    input.VariantID,
		Name:         name,
		Locator:      locator,
		ContentType:  input.ContentType,
		DisplayOrder: order,
		Alt:          input.Alt,
	}
	created, err := s.pictureRepo.Create(ctx, nil, picture)
	if err != nil {
		// Compensate: the row never landed, so the object must not linger.
		if del := s.store.Delete(ctx, name); !del.OK() {
			s.log.Error("orphan cleanup failed after create error",
				"name", name, "outcome", del.Outcome)
		}
		return nil, fmt.Errorf("create picture row: %w", err)
	}
	s.log.Info("uploaded picture", "pictureID", created.ID, "name", name)
	return created, nil
}

func (s *pictureService) Delete(ctx context.Context, pictureID uuid.UUID) error {
	picture, err := s.pictureRepo.GetByID(ctx, nil, pictureID)
	if err != nil {
		return fmt.Errorf("load picture %s: %w", pictureID, err)
	}

	result := s.store.Delete(ctx, picture.Name)
	if !result.OK() && result.Outcome != picstore.OutcomeNotFound {
		return fmt.Errorf("store delete %q: %s", picture.Name, result.Outcome)
	}
	if result.Outcome == picstore.OutcomeNotFound {
		s.log.Warn("remote object already gone", "pictureID", pictureID, "name", picture.Name)
	}
	return s.pictureRepo.DeleteByID(ctx, nil, pictureID)
}

func (s *pictureService) SetPrimary(ctx context.Context, pictureID uuid.UUID) error {
	picture, err := s.pictureRepo.GetByID(ctx, nil, pictureID)
	if err != nil {
		return fmt.Errorf("load picture %s: %w", pictureID, err)
	}
	return s.pictureRepo.SetPrimary(ctx, nil, picture)
}

// Reorder assigns display order by position in orderedIDs, starting at 1.
// Every listed picture must belong to the product. Remote names are not
// touched here; a follow-up rename cascade realigns them with the new order.
func (s *pictureService) Reorder(ctx context.Context, productID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("reorder: empty id list")
	}
	existing, err := s.pictureRepo.GetByProductID(ctx, nil, productID)
	if err != nil {
		return fmt.Errorf("load pictures for product %s: %w", productID, err)
	}
	owned := make(map[uuid.UUID]bool, len(existing))
	for _, p := range existing {
		owned[p.ID] = true
	}
	for _, id := range orderedIDs {
		if !owned[id] {
			return fmt.Errorf("picture %s does not belong to product %s", id, productID)
		}
	}
	for i, id := range orderedIDs {
		if err := s.pictureRepo.UpdateDisplayOrder(ctx, nil, id, i+1); err != nil {
			return fmt.Errorf("update order for picture %s: %w", id, err)
		}
	}
	return nil
}

func (s *pictureService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]*types.Picture, error) {
	return s.pictureRepo.GetByProductID(ctx, nil, productID)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
