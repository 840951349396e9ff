package services

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/google/uuid"

	"github.com/casavera/catalog-media-backend/internal/naming"
	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/platform/picstore"
	"github.com/casavera/catalog-media-backend/internal/repos"
	"github.com/casavera/catalog-media-backend/internal/types"
)

// RenameService walks every picture a product owns and brings the remote
// store back in line with the product's current identity fields. One failing
// picture never aborts the walk; each picture's row is flushed on its own so
// an interrupted cascade leaves already-processed pictures consistent.
type RenameService interface {
	// RenameAllForProduct runs the full cascade over product-scope pictures
	// and every variant's pictures, regenerating the SKU of each variant
	// whose pictures changed. Concurrent cascades for the same product are
	// serialized; different products proceed independently.
	RenameAllForProduct(ctx context.Context, productID uuid.UUID) (*RenameSummary, error)
	// RenameOne moves a single picture to an explicit new name and reconciles
	// the row, with the same missing-remote handling as the cascade.
	RenameOne(ctx context.Context, pictureID uuid.UUID, newName string) (RenameOutcome, error)
}

type renameService struct {
	log         *logger.Logger
	store       picstore.Store
	productRepo repos.ProductRepo
	variantRepo repos.VariantRepo
	pictureRepo repos.PictureRepo
	sku         SKUService

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewRenameService(
	baseLog *logger.Logger,
	store picstore.Store,
	productRepo repos.ProductRepo,
	variantRepo repos.VariantRepo,
	pictureRepo repos.PictureRepo,
	sku SKUService,
) (RenameService, error) {
	if store == nil {
		return nil, fmt.Errorf("NewRenameService: nil store")
	}
	if productRepo == nil || variantRepo == nil || pictureRepo == nil || sku == nil {
		return nil, fmt.Errorf("NewRenameService: nil dependency")
	}
	return &renameService{
		log:         baseLog.With("service", "RenameService"),
		store:       store,
		productRepo: productRepo,
		variantRepo: variantRepo,
		pictureRepo: pictureRepo,
		sku:         sku,
		locks:       make(map[uuid.UUID]*sync.Mutex),
	}, nil
}

// productLock returns the mutex serializing cascades for one product.
// Locks are never evicted; the map grows with the set of products renamed
// during the process lifetime, which is small enough not to matter.
func (s *renameService) productLock(productID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[productID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[productID] = lock
	}
	return lock
}

func (s *renameService) RenameAllForProduct(ctx context.Context, productID uuid.UUID) (*RenameSummary, error) {
	lock := s.productLock(productID)
	lock.Lock()
	defer lock.Unlock()

	product, err := s.productRepo.GetByID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", productID, err)
	}
	if product.Supplier == nil {
		return nil, fmt.Errorf("product %s has no supplier", productID)
	}

	summary := NewRenameSummary(productID)

	productPictures, err := s.pictureRepo.GetByProductID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("load pictures for product %s: %w", productID, err)
	}
	variants, err := s.variantRepo.GetByProductID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("load variants for product %s: %w", productID, err)
	}

	for _, picture := range productPictures {
		if picture.VariantID != nil {
			continue
		}
		s.renamePicture(ctx, product, "", picture, summary)
	}

	for _, variant := range variants {
		colorName := ""
		if variant.Color != nil {
			colorName = variant.Color.Name
		}
		pictures, err := s.pictureRepo.GetByVariantID(ctx, nil, variant.ID)
		if err != nil {
			summary.Warn(fmt.Sprintf("variant %s: load pictures: %v", variant.ID, err))
			continue
		}
		changed := false
		for _, picture := range pictures {
			if s.renamePicture(ctx, product, colorName, picture, summary) {
				changed = true
			}
		}
		if changed {
			code, err := s.sku.Regenerate(ctx, nil, variant.ID)
			if err != nil {
				summary.Warn(fmt.Sprintf("variant %s: regenerate sku: %v", variant.ID, err))
				continue
			}
			summary.RecordSKU(code)
		}
	}

	s.log.Info("rename cascade finished",
		"productID", productID,
		"renamed", summary.RenamedCount,
		"dbOnly", summary.DBOnlyCount,
		"failed", summary.FailedCount,
		"unchanged", summary.UnchangedCount)
	return summary, nil
}

// renamePicture handles one picture and reports whether its row changed.
func (s *renameService) renamePicture(ctx context.Context, product *types.Product, colorName string, picture *types.Picture, summary *RenameSummary) bool {
	scope := naming.ScopeProduct
	if picture.VariantID != nil {
		scope = naming.ScopeVariant
	}
	canonical := naming.Resolve(scope, product.Supplier.Code, product.ProductNumber, colorName, picture.DisplayOrder)
	newName := withExtension(canonical, picture.Name)
	if newName == picture.Name {
		summary.Record(RenameUnchanged, picture.ID, picture.Name, newName, "")
		return false
	}

	result := s.store.Move(ctx, picture.Name, newName)
	switch result.Outcome {
	case picstore.OutcomeSuccess:
		locator := result.Locator
		if locator == "" {
			locator = s.store.URLFor(newName)
		}
		if err := s.pictureRepo.UpdateNameAndLocator(ctx, nil, picture.ID, newName, locator); err != nil {
			summary.Record(RenameFailed, picture.ID, picture.Name, newName, fmt.Sprintf("db update: %v", err))
			return false
		}
		summary.Record(RenameRenamed, picture.ID, picture.Name, newName, "")
		return true
	case picstore.OutcomeNotFound:
		// The bytes are gone or were never there. Adopt the new name so the
		// catalog stays canonical, but keep the stale locator as the only
		// breadcrumb pointing at where the object used to live.
		if err := s.pictureRepo.UpdateName(ctx, nil, picture.ID, newName); err != nil {
			summary.Record(RenameFailed, picture.ID, picture.Name, newName, fmt.Sprintf("db update: %v", err))
			return false
		}
		s.log.Warn("remote object missing during rename, reconciled name only",
			"pictureID", picture.ID, "oldName", picture.Name, "newName", newName)
		summary.Record(RenameDBOnly, picture.ID, picture.Name, newName, "")
		return true
	default:
		reason := string(result.Outcome)
		if result.Detail != "" {
			reason = fmt.Sprintf("%s: %s", result.Outcome, result.Detail)
		}
		s.log.Error("remote move failed",
			"pictureID", picture.ID, "oldName", picture.Name, "newName", newName, "outcome", result.Outcome)
		summary.Record(RenameFailed, picture.ID, picture.Name, newName, reason)
		return false
	}
}

func (s *renameService) RenameOne(ctx context.Context, pictureID uuid.UUID, newName string) (RenameOutcome, error) {
	if err := picstore.ValidateName(newName); err != nil {
		return RenameFailed, err
	}
	picture, err := s.pictureRepo.GetByID(ctx, nil, pictureID)
	if err != nil {
		return RenameFailed, fmt.Errorf("load picture %s: %w", pictureID, err)
	}
	if newName == picture.Name {
		return RenameUnchanged, nil
	}

	result := s.store.Move(ctx, picture.Name, newName)
	switch result.Outcome {
	case picstore.OutcomeSuccess:
		locator := result.Locator
		if locator == "" {
			locator = s.store.URLFor(newName)
		}
		if err := s.pictureRepo.UpdateNameAndLocator(ctx, nil, pictureID, newName, locator); err != nil {
			return RenameFailed, fmt.Errorf("update picture %s: %w", pictureID, err)
		}
		return RenameRenamed, nil
	case picstore.OutcomeNotFound:
		if err := s.pictureRepo.UpdateName(ctx, nil, pictureID, newName); err != nil {
			return RenameFailed, fmt.Errorf("update picture %s: %w", pictureID, err)
		}
		return RenameDBOnly, nil
	default:
		return RenameFailed, fmt.Errorf("move %q to %q: %s", picture.Name, newName, result.Outcome)
	}
}

// withExtension carries the old name's file extension onto the canonical
// stem, so "old_2.jpg" renames to "<canonical>.jpg" and extensionless names
// stay extensionless.
func withExtension(canonical, oldName string) string {
	ext := path.Ext(oldName)
	return canonical + ext
}
