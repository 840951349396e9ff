package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/repos"
	"github.com/casavera/catalog-media-backend/internal/types"
)

// ProductService covers catalog CRUD and flags identity changes so callers
// can kick off the picture rename cascade afterwards.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*types.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Product, error)
	// Update applies the patch and reports whether an identity field
	// (product number or supplier) changed, which invalidates canonical
	// picture names and variant SKUs.
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*types.Product, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateProductInput struct {
	ProductNumber string
	SupplierID    uuid.UUID
	Name          string
	Description   string
}

type UpdateProductInput struct {
	ProductNumber *string
	SupplierID    *uuid.UUID
	Name          *string
	Description   *string
}

type productService struct {
	log          *logger.Logger
	productRepo  repos.ProductRepo
	supplierRepo repos.SupplierRepo
}

func NewProductService(baseLog *logger.Logger, productRepo repos.ProductRepo, supplierRepo repos.SupplierRepo) (ProductService, error) {
	if productRepo == nil || supplierRepo == nil {
		return nil, fmt.Errorf("NewProductService: nil repo")
	}
	return &productService{
		log:          baseLog.With("service", "ProductService"),
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}, nil
}

func (s *productService) Create(ctx context.Context, input CreateProductInput) (*types.Product, error) {
	if input.ProductNumber == "" {
		return nil, fmt.Errorf("create product: empty product number")
	}
	if _, err := s.supplierRepo.GetByID(ctx, nil, input.SupplierID); err != nil {
		return nil, fmt.Errorf("load supplier %s: %w", input.SupplierID, err)
	}
	product := &types.Product{
		ProductNumber: input.ProductNumber,
		SupplierID:    input.SupplierID,
		Name:          input.Name,
		Description:   input.Description,
	}
	created, err := s.productRepo.Create(ctx, nil, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.productRepo.GetByID(ctx, nil, created.ID)
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	return s.productRepo.GetDetail(ctx, nil, id)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*types.Product, bool, error) {
	product, err := s.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, false, fmt.Errorf("load product %s: %w", id, err)
	}

	identityChanged := false
	if input.ProductNumber != nil && *input.ProductNumber != product.ProductNumber {
		product.ProductNumber = *input.ProductNumber
		identityChanged = true
	}
	if input.SupplierID != nil && *input.SupplierID != product.SupplierID {
		if _, err := s.supplierRepo.GetByID(ctx, nil, *input.SupplierID); err != nil {
			return nil, false, fmt.Errorf("load supplier %s: %w", *input.SupplierID, err)
		}
		product.SupplierID = *input.SupplierID
		product.Supplier = nil
		identityChanged = true
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}

	if err := s.productRepo.Update(ctx, nil, product); err != nil {
		return nil, false, fmt.Errorf("update product %s: %w", id, err)
	}
	updated, err := s.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, false, err
	}
	if identityChanged {
		s.log.Info("product identity changed", "productID", id)
	}
	return updated, identityChanged, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.SoftDeleteByID(ctx, nil, id)
}
