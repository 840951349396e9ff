package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casavera/catalog-media-backend/internal/http/response"
	"github.com/casavera/catalog-media-backend/internal/jobs"
	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/services"
)

type ProductHandler struct {
	log      *logger.Logger
	products services.ProductService
	rename   services.RenameService
	dispatch jobs.DispatchService
}

func NewProductHandler(baseLog *logger.Logger, products services.ProductService, rename services.RenameService, dispatch jobs.DispatchService) *ProductHandler {
	return &ProductHandler{
		log:      baseLog.With("handler", "ProductHandler"),
		products: products,
		rename:   rename,
		dispatch: dispatch,
	}
}

type createProductRequest struct {
	ProductNumber string    `json:"productNumber" binding:"required"`
	SupplierID    uuid.UUID `json:"supplierId" binding:"required"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	product, err := h.products.Create(c.Request.Context(), services.CreateProductInput{
		ProductNumber: req.ProductNumber,
		SupplierID:    req.SupplierID,
		Name:          req.Name,
		Description:   req.Description,
	})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_product_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"product": product})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	product, err := h.products.Get(c.Request.Context(), productID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "product_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"product": product})
}

type updateProductRequest struct {
	ProductNumber *string    `json:"productNumber"`
	SupplierID    *uuid.UUID `json:"supplierId"`
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
}

// PATCH /api/products/:id
// Identity changes invalidate canonical picture names, so a rename cascade
// job is queued and returned alongside the updated product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	product, identityChanged, err := h.products.Update(c.Request.Context(), productID, services.UpdateProductInput{
		ProductNumber: req.ProductNumber,
		SupplierID:    req.SupplierID,
		Name:          req.Name,
		Description:   req.Description,
	})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_product_failed", err)
		return
	}

	payload := gin.H{"product": product}
	if identityChanged {
		job, err := h.dispatch.EnqueuePictureRename(c.Request.Context(), nil, productID)
		if err != nil {
			h.log.Error("failed to enqueue rename cascade", "product_id", productID, "error", err)
		} else {
			payload["renameJob"] = job
		}
	}
	response.RespondOK(c, payload)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	if err := h.products.Delete(c.Request.Context(), productID); err != nil {
		response.RespondError(c, http.StatusBadRequest, "delete_product_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// POST /api/products/:id/rename-pictures
// Synchronous variant of the cascade for callers that want the summary
// inline instead of polling a job.
func (h *ProductHandler) RenamePictures(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	summary, err := h.rename.RenameAllForProduct(c.Request.Context(), productID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "rename_cascade_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"summary": summary})
}
