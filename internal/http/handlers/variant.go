package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casavera/catalog-media-backend/internal/http/response"
	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/services"
)

type VariantHandler struct {
	log      *logger.Logger
	variants services.VariantService
}

func NewVariantHandler(baseLog *logger.Logger, variants services.VariantService) *VariantHandler {
	return &VariantHandler{
		log:      baseLog.With("handler", "VariantHandler"),
		variants: variants,
	}
}

type createVariantRequest struct {
	ColorID uuid.UUID `json:"colorId" binding:"required"`
}

// POST /api/products/:id/variants
func (h *VariantHandler) CreateVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	var req createVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	variant, err := h.variants.Create(c.Request.Context(), services.CreateVariantInput{
		ProductID: productID,
		ColorID:   req.ColorID,
	})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_variant_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"variant": variant})
}

// DELETE /api/variants/:id
func (h *VariantHandler) DeleteVariant(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_variant_id", err)
		return
	}
	if err := h.variants.Delete(c.Request.Context(), variantID); err != nil {
		response.RespondError(c, http.StatusBadRequest, "delete_variant_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
