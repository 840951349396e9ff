package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casavera/catalog-media-backend/internal/http/response"
	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/services"
)

// maxUploadBytes caps a single picture upload.
const maxUploadBytes = 32 << 20

type PictureHandler struct {
	log      *logger.Logger
	pictures services.PictureService
	rename   services.RenameService
}

func NewPictureHandler(baseLog *logger.Logger, pictures services.PictureService, rename services.RenameService) *PictureHandler {
	return &PictureHandler{
		log:      baseLog.With("handler", "PictureHandler"),
		pictures: pictures,
		rename:   rename,
	}
}

// POST /api/pictures
// Multipart upload. Required form fields: "file" and "productId"; optional
// "variantId" scopes the picture to a variant, optional "alt" sets alt text.
func (h *PictureHandler) UploadPicture(c *gin.Context) {
	productID, err := uuid.Parse(c.PostForm("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large",
			fmt.Errorf("file exceeds %d bytes", maxUploadBytes))
		return
	}

	var variantID *uuid.UUID
	if raw := c.PostForm("variantId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_variant_id", err)
			return
		}
		variantID = &id
	}
	var alt *string
	if raw := c.PostForm("alt"); raw != "" {
		alt = &raw
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	picture, err := h.pictures.Upload(c.Request.Context(), services.UploadPictureInput{
		ProductID:   productID,
		VariantID:   variantID,
		Data:        data,
		ContentType: contentType,
		Alt:         alt,
	})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "upload_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"picture": picture})
}

// GET /api/products/:id/pictures
func (h *PictureHandler) ListPictures(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	pictures, err := h.pictures.ListForProduct(c.Request.Context(), productID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "list_pictures_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"pictures": pictures})
}

// DELETE /api/pictures/:id
func (h *PictureHandler) DeletePicture(c *gin.Context) {
	pictureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_picture_id", err)
		return
	}
	if err := h.pictures.Delete(c.Request.Context(), pictureID); err != nil {
		response.RespondError(c, http.StatusBadRequest, "delete_picture_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

type renamePictureRequest struct {
	NewName string `json:"newName" binding:"required"`
}

// POST /api/pictures/:id/rename
func (h *PictureHandler) RenamePicture(c *gin.Context) {
	pictureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_picture_id", err)
		return
	}
	var req renamePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	outcome, err := h.rename.RenameOne(c.Request.Context(), pictureID, req.NewName)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "rename_picture_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"outcome": outcome})
}

// POST /api/pictures/:id/primary
func (h *PictureHandler) SetPrimary(c *gin.Context) {
	pictureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_picture_id", err)
		return
	}
	if err := h.pictures.SetPrimary(c.Request.Context(), pictureID); err != nil {
		response.RespondError(c, http.StatusBadRequest, "set_primary_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"primary": true})
}

type reorderPicturesRequest struct {
	PictureIDs []uuid.UUID `json:"pictureIds" binding:"required"`
}

// POST /api/products/:id/pictures/reorder
func (h *PictureHandler) ReorderPictures(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	var req reorderPicturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.pictures.Reorder(c.Request.Context(), productID, req.PictureIDs); err != nil {
		response.RespondError(c, http.StatusBadRequest, "reorder_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"reordered": true})
}
