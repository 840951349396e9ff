package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/casavera/catalog-media-backend/internal/http/handlers"
	httpMW "github.com/casavera/catalog-media-backend/internal/http/middleware"
	"github.com/casavera/catalog-media-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	ProductHandler *httpH.ProductHandler
	VariantHandler *httpH.VariantHandler
	PictureHandler *httpH.PictureHandler
	JobHandler     *httpH.JobHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("catalog-media-backend"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Products
		if cfg.ProductHandler != nil {
			api.POST("/products", cfg.ProductHandler.CreateProduct)
			api.GET("/products/:id", cfg.ProductHandler.GetProduct)
			api.PATCH("/products/:id", cfg.ProductHandler.UpdateProduct)
			api.DELETE("/products/:id", cfg.ProductHandler.DeleteProduct)
			api.POST("/products/:id/rename-pictures", cfg.ProductHandler.RenamePictures)
		}

		// Variants
		if cfg.VariantHandler != nil {
			api.POST("/products/:id/variants", cfg.VariantHandler.CreateVariant)
			api.DELETE("/variants/:id", cfg.VariantHandler.DeleteVariant)
		}

		// Pictures
		if cfg.PictureHandler != nil {
			api.POST("/pictures", cfg.PictureHandler.UploadPicture)
			api.GET("/products/:id/pictures", cfg.PictureHandler.ListPictures)
			api.DELETE("/pictures/:id", cfg.PictureHandler.DeletePicture)
			api.POST("/pictures/:id/rename", cfg.PictureHandler.RenamePicture)
			api.POST("/pictures/:id/primary", cfg.PictureHandler.SetPrimary)
			api.POST("/products/:id/pictures/reorder", cfg.PictureHandler.ReorderPictures)
		}

		// Jobs
		if cfg.JobHandler != nil {
			api.GET("/jobs/:id", cfg.JobHandler.GetJob)
		}
	}

	return r
}
