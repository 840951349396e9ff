package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/casavera/catalog-media-backend/internal/db"
	httpsrv "github.com/casavera/catalog-media-backend/internal/http"
	httpH "github.com/casavera/catalog-media-backend/internal/http/handlers"
	"github.com/casavera/catalog-media-backend/internal/jobs"
	"github.com/casavera/catalog-media-backend/internal/jobs/pipeline/picture_rename"
	jobrt "github.com/casavera/catalog-media-backend/internal/jobs/runtime"
	"github.com/casavera/catalog-media-backend/internal/observability"
	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/platform/picstore"
	"github.com/casavera/catalog-media-backend/internal/repos"
	"github.com/casavera/catalog-media-backend/internal/services"
	"github.com/casavera/catalog-media-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "catalog-media-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(shutdownCtx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Picture store
	storeCfg, err := picstore.ResolveConfigFromEnv(log)
	if err != nil {
		log.Error("Picture store config invalid", "error", err)
		os.Exit(1)
	}
	store, err := picstore.NewStore(ctx, log, storeCfg)
	if err != nil {
		log.Error("Could not init picture store", "error", err)
		os.Exit(1)
	}
	probeCtx, cancelProbe := context.WithTimeout(ctx, 10*time.Second)
	if _, res := store.List(probeCtx, "", 1); !res.OK() {
		log.Warn("Picture store probe failed", "backend", storeCfg.Backend, "outcome", res.Outcome, "detail", res.Detail)
	}
	cancelProbe()

	// Repos
	log.Info("Setting up repos from main...")
	supplierRepo := repos.NewSupplierRepo(thePG, log)
	colorRepo := repos.NewColorRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	variantRepo := repos.NewVariantRepo(thePG, log)
	pictureRepo := repos.NewPictureRepo(thePG, log)
	jobRunRepo := repos.NewJobRunRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	skuService, err := services.NewSKUService(log, variantRepo, productRepo)
	if err != nil {
		log.Error("Could not init SKUService", "error", err)
		os.Exit(1)
	}
	renameService, err := services.NewRenameService(log, store, productRepo, variantRepo, pictureRepo, skuService)
	if err != nil {
		log.Error("Could not init RenameService", "error", err)
		os.Exit(1)
	}
	pictureService, err := services.NewPictureService(log, store, productRepo, variantRepo, pictureRepo)
	if err != nil {
		log.Error("Could not init PictureService", "error", err)
		os.Exit(1)
	}
	productService, err := services.NewProductService(log, productRepo, supplierRepo)
	if err != nil {
		log.Error("Could not init ProductService", "error", err)
		os.Exit(1)
	}
	variantService, err := services.NewVariantService(log, variantRepo, productRepo, colorRepo, skuService)
	if err != nil {
		log.Error("Could not init VariantService", "error", err)
		os.Exit(1)
	}
	dispatchService, err := jobs.NewDispatchService(log, jobRunRepo)
	if err != nil {
		log.Error("Could not init DispatchService", "error", err)
		os.Exit(1)
	}

	// Job worker
	log.Info("Setting up job worker from main...")
	registry := jobrt.NewRegistry()
	if err := registry.Register(picture_rename.New(thePG, log, renameService)); err != nil {
		log.Error("Could not register picture_rename pipeline", "error", err)
		os.Exit(1)
	}
	worker := jobs.NewWorker(thePG, log, jobRunRepo, registry, jobs.DefaultWorkerConfig())
	worker.Start(ctx)

	// Handlers
	log.Info("Setting up handlers from main...")
	productHandler := httpH.NewProductHandler(log, productService, renameService, dispatchService)
	variantHandler := httpH.NewVariantHandler(log, variantService)
	pictureHandler := httpH.NewPictureHandler(log, pictureService, renameService)
	jobHandler := httpH.NewJobHandler(dispatchService)
	healthHandler := httpH.NewHealthHandler()

	// Router
	log.Info("Setting up router from main...")
	server := httpsrv.NewServer(httpsrv.RouterConfig{
		Log:            log,
		ProductHandler: productHandler,
		VariantHandler: variantHandler,
		PictureHandler: pictureHandler,
		JobHandler:     jobHandler,
		HealthHandler:  healthHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := server.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
