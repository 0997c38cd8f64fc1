package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/auth"
	"github.com/veridata-labs/catalog-engine/pkg/config"
	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/handlers"
	"github.com/veridata-labs/catalog-engine/pkg/middleware"
	"github.com/veridata-labs/catalog-engine/pkg/repositories"
	"github.com/veridata-labs/catalog-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("data_dir", cfg.Store.DataDir),
		zap.String("seed_path", cfg.Seed.Path),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification))

	store, err := docstore.NewFileStore(cfg.Store.DataDir, logger)
	if err != nil {
		logger.Fatal("failed to open document store", zap.Error(err))
	}

	furnisherRepo := repositories.NewFurnisherRepository()
	dataTypeRepo := repositories.NewDataTypeRepository()
	attributeRepo := repositories.NewAttributeRepository()
	configRepo := repositories.NewConfigRepository()
	categoryRepo := repositories.NewCategoryRepository()

	catalogService := services.NewCatalogService(
		store, furnisherRepo, dataTypeRepo, attributeRepo,
		services.NewUUIDGenerator(), auth.Identity, logger)
	seedService := services.NewSeedService(
		store, furnisherRepo, dataTypeRepo, attributeRepo,
		cfg.Seed.Path, cfg.Seed.SyncSecret, logger)
	searchService := services.NewSearchService(
		store, furnisherRepo, dataTypeRepo, attributeRepo, logger)
	registryService := services.NewRegistryService(
		store, configRepo, categoryRepo, dataTypeRepo, logger)

	// First use of a never-materialized store populates it from the seed
	// document; on every later start this is a no-op.
	if _, err := seedService.Initialize(context.Background()); err != nil {
		logger.Fatal("failed to initialize catalogue from seed", zap.Error(err))
	}

	authMiddleware := auth.NewMiddleware(cfg.Auth.TokenSecret, cfg.Auth.EnableVerification, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewFurnisherHandler(catalogService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewDataTypeHandler(catalogService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewAttributeHandler(catalogService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewSearchHandler(searchService, logger).RegisterRoutes(mux)
	handlers.NewRegistryHandler(registryService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewCatalogAdminHandler(catalogService, seedService, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("starting catalog-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
