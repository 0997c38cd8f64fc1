package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/services"
)

// SyncSecretHeader carries the shared secret guarding seed sync.
const SyncSecretHeader = "X-Sync-Secret"

// CatalogAdminHandler handles export and seed sync.
type CatalogAdminHandler struct {
	catalog services.CatalogService
	seed    services.SeedService
	logger  *zap.Logger
}

// NewCatalogAdminHandler creates a new catalog admin handler.
func NewCatalogAdminHandler(catalog services.CatalogService, seed services.SeedService, logger *zap.Logger) *CatalogAdminHandler {
	return &CatalogAdminHandler{catalog: catalog, seed: seed, logger: logger}
}

// RegisterRoutes registers export and sync routes on the given mux.
// Sync is guarded by the shared secret, not the bearer middleware.
func (h *CatalogAdminHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/export", h.Export)
	mux.HandleFunc("POST /api/seed/sync", h.Sync)
}

// Export handles GET /api/export
func (h *CatalogAdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.catalog.Export(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, doc); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Sync handles POST /api/seed/sync
func (h *CatalogAdminHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.seed.Sync(r.Context(), r.Header.Get(SyncSecretHeader))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
