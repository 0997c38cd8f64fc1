package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/auth"
	"github.com/veridata-labs/catalog-engine/pkg/models"
	"github.com/veridata-labs/catalog-engine/pkg/services"
)

// ConfigListResponse for GET /api/configs
type ConfigListResponse struct {
	Configs []*models.DataTypeConfig `json:"dataTypeConfigs"`
	Total   int                      `json:"total"`
}

// CategoryListResponse for GET /api/categories
type CategoryListResponse struct {
	Categories []*models.Category `json:"categories"`
	Total      int                `json:"total"`
}

// CreateCategoryRequest for POST /api/categories
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// RegistryHandler handles DataTypeConfig and Category HTTP requests.
type RegistryHandler struct {
	registry services.RegistryService
	logger   *zap.Logger
}

// NewRegistryHandler creates a new registry handler.
func NewRegistryHandler(registry services.RegistryService, logger *zap.Logger) *RegistryHandler {
	return &RegistryHandler{registry: registry, logger: logger}
}

// RegisterRoutes registers the registry routes on the given mux.
func (h *RegistryHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/configs", h.ListConfigs)
	mux.HandleFunc("POST /api/configs", authMiddleware.RequireUser(h.CreateConfig))
	mux.HandleFunc("PATCH /api/configs/{cid}", authMiddleware.RequireUser(h.UpdateConfig))
	mux.HandleFunc("DELETE /api/configs/{cid}", authMiddleware.RequireUser(h.DeleteConfig))
	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("POST /api/categories", authMiddleware.RequireUser(h.CreateCategory))
}

// ListConfigs handles GET /api/configs
func (h *RegistryHandler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.registry.ListConfigs(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	response := ConfigListResponse{Configs: configs, Total: len(configs)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateConfig handles POST /api/configs
func (h *RegistryHandler) CreateConfig(w http.ResponseWriter, r *http.Request) {
	var input models.CreateConfigInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	config, err := h.registry.CreateConfig(r.Context(), input)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: config}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateConfig handles PATCH /api/configs/{cid}
func (h *RegistryHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateConfigInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	config, err := h.registry.UpdateConfig(r.Context(), r.PathValue("cid"), input)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: config}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteConfig handles DELETE /api/configs/{cid}
func (h *RegistryHandler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.DeleteConfig(r.Context(), r.PathValue("cid")); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListCategories handles GET /api/categories
func (h *RegistryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.registry.ListCategories(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	response := CategoryListResponse{Categories: categories, Total: len(categories)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateCategory handles POST /api/categories
func (h *RegistryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	category, err := h.registry.CreateCategory(r.Context(), req.Name)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: category}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
