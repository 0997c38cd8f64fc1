package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/auth"
	"github.com/veridata-labs/catalog-engine/pkg/models"
	"github.com/veridata-labs/catalog-engine/pkg/services"
)

// FurnisherListResponse for GET /api/furnishers
type FurnisherListResponse struct {
	Furnishers []*models.FurnisherWithStats `json:"furnishers"`
	Total      int                          `json:"total"`
}

// FurnisherHandler handles furnisher HTTP requests.
type FurnisherHandler struct {
	catalog services.CatalogService
	logger  *zap.Logger
}

// NewFurnisherHandler creates a new furnisher handler.
func NewFurnisherHandler(catalog services.CatalogService, logger *zap.Logger) *FurnisherHandler {
	return &FurnisherHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the furnisher routes on the given mux.
// Reads are public; mutations require an authenticated caller.
func (h *FurnisherHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/furnishers", h.List)
	mux.HandleFunc("GET /api/furnishers/{fid}", h.Get)
	mux.HandleFunc("POST /api/furnishers", authMiddleware.RequireUser(h.Create))
	mux.HandleFunc("PATCH /api/furnishers/{fid}", authMiddleware.RequireUser(h.Update))
	mux.HandleFunc("DELETE /api/furnishers/{fid}", authMiddleware.RequireUser(h.Delete))
}

// List handles GET /api/furnishers
func (h *FurnisherHandler) List(w http.ResponseWriter, r *http.Request) {
	furnishers, err := h.catalog.ListFurnishers(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	response := FurnisherListResponse{Furnishers: furnishers, Total: len(furnishers)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/furnishers/{fid}
func (h *FurnisherHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.GetFurnisher(r.Context(), r.PathValue("fid"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: detail}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/furnishers
func (h *FurnisherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CreateFurnisherInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	furnisher, err := h.catalog.CreateFurnisher(r.Context(), input)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: furnisher}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /api/furnishers/{fid}
func (h *FurnisherHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateFurnisherInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	furnisher, err := h.catalog.UpdateFurnisher(r.Context(), r.PathValue("fid"), input)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: furnisher}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/furnishers/{fid}
func (h *FurnisherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteFurnisher(r.Context(), r.PathValue("fid")); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
