package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/auth"
	"github.com/veridata-labs/catalog-engine/pkg/models"
	"github.com/veridata-labs/catalog-engine/pkg/services"
)

// BulkCreateAttributesRequest for POST /api/datatypes/{dtid}/attributes/bulk
type BulkCreateAttributesRequest struct {
	Items []models.BulkAttributeItem `json:"items"`
}

// AttributeHandler handles attribute HTTP requests.
type AttributeHandler struct {
	catalog services.CatalogService
	logger  *zap.Logger
}

// NewAttributeHandler creates a new attribute handler.
func NewAttributeHandler(catalog services.CatalogService, logger *zap.Logger) *AttributeHandler {
	return &AttributeHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the attribute routes on the given mux.
func (h *AttributeHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/attributes/{aid}", h.Get)
	mux.HandleFunc("POST /api/attributes", authMiddleware.RequireUser(h.Create))
	mux.HandleFunc("POST /api/datatypes/{dtid}/attributes/bulk", authMiddleware.RequireUser(h.BulkCreate))
	mux.HandleFunc("PATCH /api/attributes/{aid}", authMiddleware.RequireUser(h.Update))
	mux.HandleFunc("DELETE /api/attributes/{aid}", authMiddleware.RequireUser(h.Delete))
}

// Get handles GET /api/attributes/{aid}
func (h *AttributeHandler) Get(w http.ResponseWriter, r *http.Request) {
	attribute, err := h.catalog.GetAttribute(r.Context(), r.PathValue("aid"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: attribute}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/attributes
func (h *AttributeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CreateAttributeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	attribute, err := h.catalog.CreateAttribute(r.Context(), input)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: attribute}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// BulkCreate handles POST /api/datatypes/{dtid}/attributes/bulk.
// The batch is best-effort: invalid and colliding items are reported as
// skipped rather than failing the request.
func (h *AttributeHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateAttributesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.catalog.BulkCreateAttributes(r.Context(), r.PathValue("dtid"), req.Items)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /api/attributes/{aid}
func (h *AttributeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateAttributeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	attribute, err := h.catalog.UpdateAttribute(r.Context(), r.PathValue("aid"), input)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: attribute}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/attributes/{aid}
func (h *AttributeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteAttribute(r.Context(), r.PathValue("aid")); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
