package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/auth"
	"github.com/veridata-labs/catalog-engine/pkg/models"
	"github.com/veridata-labs/catalog-engine/pkg/services"
)

// DataTypeListResponse for GET /api/datatypes
type DataTypeListResponse struct {
	DataTypes []*models.DataType `json:"dataTypes"`
	Total     int                `json:"total"`
}

// DataTypeHandler handles data type HTTP requests.
type DataTypeHandler struct {
	catalog services.CatalogService
	logger  *zap.Logger
}

// NewDataTypeHandler creates a new data type handler.
func NewDataTypeHandler(catalog services.CatalogService, logger *zap.Logger) *DataTypeHandler {
	return &DataTypeHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the data type routes on the given mux.
func (h *DataTypeHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/datatypes", h.List)
	mux.HandleFunc("GET /api/datatypes/{dtid}", h.Get)
	mux.HandleFunc("POST /api/datatypes", authMiddleware.RequireUser(h.Create))
	mux.HandleFunc("PATCH /api/datatypes/{dtid}", authMiddleware.RequireUser(h.Update))
	mux.HandleFunc("DELETE /api/datatypes/{dtid}", authMiddleware.RequireUser(h.Delete))
}

// List handles GET /api/datatypes?furnisherId=
func (h *DataTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	dataTypes, err := h.catalog.ListDataTypes(r.Context(), r.URL.Query().Get("furnisherId"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	response := DataTypeListResponse{DataTypes: dataTypes, Total: len(dataTypes)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/datatypes/{dtid}
func (h *DataTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.GetDataType(r.Context(), r.PathValue("dtid"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: detail}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/datatypes
func (h *DataTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CreateDataTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dataType, err := h.catalog.CreateDataType(r.Context(), input)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: dataType}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /api/datatypes/{dtid}
func (h *DataTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateDataTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dataType, err := h.catalog.UpdateDataType(r.Context(), r.PathValue("dtid"), input)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: dataType}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/datatypes/{dtid}
func (h *DataTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteDataType(r.Context(), r.PathValue("dtid")); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
