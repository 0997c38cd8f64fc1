package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/services"
)

// SearchHandler handles cross-collection catalogue search.
type SearchHandler struct {
	search services.SearchService
	logger *zap.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(search services.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: logger}
}

// RegisterRoutes registers the search route on the given mux. Search is
// public.
func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/search", h.Search)
}

// Search handles GET /api/search?q=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
