package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/apperrors"
)

// ApiResponse is the envelope every handler returns.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(ApiResponse{
		Success: false,
		Error:   errorCode,
		Message: message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps a service error onto the HTTP taxonomy:
// validation and name conflicts are 400, id conflicts 409, missing
// records 404, bad secrets 401, delete protection 400, everything else
// 500 with the message surfaced verbatim.
func WriteServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var status int
	var code string
	switch {
	case apperrors.IsValidation(err):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperrors.ErrDuplicateName):
		status, code = http.StatusBadRequest, "duplicate_name"
	case errors.Is(err, apperrors.ErrInUse):
		status, code = http.StatusBadRequest, "in_use"
	case errors.Is(err, apperrors.ErrDuplicateID):
		status, code = http.StatusConflict, "duplicate_id"
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "unauthorized"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
		logger.Error("request failed", zap.Error(err))
	}
	if werr := ErrorResponse(w, status, code, err.Error()); werr != nil {
		logger.Error("Failed to write error response", zap.Error(werr))
	}
}
