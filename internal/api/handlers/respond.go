package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
)

// userIDHeader carries the caller identity injected by the hosting
// gateway. Authentication happens upstream of this service.
const userIDHeader = "X-User-ID"

func callerID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}

// errorCodes maps internal error types to the stable codes clients
// switch on.
var errorCodes = map[apperrors.ErrorType]string{
	apperrors.ErrorTypeValidation:   "validation_failed",
	apperrors.ErrorTypeNotFound:     "not_found",
	apperrors.ErrorTypeUnauthorized: "unauthorized",
	apperrors.ErrorTypeForbidden:    "forbidden",
	apperrors.ErrorTypeConflict:     "already_processing",
	apperrors.ErrorTypeRateLimited:  "retry_too_soon",
	apperrors.ErrorTypeExternal:     "upstream_error",
}

var errorStatus = map[apperrors.ErrorType]int{
	apperrors.ErrorTypeValidation:   http.StatusBadRequest,
	apperrors.ErrorTypeNotFound:     http.StatusNotFound,
	apperrors.ErrorTypeUnauthorized: http.StatusUnauthorized,
	apperrors.ErrorTypeForbidden:    http.StatusForbidden,
	apperrors.ErrorTypeConflict:     http.StatusConflict,
	apperrors.ErrorTypeRateLimited:  http.StatusTooManyRequests,
	apperrors.ErrorTypeExternal:     http.StatusBadGateway,
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		status, known := errorStatus[appErr.Type]
		if !known {
			respondWithError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		respondWithJSON(w, status, map[string]string{
			"error": appErr.Message,
			"code":  errorCodes[appErr.Type],
		})
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
