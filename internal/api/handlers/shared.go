package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondError sends a structured error payload with the given status code.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	errorResponse := map[string]string{"error": message}
	if err != nil {
		errorResponse["detail"] = err.Error()
	}
	respondJSON(w, status, errorResponse)
}

// respondServiceError maps service-layer errors to HTTP status codes:
// not-found sentinels become 404, validation sentinels 400, the rest 500.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	switch {
	case isNotFound(err):
		respondError(w, http.StatusNotFound, message, err)
	case isBadRequest(err):
		respondError(w, http.StatusBadRequest, message, err)
	default:
		respondError(w, http.StatusInternalServerError, message, err)
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrFundNotFound,
		apperrors.ErrContributorNotFound,
		apperrors.ErrArticleNotFound,
		apperrors.ErrSnapshotNotFound,
		apperrors.ErrCredentialNotFound,
		apperrors.ErrJobNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isBadRequest(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrInvalidDateRange,
		apperrors.ErrInvalidUUID,
		apperrors.ErrInvalidTicker,
		apperrors.ErrInvalidThreshold,
		apperrors.ErrInvalidLookbackWindow,
		apperrors.ErrEmptyID,
		apperrors.ErrEmptyBatch,
		apperrors.ErrNegativeAmount,
		apperrors.ErrMissingRequiredField,
		apperrors.ErrDuplicateEntry,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
