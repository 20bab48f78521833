package rest

import (
	"errors"
	"net/http"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

const (
	CodeMissingField      = "missing_field"
	CodeInvalidValue      = "invalid_value"
	CodeNotFound          = "not_found"
	CodeUnreadableListing = "listing_unreadable"
	CodeBadRequest        = "bad_request"
	CodeUnauthorized      = "unauthorized"
	CodeInternal          = "internal_error"
)

// writeUseCaseError переводит ошибку use case в HTTP-ответ
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	field, _ := domain.FieldOf(err)

	switch {
	case errors.Is(err, domain.ErrMissingField):
		logger.Warn("Request rejected by validation", port.Fields{"error": err.Error(), "field": field})
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeMissingField, Field: field})
	case errors.Is(err, domain.ErrInvalidValue):
		logger.Warn("Request rejected by validation", port.Fields{"error": err.Error(), "field": field})
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidValue, Field: field})
	case errors.Is(err, domain.ErrListingNotFound):
		logger.Info("Listing not found", nil)
		writeErrorResponse(w, http.StatusNotFound, ErrorResponse{Error: "Listing not found", Code: CodeNotFound})
	case errors.Is(err, domain.ErrListingUnreadable):
		logger.Error("Stored listing is unreadable", err, nil)
		writeErrorResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "Stored listing cannot be read", Code: CodeUnreadableListing, Field: field})
	default:
		logger.Error("Use case failed", err, nil)
		writeErrorResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: CodeInternal})
	}
}
