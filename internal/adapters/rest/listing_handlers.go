package rest

import (
	"encoding/json"
	"net/http"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ListingHandler struct {
	createUC    usecases_port.CreateListingUseCase
	updateUC    usecases_port.UpdateListingUseCase
	detailsUC   usecases_port.GetListingDetailsUseCase
	listUC      usecases_port.ListListingsUseCase
	proximityUC usecases_port.GetListingProximityUseCase
	deleteUC    usecases_port.DeleteListingUseCase
}

func NewListingHandler(createUC usecases_port.CreateListingUseCase,
	updateUC usecases_port.UpdateListingUseCase,
	detailsUC usecases_port.GetListingDetailsUseCase,
	listUC usecases_port.ListListingsUseCase,
	proximityUC usecases_port.GetListingProximityUseCase,
	deleteUC usecases_port.DeleteListingUseCase) *ListingHandler {
	return &ListingHandler{
		createUC:    createUC,
		updateUC:    updateUC,
		detailsUC:   detailsUC,
		listUC:      listUC,
		proximityUC: proximityUC,
		deleteUC:    deleteUC,
	}
}

// decodeRawListing читает тело запроса как JSON-объект
func decodeRawListing(w http.ResponseWriter, r *http.Request) (domain.RawListing, error) {
	var raw domain.RawListing
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = domain.RawListing{}
	}
	return raw, nil
}

// CreateListing обрабатывает POST /api/v1/listings
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateListing"})

	userID, ok := contextkeys.UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	raw, err := decodeRawListing(w, r)
	if err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Request body must be a JSON object")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": userID.String()})
	handlerLogger.Debug("Processing request to create listing", nil)

	summary, err := h.createUC.Execute(r.Context(), raw, userID.String())
	if err != nil {
		writeUseCaseError(w, handlerLogger, err)
		return
	}

	handlerLogger.Info("Listing created", port.Fields{"listing_id": summary.ListingID})
	RespondWithJSON(w, http.StatusCreated, summary)
}

// ListListings обрабатывает GET /api/v1/listings
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListListings"})

	limit, err := GetLimitOrDefault(r, 0)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid limit parameter")
		return
	}
	offset, err := GetOffsetOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid offset parameter")
		return
	}

	query := r.URL.Query()
	filter := domain.ListingFilter{
		ListingGoal: query.Get("goal"),
		PostedBy:    query.Get("postedBy"),
	}
	if filter.ListingGoal != "" {
		goal, ok := domain.ParseListingGoal(filter.ListingGoal)
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Unknown listing goal", Code: CodeInvalidValue, Field: "goal"})
			return
		}
		filter.ListingGoal = string(goal)
	}

	page, err := h.listUC.Execute(r.Context(), filter, limit, offset)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, page)
}

// GetListingDetails обрабатывает GET /api/v1/listings/{listingID}
func (h *ListingHandler) GetListingDetails(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    "GetListingDetails",
		"listing_id": listingID,
	})

	view, err := h.detailsUC.Execute(r.Context(), listingID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, view)
}

// UpdateListing обрабатывает PATCH /api/v1/listings/{listingID}
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    "UpdateListing",
		"listing_id": listingID,
	})

	patch, err := decodeRawListing(w, r)
	if err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Request body must be a JSON object")
		return
	}

	view, err := h.updateUC.Execute(r.Context(), listingID, patch)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, view)
}

// DeleteListing обрабатывает DELETE /api/v1/listings/{listingID}
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    "DeleteListing",
		"listing_id": listingID,
	})

	if err := h.deleteUC.Execute(r.Context(), listingID); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetListingProximity обрабатывает GET /api/v1/listings/{listingID}/proximity
func (h *ListingHandler) GetListingProximity(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    "GetListingProximity",
		"listing_id": listingID,
	})

	summary, err := h.proximityUC.Execute(r.Context(), listingID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, summary)
}
