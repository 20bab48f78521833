package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// UpdateListingUseCase накладывает частичные изменения на сохранённое объявление.
// Запись перестраивается целиком; при ошибке валидации хранилище не меняется.
type UpdateListingUseCase struct {
	builder *domain.Builder
	storage port.ListingStoragePort
	cache   port.ListingCachePort
	events  port.ListingEventsPort
	eventID func() string
}

func NewUpdateListingUseCase(builder *domain.Builder, storage port.ListingStoragePort, cache port.ListingCachePort, events port.ListingEventsPort) *UpdateListingUseCase {
	return &UpdateListingUseCase{
		builder: builder,
		storage: storage,
		cache:   cache,
		events:  events,
		eventID: newEventID,
	}
}

func (uc *UpdateListingUseCase) Execute(ctx context.Context, listingID string, patch domain.RawListing) (*domain.DetailView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateListing",
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", port.Fields{"patched_fields": len(patch)})

	stored, err := uc.storage.Get(ctx, listingID)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	rec, err := uc.builder.Rebuild(stored.Data, patch)
	if err != nil {
		ucLogger.Warn("Update rejected by validation", validationFields(err))
		return nil, err
	}

	if err := uc.storage.Update(ctx, listingID, rec.ToStorageRecord(stored.PostedBy)); err != nil {
		ucLogger.Error("Storage returned an error during update", err, nil)
		return nil, fmt.Errorf("failed to update listing %s: %w", listingID, err)
	}

	invalidateCache(ctx, uc.cache, listingID, ucLogger)

	event := domain.NewListingChangedEvent(uc.eventID(), domain.ListingUpdated, listingID, stored.PostedBy, rec, rec.UpdatedAt)
	publishEvent(ctx, uc.events, event, ucLogger)

	view := rec.ToDetailView(listingID, stored.PostedBy)
	ucLogger.Info("Use case finished successfully", nil)
	return &view, nil
}
