package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type DeleteListingUseCase struct {
	builder *domain.Builder
	storage port.ListingStoragePort
	cache   port.ListingCachePort
	events  port.ListingEventsPort
	eventID func() string
}

func NewDeleteListingUseCase(builder *domain.Builder, storage port.ListingStoragePort, cache port.ListingCachePort, events port.ListingEventsPort) *DeleteListingUseCase {
	return &DeleteListingUseCase{
		builder: builder,
		storage: storage,
		cache:   cache,
		events:  events,
		eventID: newEventID,
	}
}

func (uc *DeleteListingUseCase) Execute(ctx context.Context, listingID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.storage.Delete(ctx, listingID); err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return err
	}

	invalidateCache(ctx, uc.cache, listingID, ucLogger)

	event := domain.NewListingChangedEvent(uc.eventID(), domain.ListingDeleted, listingID, "", nil, uc.builder.Now())
	publishEvent(ctx, uc.events, event, ucLogger)

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
