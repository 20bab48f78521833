package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// CreateListingUseCase строит запись из входных данных, сохраняет её и сообщает о создании
type CreateListingUseCase struct {
	builder *domain.Builder
	storage port.ListingStoragePort
	events  port.ListingEventsPort
	eventID func() string
}

// NewCreateListingUseCase создает новый экземпляр use case; events может быть nil
func NewCreateListingUseCase(builder *domain.Builder, storage port.ListingStoragePort, events port.ListingEventsPort) *CreateListingUseCase {
	return &CreateListingUseCase{
		builder: builder,
		storage: storage,
		events:  events,
		eventID: newEventID,
	}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, raw domain.RawListing, postedBy string) (*domain.CreationSummary, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "CreateListing",
		"posted_by": postedBy,
	})

	ucLogger.Info("Use case started", nil)

	rec, err := uc.builder.Build(raw)
	if err != nil {
		ucLogger.Warn("Listing rejected by validation", validationFields(err))
		return nil, err
	}

	listingID, err := uc.storage.Create(ctx, rec.ToStorageRecord(postedBy))
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, fmt.Errorf("failed to store listing: %w", err)
	}
	ucLogger = ucLogger.WithFields(port.Fields{"listing_id": listingID})

	event := domain.NewListingChangedEvent(uc.eventID(), domain.ListingCreated, listingID, postedBy, rec, uc.builder.Now())
	publishEvent(ctx, uc.events, event, ucLogger)

	summary := rec.ToCreationSummary(listingID)
	ucLogger.Info("Use case finished successfully", nil)
	return &summary, nil
}
