package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetListingProximityUseCase struct {
	builder *domain.Builder
	storage port.ListingStoragePort
}

func NewGetListingProximityUseCase(builder *domain.Builder, storage port.ListingStoragePort) *GetListingProximityUseCase {
	return &GetListingProximityUseCase{builder: builder, storage: storage}
}

func (uc *GetListingProximityUseCase) Execute(ctx context.Context, listingID string) (*domain.ProximitySummary, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListingProximity",
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	_, rec, err := loadRecord(ctx, uc.storage, uc.builder, listingID)
	if err != nil {
		ucLogger.Error("Failed to load listing", err, nil)
		return nil, err
	}

	summary := domain.AggregateProximity(rec)

	ucLogger.Info("Use case finished successfully", nil)
	return &summary, nil
}
