package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// GetListingDetailsUseCase отдаёт детальное представление: сначала из кэша, затем из хранилища
type GetListingDetailsUseCase struct {
	builder *domain.Builder
	storage port.ListingStoragePort
	cache   port.ListingCachePort
}

// NewGetListingDetailsUseCase создает use case; cache может быть nil
func NewGetListingDetailsUseCase(builder *domain.Builder, storage port.ListingStoragePort, cache port.ListingCachePort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{builder: builder, storage: storage, cache: cache}
}

func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, listingID string) (*domain.DetailView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListingDetails",
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	if uc.cache != nil {
		cached, err := uc.cache.GetDetails(ctx, listingID)
		if err != nil {
			ucLogger.Warn("Cache lookup failed, falling back to storage", port.Fields{"error": err.Error()})
		} else if cached != nil {
			ucLogger.Info("Use case finished successfully", port.Fields{"cache": "hit"})
			return cached, nil
		}
	}

	stored, rec, err := loadRecord(ctx, uc.storage, uc.builder, listingID)
	if err != nil {
		ucLogger.Error("Failed to load listing", err, nil)
		return nil, err
	}

	view := rec.ToDetailView(listingID, stored.PostedBy)

	// параллельный PATCH может успеть сбросить ключ раньше этой записи; устаревшая карточка живет не дольше TTL
	if uc.cache != nil {
		if err := uc.cache.SetDetails(ctx, view); err != nil {
			ucLogger.Warn("Failed to cache listing details", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"cache": "miss"})
	return &view, nil
}
