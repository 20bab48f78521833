package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// loadRecord читает сохранённые данные и восстанавливает из них запись.
// Данные, не проходящие построение, помечаются как ErrListingUnreadable.
func loadRecord(ctx context.Context, storage port.ListingStoragePort, builder *domain.Builder, listingID string) (*domain.StoredListing, *domain.ListingRecord, error) {
	stored, err := storage.Get(ctx, listingID)
	if err != nil {
		return nil, nil, err
	}

	rec, err := builder.Build(stored.Data)
	if err != nil {
		return stored, nil, fmt.Errorf("%w: %w", domain.ErrListingUnreadable, err)
	}
	return stored, rec, nil
}

// publishEvent отправляет событие, если публикация настроена.
// Ошибка только логируется: запись в хранилище уже состоялась.
func publishEvent(ctx context.Context, events port.ListingEventsPort, event domain.ListingChangedEvent, logger port.LoggerPort) {
	if events == nil {
		return
	}
	if err := events.PublishListingChanged(ctx, event); err != nil {
		logger.Error("Failed to publish listing event", err, port.Fields{"change_type": string(event.ChangeType)})
	}
}

// invalidateCache сбрасывает кэш детального представления, если кэш настроен
func invalidateCache(ctx context.Context, cache port.ListingCachePort, listingID string, logger port.LoggerPort) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, listingID); err != nil {
		logger.Warn("Failed to invalidate cached listing", port.Fields{"error": err.Error()})
	}
}

func newEventID() string {
	return uuid.New().String()
}

// validationFields - поля лога для ошибки построения
func validationFields(err error) port.Fields {
	fields := port.Fields{"error": err.Error()}
	if field, ok := domain.FieldOf(err); ok {
		fields["field"] = field
	}
	return fields
}
