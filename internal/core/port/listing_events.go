package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// ListingEventsPort публикует события жизненного цикла объявления
type ListingEventsPort interface {
	PublishListingChanged(ctx context.Context, event domain.ListingChangedEvent) error
}
