package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// ListingCachePort кэширует детальные представления.
// Промах кэша возвращает (nil, nil).
type ListingCachePort interface {
	GetDetails(ctx context.Context, listingID string) (*domain.DetailView, error)
	SetDetails(ctx context.Context, view domain.DetailView) error
	Invalidate(ctx context.Context, listingID string) error
}
