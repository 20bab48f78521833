package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// ListingStoragePort хранит объявления в формате StorageRecord и отдаёт их в "сыром" виде.
// Отсутствующее объявление - domain.ErrListingNotFound.
type ListingStoragePort interface {
	Create(ctx context.Context, record domain.StorageRecord) (string, error)
	Get(ctx context.Context, listingID string) (*domain.StoredListing, error)
	Update(ctx context.Context, listingID string, record domain.StorageRecord) error
	Delete(ctx context.Context, listingID string) error
	List(ctx context.Context, filter domain.ListingFilter, limit, offset int) (*domain.StoredPage, error)
}
