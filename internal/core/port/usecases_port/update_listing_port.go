package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type UpdateListingUseCase interface {
	Execute(ctx context.Context, listingID string, patch domain.RawListing) (*domain.DetailView, error)
}
