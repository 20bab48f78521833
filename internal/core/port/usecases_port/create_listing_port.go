package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type CreateListingUseCase interface {
	Execute(ctx context.Context, raw domain.RawListing, postedBy string) (*domain.CreationSummary, error)
}
