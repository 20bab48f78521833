package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type GetListingDetailsUseCase interface {
	Execute(ctx context.Context, listingID string) (*domain.DetailView, error)
}
