package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type GetListingProximityUseCase interface {
	Execute(ctx context.Context, listingID string) (*domain.ProximitySummary, error)
}
