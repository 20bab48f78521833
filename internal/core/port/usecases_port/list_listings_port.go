package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type ListListingsUseCase interface {
	Execute(ctx context.Context, filter domain.ListingFilter, limit, offset int) (*domain.SummaryPage, error)
}
