package usecases_port

import "context"

type DeleteListingUseCase interface {
	Execute(ctx context.Context, listingID string) error
}
