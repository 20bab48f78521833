package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type ListListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewListListingsUseCase(storage port.ListingStoragePort) *ListListingsUseCase {
	return &ListListingsUseCase{storage: storage}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Execute строит карточки прямо из сохранённых данных: старый формат записи
// не приводит к ошибке, а даёт карточку со значениями по умолчанию
func (uc *ListListingsUseCase) Execute(ctx context.Context, filter domain.ListingFilter, limit, offset int) (*domain.SummaryPage, error) {
	limit, offset = normalizePage(limit, offset)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "ListListings",
		"listing_goal": filter.ListingGoal,
		"posted_by":    filter.PostedBy,
		"limit":        limit,
		"offset":       offset,
	})

	ucLogger.Info("Use case started", nil)

	page, err := uc.storage.List(ctx, filter, limit, offset)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	items := make([]domain.ListSummary, 0, len(page.Items))
	for _, stored := range page.Items {
		items = append(items, domain.ToListSummary(stored.ListingID, stored.Data))
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"returned": len(items), "total": page.Total})
	return &domain.SummaryPage{
		Items:  items,
		Total:  page.Total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
