package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier - часть pgxpool.Pool, которой пользуется адаптер
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ querier = (*pgxpool.Pool)(nil)

// ListingStorageAdapter хранит объявления в таблице listings: данные целиком в jsonb
type ListingStorageAdapter struct {
	db    querier
	newID func() uuid.UUID
}

// NewListingStorageAdapter создает новый экземпляр адаптера.
func NewListingStorageAdapter(pool *pgxpool.Pool) (*ListingStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingStorageAdapter{db: pool, newID: uuid.New}, nil
}

// parseListingID - невалидный идентификатор не может существовать в хранилище
func parseListingID(listingID string) (uuid.UUID, error) {
	id, err := uuid.Parse(listingID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed id %q", domain.ErrListingNotFound, listingID)
	}
	return id, nil
}

func (a *ListingStorageAdapter) Create(ctx context.Context, record domain.StorageRecord) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal listing: %w", err)
	}

	id := a.newID()
	_, err = a.db.Exec(ctx,
		`INSERT INTO listings (id, posted_by, data, created_at, updated_at) VALUES ($1, $2, $3, NOW(), NOW())`,
		id.String(), record.PostedBy, data,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert listing: %w", err)
	}

	contextkeys.LoggerFromContext(ctx).Debug("Listing row inserted", port.Fields{"listing_id": id.String()})
	return id.String(), nil
}

func (a *ListingStorageAdapter) Get(ctx context.Context, listingID string) (*domain.StoredListing, error) {
	id, err := parseListingID(listingID)
	if err != nil {
		return nil, err
	}

	row := a.db.QueryRow(ctx, `SELECT `+listingSelectColumns+` FROM listings WHERE id = $1`, id.String())
	stored, err := scanStoredListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing %s: %w", listingID, err)
	}
	return stored, nil
}

func (a *ListingStorageAdapter) Update(ctx context.Context, listingID string, record domain.StorageRecord) error {
	id, err := parseListingID(listingID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}

	tag, err := a.db.Exec(ctx, `UPDATE listings SET data = $2, updated_at = NOW() WHERE id = $1`, id.String(), data)
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", listingID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (a *ListingStorageAdapter) Delete(ctx context.Context, listingID string) error {
	id, err := parseListingID(listingID)
	if err != nil {
		return err
	}

	tag, err := a.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", listingID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (a *ListingStorageAdapter) List(ctx context.Context, filter domain.ListingFilter, limit, offset int) (*domain.StoredPage, error) {
	q := buildListQuery(filter, limit, offset)

	var total int
	if err := a.db.QueryRow(ctx, q.countSQL, q.countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	rows, err := a.db.Query(ctx, q.pageSQL, q.pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	logger := contextkeys.LoggerFromContext(ctx)
	items := make([]domain.StoredListing, 0, limit)
	for rows.Next() {
		stored, err := scanStoredListing(rows)
		if err != nil {
			// одна нечитаемая строка не должна ломать весь список
			logger.Warn("Skipping unreadable listing row", port.Fields{"error": err.Error()})
			continue
		}
		items = append(items, *stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}

	return &domain.StoredPage{Items: items, Total: total}, nil
}

func scanStoredListing(row pgx.Row) (*domain.StoredListing, error) {
	var (
		id       string
		postedBy string
		data     []byte
	)
	if err := row.Scan(&id, &postedBy, &data); err != nil {
		return nil, err
	}

	raw, err := decodeListingData(data)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", id, err)
	}
	return &domain.StoredListing{ListingID: id, PostedBy: postedBy, Data: raw}, nil
}

// decodeListingData разбирает jsonb-документ; не-объект считается повреждёнными данными
func decodeListingData(data []byte) (domain.RawListing, error) {
	var raw domain.RawListing
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrListingUnreadable, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is null", domain.ErrListingUnreadable)
	}
	return raw, nil
}
