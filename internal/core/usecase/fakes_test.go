package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"listing-service/internal/core/domain"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

const fixedNowISO = "2024-05-01T10:00:00.000Z"

func newTestBuilder() *domain.Builder {
	return domain.NewBuilder(
		domain.WithClock(func() time.Time { return fixedNow }),
		domain.WithRatingProvider(domain.FixedRating("4.2")),
	)
}

func validRaw() domain.RawListing {
	return domain.RawListing{
		"location":         "HSR Layout, Bengaluru",
		"price":            25000.0,
		"deposit":          50000.0,
		"listingGoal":      "Rent",
		"furnishingStatus": "Semi-Furnished",
		"imageLinks":       []any{"https://img.example/1.jpg"},
	}
}

// toRaw возвращает запись в том виде, в каком её вернула бы база: JSON-объект
func toRaw(t *testing.T, rec domain.StorageRecord) domain.RawListing {
	t.Helper()
	payload, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal storage record: %v", err)
	}
	var raw domain.RawListing
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal storage record: %v", err)
	}
	return raw
}

type fakeStorage struct {
	t       *testing.T
	mu      sync.Mutex
	rows    map[string]domain.StoredListing
	order   []string
	nextID  int
	failErr error

	lastFilter domain.ListingFilter
	lastLimit  int
	lastOffset int
}

func newFakeStorage(t *testing.T) *fakeStorage {
	return &fakeStorage{t: t, rows: make(map[string]domain.StoredListing)}
}

func (s *fakeStorage) put(id, postedBy string, data domain.RawListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[id] = domain.StoredListing{ListingID: id, PostedBy: postedBy, Data: data}
	s.order = append(s.order, id)
}

func (s *fakeStorage) Create(_ context.Context, record domain.StorageRecord) (string, error) {
	if s.failErr != nil {
		return "", s.failErr
	}
	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("listing-%d", s.nextID)
	s.mu.Unlock()
	s.put(id, record.PostedBy, toRaw(s.t, record))
	return id, nil
}

func (s *fakeStorage) Get(_ context.Context, listingID string) (*domain.StoredListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return &row, nil
}

func (s *fakeStorage) Update(_ context.Context, listingID string, record domain.StorageRecord) error {
	if s.failErr != nil {
		return s.failErr
	}
	raw := toRaw(s.t, record)
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[listingID]
	if !ok {
		return domain.ErrListingNotFound
	}
	row.Data = raw
	s.rows[listingID] = row
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[listingID]; !ok {
		return domain.ErrListingNotFound
	}
	delete(s.rows, listingID)
	return nil
}

func (s *fakeStorage) List(_ context.Context, filter domain.ListingFilter, limit, offset int) (*domain.StoredPage, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter, s.lastLimit, s.lastOffset = filter, limit, offset

	var matched []domain.StoredListing
	for _, id := range s.order {
		row, ok := s.rows[id]
		if !ok {
			continue
		}
		if filter.PostedBy != "" && row.PostedBy != filter.PostedBy {
			continue
		}
		matched = append(matched, row)
	}
	page := &domain.StoredPage{Total: len(matched)}
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		page.Items = append(page.Items, matched[i])
	}
	return page, nil
}

type fakeCache struct {
	mu          sync.Mutex
	views       map[string]domain.DetailView
	invalidated []string
	getErr      error
	sets        int
}

func newFakeCache() *fakeCache {
	return &fakeCache{views: make(map[string]domain.DetailView)}
}

func (c *fakeCache) GetDetails(_ context.Context, listingID string) (*domain.DetailView, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	view, ok := c.views[listingID]
	if !ok {
		return nil, nil
	}
	return &view, nil
}

func (c *fakeCache) SetDetails(_ context.Context, view domain.DetailView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[view.ListingID] = view
	c.sets++
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, listingID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, listingID)
	c.invalidated = append(c.invalidated, listingID)
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []domain.ListingChangedEvent
	err    error
}

func (e *fakeEvents) PublishListingChanged(_ context.Context, event domain.ListingChangedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

var errBoom = errors.New("boom")
