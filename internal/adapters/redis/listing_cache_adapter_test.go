package redis

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"listing-service/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// memoryClient - in-memory заменитель Redis для проверки адаптера
type memoryClient struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failErr error
}

func newMemoryClient() *memoryClient {
	return &memoryClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryClient) Get(ctx context.Context, key string) *goredis.StringCmd {
	if m.failErr != nil {
		return goredis.NewStringResult("", m.failErr)
	}
	v, ok := m.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (m *memoryClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	if m.failErr != nil {
		return goredis.NewStatusResult("", m.failErr)
	}
	m.data[key] = string(value.([]byte))
	m.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (m *memoryClient) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func sampleView() domain.DetailView {
	city := "Pune"
	price := 18000.0
	return domain.DetailView{
		ListingID:   "l-1",
		Location:    "Baner",
		ListingGoal: "Rent",
		ImageLinks:  []string{"a.jpg"},
		Financials:  domain.Financials{Price: 18000, MaxNegotiablePrice: &price},
		AddressDetails: domain.AddressDetails{
			City: &city,
		},
		SystemInfo: domain.SystemInfo{PostedBy: "u-1", Status: "Active"},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	client := newMemoryClient()
	cache := newListingCacheAdapter(client, time.Minute)
	ctx := context.Background()

	if got, err := cache.GetDetails(ctx, "l-1"); err != nil || got != nil {
		t.Fatalf("GetDetails(miss) = %v, %v; want nil, nil", got, err)
	}

	view := sampleView()
	if err := cache.SetDetails(ctx, view); err != nil {
		t.Fatalf("SetDetails() error: %v", err)
	}
	if client.ttls[detailsKey("l-1")] != time.Minute {
		t.Errorf("ttl = %v, want 1m", client.ttls[detailsKey("l-1")])
	}

	got, err := cache.GetDetails(ctx, "l-1")
	if err != nil || got == nil {
		t.Fatalf("GetDetails(hit) = %v, %v", got, err)
	}
	if !reflect.DeepEqual(got.AddressDetails, view.AddressDetails) || got.Financials.Price != 18000 || got.SystemInfo.PostedBy != "u-1" {
		t.Errorf("cached view = %+v, want %+v", got, view)
	}

	if err := cache.Invalidate(ctx, "l-1"); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	if got, _ := cache.GetDetails(ctx, "l-1"); got != nil {
		t.Error("GetDetails() after Invalidate returned a value")
	}
}

func TestCacheDropsCorruptEntry(t *testing.T) {
	client := newMemoryClient()
	client.data[detailsKey("bad")] = "{not json"
	cache := newListingCacheAdapter(client, 0)

	got, err := cache.GetDetails(context.Background(), "bad")
	if err != nil || got != nil {
		t.Errorf("GetDetails(corrupt) = %v, %v; want miss", got, err)
	}
	if _, ok := client.data[detailsKey("bad")]; ok {
		t.Error("corrupt entry was not removed")
	}
	if cache.ttl != 5*time.Minute {
		t.Errorf("default ttl = %v", cache.ttl)
	}
}

func TestCacheReportsBackendErrors(t *testing.T) {
	client := newMemoryClient()
	client.failErr = errors.New("connection refused")
	cache := newListingCacheAdapter(client, time.Minute)

	if _, err := cache.GetDetails(context.Background(), "x"); !errors.Is(err, client.failErr) {
		t.Errorf("GetDetails() error = %v", err)
	}
	if err := cache.SetDetails(context.Background(), sampleView()); !errors.Is(err, client.failErr) {
		t.Errorf("SetDetails() error = %v", err)
	}
}
