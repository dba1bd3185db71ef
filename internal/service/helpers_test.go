package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stylecast/wardrobe/internal/config"
	"github.com/stylecast/wardrobe/internal/metrics"
	"github.com/stylecast/wardrobe/internal/repository"
	"github.com/stylecast/wardrobe/internal/storage"
)

var testNow = time.Date(2025, 7, 14, 10, 30, 0, 0, time.UTC)

// tickingClock advances one millisecond per call so generated ids never collide.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Millisecond)
		return current
	}
}

// countingStore wraps a Store and counts calls per operation.
type countingStore struct {
	storage.Store
	mu    sync.Mutex
	calls map[string]int
}

func newCountingStore(s storage.Store) *countingStore {
	return &countingStore{Store: s, calls: map[string]int{}}
}

func (s *countingStore) count(op string) {
	s.mu.Lock()
	s.calls[op]++
	s.mu.Unlock()
}

func (s *countingStore) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *countingStore) Put(ctx context.Context, table string, item any) error {
	s.count("put")
	return s.Store.Put(ctx, table, item)
}

func (s *countingStore) Create(ctx context.Context, table string, item any) error {
	s.count("create")
	return s.Store.Create(ctx, table, item)
}

func (s *countingStore) Update(ctx context.Context, table string, key storage.Key, u storage.Update) error {
	s.count("update")
	return s.Store.Update(ctx, table, key, u)
}

func (s *countingStore) Delete(ctx context.Context, table string, key storage.Key) error {
	s.count("delete")
	return s.Store.Delete(ctx, table, key)
}

// failingStore fails every operation.
type failingStore struct {
	err error
}

func (s failingStore) Put(context.Context, string, any) error    { return s.err }
func (s failingStore) Create(context.Context, string, any) error { return s.err }
func (s failingStore) Get(context.Context, string, storage.Key, any) (bool, error) {
	return false, s.err
}
func (s failingStore) Update(context.Context, string, storage.Key, storage.Update) error {
	return s.err
}
func (s failingStore) Delete(context.Context, string, storage.Key) error { return s.err }
func (s failingStore) Query(context.Context, string, storage.Query, any) error {
	return s.err
}

// fakeCompleter returns canned replies in order and records prompts.
type fakeCompleter struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	reply := `{}`
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type testEnv struct {
	store        *countingStore
	tables       repository.Tables
	completer    *fakeCompleter
	rateLimit    *RateLimitService
	llm          *LLMService
	wardrobe     *WardrobeService
	trips        *TripsService
	interactions *InteractionsService
	recommend    *RecommendationsService
	text         *TextTransformationsService
}

func newTestEnv(t *testing.T, maxPerDay int) *testEnv {
	t.Helper()
	tables := repository.NewTables(&config.Config{TablePrefix: "test"})
	store := newCountingStore(storage.NewMemoryStore(tables.All()...))
	completer := &fakeCompleter{}

	rateLimit := NewRateLimitService(repository.NewRateLimitRepository(store, tables.RateLimits), maxPerDay, metrics.Nop{})
	rateLimit.now = func() time.Time { return testNow }
	llm := NewLLMService(completer, rateLimit, metrics.Nop{})
	wardrobe := NewWardrobeService(repository.NewWardrobeRepository(store, tables.Wardrobe))
	trips := NewTripsService(repository.NewTripRepository(store, tables.Trips))
	interactions := NewInteractionsService(repository.NewInteractionRepository(store, tables.Interactions))
	clock := tickingClock(testNow)
	wardrobe.now, trips.now, interactions.now = clock, clock, clock

	return &testEnv{
		store:        store,
		tables:       tables,
		completer:    completer,
		rateLimit:    rateLimit,
		llm:          llm,
		wardrobe:     wardrobe,
		trips:        trips,
		interactions: interactions,
		recommend:    NewRecommendationsService(llm, wardrobe, 3),
		text:         NewTextTransformationsService(llm),
	}
}
