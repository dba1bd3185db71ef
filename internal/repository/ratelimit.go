package repository

import (
	"context"
	"errors"

	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/storage"
)

var (
	ErrRateLimitNotFound = errors.New("rate limit record not found")
	ErrRateLimitExists   = errors.New("rate limit record already exists")
	ErrQuotaReached      = errors.New("quota reached")
)

type RateLimitRepository interface {
	ByDay(ctx context.Context, userID, date string) (*model.RateLimit, error)
	// Create writes the first record of the day; ErrRateLimitExists if another request got there first.
	Create(ctx context.Context, record *model.RateLimit) error
	// Increment atomically adds one to count unless count has reached max (ErrQuotaReached).
	Increment(ctx context.Context, userID, date string, max int) error
}

type rateLimitRepository struct {
	store storage.Store
	table string
}

func NewRateLimitRepository(store storage.Store, table storage.Table) RateLimitRepository {
	return &rateLimitRepository{store: store, table: table.Name}
}

func (r *rateLimitRepository) ByDay(ctx context.Context, userID, date string) (*model.RateLimit, error) {
	record := &model.RateLimit{}
	found, err := r.store.Get(ctx, r.table, storage.Key{"userId": userID, "date": date}, record)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRateLimitNotFound
	}
	return record, nil
}

func (r *rateLimitRepository) Create(ctx context.Context, record *model.RateLimit) error {
	err := r.store.Create(ctx, r.table, record)
	if errors.Is(err, storage.ErrConditionFailed) {
		return ErrRateLimitExists
	}
	return err
}

func (r *rateLimitRepository) Increment(ctx context.Context, userID, date string, max int) error {
	err := r.store.Update(ctx, r.table,
		storage.Key{"userId": userID, "date": date},
		storage.Update{
			Add:   map[string]int{"count": 1},
			Below: map[string]int{"count": max},
		},
	)
	if errors.Is(err, storage.ErrConditionFailed) {
		return ErrQuotaReached
	}
	return err
}
