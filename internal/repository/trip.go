package repository

import (
	"context"
	"errors"

	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/storage"
)

var (
	ErrTripNotFound = errors.New("trip not found")
)

type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	ByID(ctx context.Context, userID, tripID string) (*model.Trip, error)
	// Latest returns the trip with the greatest id, ids being time-prefixed.
	Latest(ctx context.Context, userID string) (*model.Trip, error)
	Delete(ctx context.Context, userID, tripID string) error
}

type tripRepository struct {
	store storage.Store
	table string
}

func NewTripRepository(store storage.Store, table storage.Table) TripRepository {
	return &tripRepository{store: store, table: table.Name}
}

func (r *tripRepository) Create(ctx context.Context, trip *model.Trip) error {
	return r.store.Put(ctx, r.table, trip)
}

func (r *tripRepository) ByID(ctx context.Context, userID, tripID string) (*model.Trip, error) {
	trip := &model.Trip{}
	found, err := r.store.Get(ctx, r.table, storage.Key{"userId": userID, "tripId": tripID}, trip)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

func (r *tripRepository) Latest(ctx context.Context, userID string) (*model.Trip, error) {
	var trips []*model.Trip
	err := r.store.Query(ctx, r.table, storage.Query{Value: userID, Descending: true, Limit: 1}, &trips)
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, ErrTripNotFound
	}
	return trips[0], nil
}

func (r *tripRepository) Delete(ctx context.Context, userID, tripID string) error {
	return r.store.Delete(ctx, r.table, storage.Key{"userId": userID, "tripId": tripID})
}
