package repository

import (
	"context"

	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/storage"
)

type WardrobeRepository interface {
	Create(ctx context.Context, item *model.WardrobeItem) error
	Items(ctx context.Context, userID string) ([]*model.WardrobeItem, error)
	Delete(ctx context.Context, userID, itemID string) error
}

type wardrobeRepository struct {
	store storage.Store
	table string
}

func NewWardrobeRepository(store storage.Store, table storage.Table) WardrobeRepository {
	return &wardrobeRepository{store: store, table: table.Name}
}

func (r *wardrobeRepository) Create(ctx context.Context, item *model.WardrobeItem) error {
	return r.store.Put(ctx, r.table, item)
}

func (r *wardrobeRepository) Items(ctx context.Context, userID string) ([]*model.WardrobeItem, error) {
	var items []*model.WardrobeItem
	err := r.store.Query(ctx, r.table, storage.Query{Value: userID}, &items)
	return items, err
}

func (r *wardrobeRepository) Delete(ctx context.Context, userID, itemID string) error {
	return r.store.Delete(ctx, r.table, storage.Key{"userId": userID, "itemId": itemID})
}
