package repository

import (
	"context"
	"errors"

	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/storage"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
}

type userRepository struct {
	store storage.Store
	table string
}

func NewUserRepository(store storage.Store, table storage.Table) UserRepository {
	return &userRepository{store: store, table: table.Name}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.store.Create(ctx, r.table, user)
	if errors.Is(err, storage.ErrConditionFailed) {
		return ErrUserExists
	}
	return err
}

func (r *userRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	found, err := r.store.Get(ctx, r.table, storage.Key{"userId": id}, user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return user, nil
}
