package repository

import (
	"context"
	"errors"

	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/storage"
)

var (
	ErrInteractionNotFound = errors.New("interaction not found")
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *model.Interaction) error
	// Interactions returns the user's interactions, newest first.
	Interactions(ctx context.Context, userID string) ([]*model.Interaction, error)
	SetFeedback(ctx context.Context, userID, interactionID string, feedback int) error
	Delete(ctx context.Context, userID, interactionID string) error
}

type interactionRepository struct {
	store storage.Store
	table string
}

func NewInteractionRepository(store storage.Store, table storage.Table) InteractionRepository {
	return &interactionRepository{store: store, table: table.Name}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *model.Interaction) error {
	return r.store.Put(ctx, r.table, interaction)
}

func (r *interactionRepository) Interactions(ctx context.Context, userID string) ([]*model.Interaction, error) {
	var interactions []*model.Interaction
	err := r.store.Query(ctx, r.table, storage.Query{Value: userID, Descending: true}, &interactions)
	return interactions, err
}

func (r *interactionRepository) SetFeedback(ctx context.Context, userID, interactionID string, feedback int) error {
	err := r.store.Update(ctx, r.table,
		storage.Key{"userId": userID, "interactionId": interactionID},
		storage.Update{
			Set:       map[string]any{"feedback": feedback},
			MustExist: true,
		},
	)
	if errors.Is(err, storage.ErrConditionFailed) {
		return ErrInteractionNotFound
	}
	return err
}

func (r *interactionRepository) Delete(ctx context.Context, userID, interactionID string) error {
	return r.store.Delete(ctx, r.table, storage.Key{"userId": userID, "interactionId": interactionID})
}
