package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylecast/wardrobe/internal/config"
	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/storage"
)

func newTestStore(t *testing.T) (storage.Store, Tables) {
	t.Helper()
	tables := NewTables(&config.Config{TablePrefix: "test"})
	return storage.NewMemoryStore(tables.All()...), tables
}

func TestNewTables(t *testing.T) {
	tables := NewTables(&config.Config{TablePrefix: "dev"})

	assert.Equal(t, "dev-wardrobe-items", tables.Wardrobe.Name)
	assert.Equal(t, "dev-rate-limits", tables.RateLimits.Name)
	assert.Equal(t, "date", tables.RateLimits.SortKey)
	assert.Len(t, tables.All(), 5)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	store, tables := newTestStore(t)
	repo := NewUserRepository(store, tables.Users)

	_, err := repo.ByID(ctx, "google-1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := &model.User{ID: "google-1", Email: "a@example.com", Name: "A", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, user))
	assert.ErrorIs(t, repo.Create(ctx, user), ErrUserExists)

	got, err := repo.ByID(ctx, "google-1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
	assert.True(t, user.CreatedAt.Equal(got.CreatedAt))
}

func TestTripRepository_Latest(t *testing.T) {
	ctx := context.Background()
	store, tables := newTestStore(t)
	repo := NewTripRepository(store, tables.Trips)

	_, err := repo.Latest(ctx, "u1")
	assert.ErrorIs(t, err, ErrTripNotFound)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, desc := range []string{"First", "Second", "Third"} {
		trip := &model.Trip{
			UserID:      "u1",
			TripID:      model.NewID(model.PrefixTrip, base.Add(time.Duration(i)*time.Minute)),
			Description: desc,
			PackingList: model.PackingList{"tops": []any{"shirt"}},
		}
		require.NoError(t, repo.Create(ctx, trip))
	}

	latest, err := repo.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Third", latest.Description)
	assert.Equal(t, []any{"shirt"}, latest.PackingList["tops"])
}

func TestInteractionRepository_SetFeedback(t *testing.T) {
	ctx := context.Background()
	store, tables := newTestStore(t)
	repo := NewInteractionRepository(store, tables.Interactions)

	assert.ErrorIs(t, repo.SetFeedback(ctx, "u1", "rec_missing", 1), ErrInteractionNotFound)

	require.NoError(t, repo.Create(ctx, &model.Interaction{
		UserID:         "u1",
		InteractionID:  "rec_1",
		Type:           model.InteractionOutfit,
		Situation:      "dinner",
		Recommendation: map[string]any{"top": "shirt"},
	}))
	require.NoError(t, repo.SetFeedback(ctx, "u1", "rec_1", 1))

	interactions, err := repo.Interactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	require.NotNil(t, interactions[0].Feedback)
	assert.Equal(t, 1, *interactions[0].Feedback)
	assert.Equal(t, "dinner", interactions[0].Situation)
}

func TestRateLimitRepository(t *testing.T) {
	ctx := context.Background()
	store, tables := newTestStore(t)
	repo := NewRateLimitRepository(store, tables.RateLimits)

	_, err := repo.ByDay(ctx, "u1", "2025-01-01")
	assert.ErrorIs(t, err, ErrRateLimitNotFound)

	t.Run("Increment without a record reports quota reached", func(t *testing.T) {
		assert.ErrorIs(t, repo.Increment(ctx, "u1", "2025-01-01", 2), ErrQuotaReached)
	})

	record := &model.RateLimit{UserID: "u1", Date: "2025-01-01", Count: 1}
	require.NoError(t, repo.Create(ctx, record))
	assert.ErrorIs(t, repo.Create(ctx, record), ErrRateLimitExists)

	require.NoError(t, repo.Increment(ctx, "u1", "2025-01-01", 2))
	assert.ErrorIs(t, repo.Increment(ctx, "u1", "2025-01-01", 2), ErrQuotaReached)

	got, err := repo.ByDay(ctx, "u1", "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}
