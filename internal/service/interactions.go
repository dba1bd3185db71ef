package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/repository"
)

// InteractionsService is the append-only log of recommendations, annotated with feedback.
type InteractionsService struct {
	repo repository.InteractionRepository
	now  func() time.Time
}

func NewInteractionsService(repo repository.InteractionRepository) *InteractionsService {
	return &InteractionsService{repo: repo, now: time.Now}
}

// SaveRecommendation logs an outfit recommendation. tripID is empty outside a trip.
func (s *InteractionsService) SaveRecommendation(ctx context.Context, userID, situation string, recommendation map[string]any, tripID string) (string, error) {
	now := s.now().UTC()
	return s.save(ctx, &model.Interaction{
		UserID:         userID,
		InteractionID:  model.NewID(model.PrefixOutfit, now),
		Type:           model.InteractionOutfit,
		Situation:      situation,
		Recommendation: recommendation,
		TripID:         tripID,
		CreatedAt:      now,
	})
}

func (s *InteractionsService) SavePurchaseRecommendation(ctx context.Context, userID, situation string, recommendation map[string]any) (string, error) {
	now := s.now().UTC()
	return s.save(ctx, &model.Interaction{
		UserID:         userID,
		InteractionID:  model.NewID(model.PrefixPurchase, now),
		Type:           model.InteractionPurchase,
		Situation:      situation,
		Recommendation: recommendation,
		CreatedAt:      now,
	})
}

// SaveTrip logs a packing recommendation, referencing the saved trip.
func (s *InteractionsService) SaveTrip(ctx context.Context, userID, description string, packingList model.PackingList, tripID string) (string, error) {
	now := s.now().UTC()
	return s.save(ctx, &model.Interaction{
		UserID:         userID,
		InteractionID:  model.NewID(model.PrefixTrip, now),
		Type:           model.InteractionTrip,
		Description:    description,
		Recommendation: map[string]any{"packingList": map[string]any(packingList)},
		TripID:         tripID,
		CreatedAt:      now,
	})
}

func (s *InteractionsService) save(ctx context.Context, interaction *model.Interaction) (string, error) {
	if err := s.repo.Create(ctx, interaction); err != nil {
		return "", fmt.Errorf("failed to save %s interaction: %w", interaction.Type, err)
	}
	return interaction.InteractionID, nil
}

// All returns the user's interactions, newest first. The store orders by id,
// which groups by type prefix, so the result is re-sorted on createdAt.
func (s *InteractionsService) All(ctx context.Context, userID string) ([]*model.Interaction, error) {
	interactions, err := s.repo.Interactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interactions: %w", err)
	}
	slices.SortStableFunc(interactions, func(a, b *model.Interaction) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return interactions, nil
}

// UpdateFeedback sets feedback (0 or 1) on an existing interaction. Last write wins.
func (s *InteractionsService) UpdateFeedback(ctx context.Context, userID, interactionID string, feedback int) error {
	err := s.repo.SetFeedback(ctx, userID, interactionID, feedback)
	if err != nil {
		if errors.Is(err, repository.ErrInteractionNotFound) {
			return err
		}
		return fmt.Errorf("failed to update feedback: %w", err)
	}
	return nil
}

func (s *InteractionsService) Delete(ctx context.Context, userID, interactionID string) error {
	if err := s.repo.Delete(ctx, userID, interactionID); err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	return nil
}
