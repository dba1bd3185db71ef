package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/repository"
)

type WardrobeService struct {
	repo repository.WardrobeRepository
	now  func() time.Time
}

func NewWardrobeService(repo repository.WardrobeRepository) *WardrobeService {
	return &WardrobeService{repo: repo, now: time.Now}
}

// Add stores a new item. The description is expected to be validated already.
func (s *WardrobeService) Add(ctx context.Context, userID, description string) (*model.WardrobeItem, error) {
	now := s.now().UTC()
	item := &model.WardrobeItem{
		UserID:      userID,
		ItemID:      model.NewID(model.PrefixItem, now),
		Description: description,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add wardrobe item: %w", err)
	}

	slog.Info("wardrobe item added", "user_id", userID, "item_id", item.ItemID)
	return item, nil
}

func (s *WardrobeService) List(ctx context.Context, userID string) ([]*model.WardrobeItem, error) {
	items, err := s.repo.Items(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wardrobe items: %w", err)
	}
	return items, nil
}

// Delete removes an item. Deleting an item that does not exist succeeds.
func (s *WardrobeService) Delete(ctx context.Context, userID, itemID string) (bool, error) {
	if err := s.repo.Delete(ctx, userID, itemID); err != nil {
		return false, fmt.Errorf("failed to delete wardrobe item: %w", err)
	}
	return true, nil
}

// Descriptions returns the description of every item the user owns.
func (s *WardrobeService) Descriptions(ctx context.Context, userID string) ([]string, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	descriptions := make([]string, len(items))
	for i, item := range items {
		descriptions[i] = item.Description
	}
	return descriptions, nil
}
