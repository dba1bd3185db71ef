package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/stylecast/wardrobe/internal/model"
)

// PackingCategories are the packing list keys in the order they are flattened.
var PackingCategories = []string{"tops", "bottoms", "shoes", "outerwear", "accessories"}

// InsufficientWardrobeError is returned when the user owns fewer items than a
// recommendation needs. The LLM is not called in that case.
type InsufficientWardrobeError struct {
	Required int
	Current  int
}

func (e *InsufficientWardrobeError) Error() string {
	return fmt.Sprintf("Need at least %d items in wardrobe for recommendations. Current items: %d", e.Required, e.Current)
}

type RecommendationsService struct {
	llm      *LLMService
	wardrobe *WardrobeService
	minItems int
}

func NewRecommendationsService(llm *LLMService, wardrobe *WardrobeService, minItems int) *RecommendationsService {
	return &RecommendationsService{
		llm:      llm,
		wardrobe: wardrobe,
		minItems: minItems,
	}
}

// Outfit recommends an outfit from the user's wardrobe: top, bottom, shoes and optional outerwear and accessories.
func (s *RecommendationsService) Outfit(ctx context.Context, userID, situation string) (map[string]any, error) {
	items, err := s.wardrobeItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.complete(ctx, "outfit", outfitPrompt(items, situation), userID)
}

// OutfitForTrip recommends an outfit using only what was packed for trip.
// The packing list was produced by Packing, so no minimum applies.
func (s *RecommendationsService) OutfitForTrip(ctx context.Context, userID string, trip *model.Trip, situation string) (map[string]any, error) {
	return s.complete(ctx, "trip outfit", outfitPrompt(FlattenPackingList(trip.PackingList), situation), userID)
}

// Purchase recommends one item to buy, with an explanation referencing the wardrobe.
func (s *RecommendationsService) Purchase(ctx context.Context, userID, situation string) (map[string]any, error) {
	items, err := s.wardrobeItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.complete(ctx, "purchase", purchasePrompt(items, situation), userID)
}

// Packing recommends a packing list with 2-3 wardrobe items per category.
func (s *RecommendationsService) Packing(ctx context.Context, userID, situation string) (model.PackingList, error) {
	items, err := s.wardrobeItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	result, err := s.complete(ctx, "packing", packingPrompt(items, situation), userID)
	if err != nil {
		return nil, err
	}
	return model.PackingList(result), nil
}

func (s *RecommendationsService) wardrobeItems(ctx context.Context, userID string) ([]string, error) {
	items, err := s.wardrobe.Descriptions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) < s.minItems {
		return nil, &InsufficientWardrobeError{Required: s.minItems, Current: len(items)}
	}
	return items, nil
}

func (s *RecommendationsService) complete(ctx context.Context, kind, prompt, userID string) (map[string]any, error) {
	result, err := s.llm.Complete(ctx, prompt, userID)
	if err != nil {
		slog.Debug("recommendation failed", "kind", kind, "error", err, "user_id", userID)
		return nil, err
	}
	return result, nil
}

// FlattenPackingList concatenates every list-valued category into one item list:
// known categories first, in PackingCategories order, then any others by name.
func FlattenPackingList(list model.PackingList) []string {
	known := make(map[string]bool, len(PackingCategories))
	keys := make([]string, 0, len(list))
	for _, k := range PackingCategories {
		known[k] = true
		if _, ok := list[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range list {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	var items []string
	for _, k := range keys {
		values, ok := list[k].([]any)
		if !ok {
			continue
		}
		for _, v := range values {
			if str, ok := v.(string); ok && strings.TrimSpace(str) != "" {
				items = append(items, str)
			}
		}
	}
	return items
}

func outfitPrompt(items []string, situation string) string {
	return fmt.Sprintf(`Given the following wardrobe items:
%s

The user is in this situation: %s

Recommend an outfit using only items from their wardrobe. Format the response as a JSON object with the following structure:
{
    "top": "description of top",
    "bottom": "description of bottom",
    "shoes": "description of shoes",
    "outerwear": "description of outerwear (optional)",
    "accessories": "description of accessories (optional)"
}`, strings.Join(items, "\n"), situation)
}

func purchasePrompt(items []string, situation string) string {
	return fmt.Sprintf(`Given the following wardrobe items:
%s

The user is in this situation: %s

Recommend exactly one item the user should buy that would work well with their existing wardrobe for this situation. Explain how it combines with specific items they already own. Format the response as a JSON object with the following structure:
{
    "item": "description of the item to buy",
    "explanation": "why this item, referencing the existing wardrobe"
}`, strings.Join(items, "\n"), situation)
}

func packingPrompt(items []string, situation string) string {
	return fmt.Sprintf(`Given the following wardrobe items:
%s

The user is planning this trip: %s

Recommend what to pack using only items from their wardrobe. Choose 2-3 items for each category. Format the response as a JSON object with the following structure:
{
    "tops": ["item", "item"],
    "bottoms": ["item", "item"],
    "shoes": ["item", "item"],
    "outerwear": ["item", "item"],
    "accessories": ["item", "item"]
}`, strings.Join(items, "\n"), situation)
}
