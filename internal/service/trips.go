package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/repository"
)

type TripsService struct {
	repo repository.TripRepository
	now  func() time.Time
}

func NewTripsService(repo repository.TripRepository) *TripsService {
	return &TripsService{repo: repo, now: time.Now}
}

// Save persists a packing list under a new trip id and returns it.
func (s *TripsService) Save(ctx context.Context, userID, description string, packingList model.PackingList) (*model.Trip, error) {
	now := s.now().UTC()
	trip := &model.Trip{
		UserID:      userID,
		TripID:      model.NewID(model.PrefixTrip, now),
		Description: description,
		PackingList: packingList,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	slog.Info("trip saved", "user_id", userID, "trip_id", trip.TripID)
	return trip, nil
}

// MostRecent returns the user's latest trip or repository.ErrTripNotFound.
func (s *TripsService) MostRecent(ctx context.Context, userID string) (*model.Trip, error) {
	trip, err := s.repo.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get latest trip: %w", err)
	}
	return trip, nil
}

func (s *TripsService) ByID(ctx context.Context, userID, tripID string) (*model.Trip, error) {
	trip, err := s.repo.ByID(ctx, userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// Delete removes a trip owned by userID. It looks the trip up first and
// issues no delete when the trip is absent.
func (s *TripsService) Delete(ctx context.Context, userID, tripID string) error {
	if _, err := s.ByID(ctx, userID, tripID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, tripID); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	slog.Info("trip deleted", "user_id", userID, "trip_id", tripID)
	return nil
}
