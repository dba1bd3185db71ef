package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/stylecast/wardrobe/internal/metrics"
	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/repository"
)

const dayLayout = "2006-01-02"

var (
	ErrRateLimitExceeded = errors.New("daily rate limit exceeded")
)

// RateLimitService enforces the per-user daily LLM quota with one record per (user, UTC day).
//
// Store failures are fail-open: the request is allowed and nothing is persisted.
// Correctness under concurrency relies on the store's conditional increment.
type RateLimitService struct {
	repo    repository.RateLimitRepository
	max     int
	metrics metrics.Recorder
	now     func() time.Time
}

func NewRateLimitService(repo repository.RateLimitRepository, maxPerDay int, recorder metrics.Recorder) *RateLimitService {
	return &RateLimitService{
		repo:    repo,
		max:     maxPerDay,
		metrics: recorder,
		now:     time.Now,
	}
}

// CheckAndIncrement charges one request to userID for today, or returns ErrRateLimitExceeded.
func (s *RateLimitService) CheckAndIncrement(ctx context.Context, userID string) error {
	now := s.now().UTC()
	date := now.Format(dayLayout)

	record, err := s.repo.ByDay(ctx, userID, date)
	switch {
	case errors.Is(err, repository.ErrRateLimitNotFound) && s.max < 1:
		s.metrics.RecordRateLimitDecision(metrics.RateLimitRejected)
		return ErrRateLimitExceeded

	case errors.Is(err, repository.ErrRateLimitNotFound):
		err = s.repo.Create(ctx, &model.RateLimit{
			UserID:    userID,
			Date:      date,
			Count:     1,
			CreatedAt: now,
		})
		if err == nil {
			s.metrics.RecordRateLimitDecision(metrics.RateLimitAllowed)
			return nil
		}
		if !errors.Is(err, repository.ErrRateLimitExists) {
			return s.failOpen(userID, date, err)
		}
		// Lost the race for the first request of the day; count it against the winner's record.

	case err != nil:
		return s.failOpen(userID, date, err)

	case record.Count >= s.max:
		s.metrics.RecordRateLimitDecision(metrics.RateLimitRejected)
		slog.Info("daily rate limit reached", "user_id", userID, "date", date, "count", record.Count, "max", s.max)
		return ErrRateLimitExceeded
	}

	err = s.repo.Increment(ctx, userID, date, s.max)
	if errors.Is(err, repository.ErrQuotaReached) {
		s.metrics.RecordRateLimitDecision(metrics.RateLimitRejected)
		return ErrRateLimitExceeded
	}
	if err != nil {
		return s.failOpen(userID, date, err)
	}

	s.metrics.RecordRateLimitDecision(metrics.RateLimitAllowed)
	return nil
}

// Usage reports today's consumption for userID. A store failure is returned, not swallowed.
func (s *RateLimitService) Usage(ctx context.Context, userID string) (*model.Usage, error) {
	date := s.now().UTC().Format(dayLayout)

	count := 0
	record, err := s.repo.ByDay(ctx, userID, date)
	switch {
	case errors.Is(err, repository.ErrRateLimitNotFound):
	case err != nil:
		return nil, err
	default:
		count = record.Count
	}

	return &model.Usage{
		Date:      date,
		Count:     count,
		Limit:     s.max,
		Remaining: max(s.max-count, 0),
	}, nil
}

func (s *RateLimitService) failOpen(userID, date string, err error) error {
	s.metrics.RecordRateLimitDecision(metrics.RateLimitFailOpen)
	slog.Warn("rate limit store unavailable, allowing request", "error", err, "user_id", userID, "date", date)
	return nil
}
