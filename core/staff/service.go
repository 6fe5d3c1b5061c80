package staff

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/upliftai/backend/core/chat"
)

// Recent-message listing bounds.
const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 200
)

// Lookback defaults per endpoint.
const (
	DefaultSummaryDays = 7
	DefaultTrendDays   = 14
	DefaultPeakDays    = 7
)

type (
	// Repository aggregates over persisted user chat messages and study
	// plans. Only role=user messages count; all methods treat `since` as an
	// inclusive lower bound.
	Repository interface {
		CountMessages(ctx context.Context, since time.Time) (total int, byCategory map[string]int, bySentiment map[string]int, err error)
		SentimentByDay(ctx context.Context, since time.Time) ([]SentimentPoint, error)
		PlansByDay(ctx context.Context, since time.Time) ([]PlanPoint, error)
		MessagesByHour(ctx context.Context, since time.Time) ([]HourPoint, error)
		RecentMessages(ctx context.Context, limit int) ([]RecentMessage, error)
	}

	Service struct {
		repo Repository
		now  func() time.Time // injected for tests
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (svc *Service) since(days int, fallback int) (int, time.Time) {
	if days <= 0 {
		days = fallback
	}
	return days, svc.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
}

func (svc *Service) Summary(ctx context.Context, days int) (Summary, error) {
	days, since := svc.since(days, DefaultSummaryDays)

	total, byCategory, bySentiment, err := svc.repo.CountMessages(ctx, since)
	if err != nil {
		return Summary{}, errors.Wrap(err, "counting messages")
	}

	s := Summary{
		Days:          days,
		TotalMessages: total,
		CategoryCounts: map[chat.Category]int{
			chat.CategoryStress:     byCategory[string(chat.CategoryStress)],
			chat.CategoryWorkload:   byCategory[string(chat.CategoryWorkload)],
			chat.CategoryMotivation: byCategory[string(chat.CategoryMotivation)],
		},
		SentimentCounts: map[chat.Sentiment]int{
			chat.SentimentPositive: bySentiment[string(chat.SentimentPositive)],
			chat.SentimentNeutral:  bySentiment[string(chat.SentimentNeutral)],
			chat.SentimentNegative: bySentiment[string(chat.SentimentNegative)],
		},
	}
	return s, nil
}

func (svc *Service) SentimentTrend(ctx context.Context, days int) (int, []SentimentPoint, error) {
	days, since := svc.since(days, DefaultTrendDays)
	points, err := svc.repo.SentimentByDay(ctx, since)
	return days, points, errors.Wrap(err, "aggregating sentiment trend")
}

func (svc *Service) PlansTrend(ctx context.Context, days int) (int, []PlanPoint, error) {
	days, since := svc.since(days, DefaultTrendDays)
	points, err := svc.repo.PlansByDay(ctx, since)
	return days, points, errors.Wrap(err, "aggregating plans trend")
}

func (svc *Service) PeakHours(ctx context.Context, days int) (int, []HourPoint, error) {
	days, since := svc.since(days, DefaultPeakDays)
	points, err := svc.repo.MessagesByHour(ctx, since)
	return days, points, errors.Wrap(err, "aggregating peak hours")
}

func (svc *Service) Recent(ctx context.Context, limit int) ([]RecentMessage, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	msgs, err := svc.repo.RecentMessages(ctx, limit)
	return msgs, errors.Wrap(err, "listing recent messages")
}
