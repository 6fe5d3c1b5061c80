package inmemdb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/upliftai/backend/core/chat"
	"github.com/upliftai/backend/core/staff"
)

type staffRepository struct {
	messages *messageTable
	plans    *planTable
}

func NewStaffRepository(db *DB) staff.Repository {
	return &staffRepository{messages: db.messages, plans: db.plans}
}

func (repo *staffRepository) userMessagesSince(since time.Time) []chat.Message {
	var out []chat.Message
	for _, m := range repo.messages.table {
		if m.Role == chat.RoleUser && !m.CreatedAt.Before(since) {
			out = append(out, m)
		}
	}
	return out
}

func (repo *staffRepository) CountMessages(_ context.Context, since time.Time) (int, map[string]int, map[string]int, error) {
	repo.messages.RLock()
	defer repo.messages.RUnlock()

	byCategory := make(map[string]int)
	bySentiment := make(map[string]int)
	msgs := repo.userMessagesSince(since)
	for _, m := range msgs {
		byCategory[string(m.Category)]++
		bySentiment[string(m.Sentiment)]++
	}
	return len(msgs), byCategory, bySentiment, nil
}

func (repo *staffRepository) SentimentByDay(_ context.Context, since time.Time) ([]staff.SentimentPoint, error) {
	repo.messages.RLock()
	defer repo.messages.RUnlock()

	byDay := make(map[string]*staff.SentimentPoint)
	for _, m := range repo.userMessagesSince(since) {
		day := m.CreatedAt.UTC().Format("2006-01-02")
		pt, ok := byDay[day]
		if !ok {
			pt = &staff.SentimentPoint{Date: day}
			byDay[day] = pt
		}
		switch m.Sentiment {
		case chat.SentimentPositive:
			pt.Positive++
		case chat.SentimentNegative:
			pt.Negative++
		default:
			pt.Neutral++
		}
	}
	return sortedSentimentPoints(byDay), nil
}

func (repo *staffRepository) PlansByDay(_ context.Context, since time.Time) ([]staff.PlanPoint, error) {
	repo.plans.RLock()
	defer repo.plans.RUnlock()

	byDay := make(map[string]int)
	for _, p := range repo.plans.table {
		if p.CreatedAt.Before(since) {
			continue
		}
		byDay[p.CreatedAt.UTC().Format("2006-01-02")]++
	}

	points := make([]staff.PlanPoint, 0, len(byDay))
	for day, count := range byDay {
		points = append(points, staff.PlanPoint{Date: day, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

func (repo *staffRepository) MessagesByHour(_ context.Context, since time.Time) ([]staff.HourPoint, error) {
	repo.messages.RLock()
	defer repo.messages.RUnlock()

	byHour := make(map[int]int)
	for _, m := range repo.userMessagesSince(since) {
		byHour[m.CreatedAt.UTC().Hour()]++
	}

	points := make([]staff.HourPoint, 0, len(byHour))
	for hour, count := range byHour {
		points = append(points, staff.HourPoint{Hour: fmt.Sprintf("%02d:00", hour), Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Hour < points[j].Hour })
	return points, nil
}

func (repo *staffRepository) RecentMessages(_ context.Context, limit int) ([]staff.RecentMessage, error) {
	repo.messages.RLock()
	defer repo.messages.RUnlock()

	msgs := repo.userMessagesSince(time.Time{})
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.After(msgs[j].CreatedAt) })
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}

	out := make([]staff.RecentMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, staff.RecentMessage{
			Content:   m.Content,
			Language:  m.Language,
			Sentiment: m.Sentiment,
			Category:  m.Category,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func sortedSentimentPoints(byDay map[string]*staff.SentimentPoint) []staff.SentimentPoint {
	points := make([]staff.SentimentPoint, 0, len(byDay))
	for _, pt := range byDay {
		points = append(points, *pt)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}
