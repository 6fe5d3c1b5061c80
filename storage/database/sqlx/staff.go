package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core/chat"
	"github.com/upliftai/backend/core/staff"
)

type staffRepository struct {
	db *sqlx.DB
}

var _ staff.Repository = (*staffRepository)(nil)

func NewStaffRepository(db *sqlx.DB) *staffRepository {
	return &staffRepository{db: db}
}

func (repo staffRepository) CountMessages(ctx context.Context, since time.Time) (int, map[string]int, map[string]int, error) {
	var rows []struct {
		Sentiment string `db:"sentiment"`
		Category  string `db:"category"`
		Count     int    `db:"count"`
	}
	const q = `
		SELECT sentiment, category, COUNT(*) AS count
		FROM chat_message
		WHERE role = $1 AND created_at >= $2
		GROUP BY sentiment, category`
	if err := repo.db.SelectContext(ctx, &rows, q, chat.RoleUser, since); err != nil {
		return 0, nil, nil, errors.Wrap(err, "counting messages")
	}

	total := 0
	byCategory := make(map[string]int)
	bySentiment := make(map[string]int)
	for _, r := range rows {
		total += r.Count
		byCategory[r.Category] += r.Count
		bySentiment[r.Sentiment] += r.Count
	}
	return total, byCategory, bySentiment, nil
}

func (repo staffRepository) SentimentByDay(ctx context.Context, since time.Time) ([]staff.SentimentPoint, error) {
	var rows []struct {
		Date     string `db:"date"`
		Positive int    `db:"positive"`
		Neutral  int    `db:"neutral"`
		Negative int    `db:"negative"`
	}
	const q = `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS date,
		       COUNT(*) FILTER (WHERE sentiment = 'positive') AS positive,
		       COUNT(*) FILTER (WHERE sentiment = 'neutral')  AS neutral,
		       COUNT(*) FILTER (WHERE sentiment = 'negative') AS negative
		FROM chat_message
		WHERE role = $1 AND created_at >= $2
		GROUP BY 1
		ORDER BY 1`
	if err := repo.db.SelectContext(ctx, &rows, q, chat.RoleUser, since); err != nil {
		return nil, errors.Wrap(err, "aggregating sentiment by day")
	}

	points := make([]staff.SentimentPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, staff.SentimentPoint{Date: r.Date, Positive: r.Positive, Neutral: r.Neutral, Negative: r.Negative})
	}
	return points, nil
}

func (repo staffRepository) PlansByDay(ctx context.Context, since time.Time) ([]staff.PlanPoint, error) {
	var rows []struct {
		Date  string `db:"date"`
		Count int    `db:"count"`
	}
	const q = `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS date, COUNT(*) AS count
		FROM study_plan
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1`
	if err := repo.db.SelectContext(ctx, &rows, q, since); err != nil {
		return nil, errors.Wrap(err, "aggregating plans by day")
	}

	points := make([]staff.PlanPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, staff.PlanPoint{Date: r.Date, Count: r.Count})
	}
	return points, nil
}

func (repo staffRepository) MessagesByHour(ctx context.Context, since time.Time) ([]staff.HourPoint, error) {
	var rows []struct {
		Hour  string `db:"hour"`
		Count int    `db:"count"`
	}
	const q = `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'HH24:00') AS hour, COUNT(*) AS count
		FROM chat_message
		WHERE role = $1 AND created_at >= $2
		GROUP BY 1
		ORDER BY 1`
	if err := repo.db.SelectContext(ctx, &rows, q, chat.RoleUser, since); err != nil {
		return nil, errors.Wrap(err, "aggregating messages by hour")
	}

	points := make([]staff.HourPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, staff.HourPoint{Hour: r.Hour, Count: r.Count})
	}
	return points, nil
}

func (repo staffRepository) RecentMessages(ctx context.Context, limit int) ([]staff.RecentMessage, error) {
	var msgs []staff.RecentMessage
	const q = `
		SELECT content, language, sentiment, category, created_at
		FROM chat_message
		WHERE role = $1
		ORDER BY created_at DESC
		LIMIT $2`
	if err := repo.db.SelectContext(ctx, &msgs, q, chat.RoleUser, limit); err != nil {
		return nil, errors.Wrap(err, "listing recent messages")
	}
	return msgs, nil
}
