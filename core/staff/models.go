package staff

import (
	"time"

	"github.com/upliftai/backend/core/chat"
)

type (
	// Summary is the dashboard headline: totals over the lookback window.
	Summary struct {
		Days            int                    `json:"days"`
		TotalMessages   int                    `json:"totalMessages"`
		CategoryCounts  map[chat.Category]int  `json:"categoryCounts"`
		SentimentCounts map[chat.Sentiment]int `json:"sentimentCounts"`
	}

	// SentimentPoint is one calendar day's sentiment tally.
	SentimentPoint struct {
		Date     string `json:"date"` // "YYYY-MM-DD"
		Positive int    `json:"positive"`
		Neutral  int    `json:"neutral"`
		Negative int    `json:"negative"`
	}

	// PlanPoint is one calendar day's generated-plan count.
	PlanPoint struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}

	// HourPoint is one UTC hour's message count.
	HourPoint struct {
		Hour  string `json:"hour"` // "HH:00"
		Count int    `json:"count"`
	}

	// RecentMessage is a chat log row stripped of identity fields.
	RecentMessage struct {
		Content   string         `json:"content" db:"content"`
		Language  string         `json:"language" db:"language"`
		Sentiment chat.Sentiment `json:"sentiment" db:"sentiment"`
		Category  chat.Category  `json:"category" db:"category"`
		CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	}
)
