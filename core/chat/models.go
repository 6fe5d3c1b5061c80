package chat

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Sentiment is the coarse mood label derived from a student's utterance.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Category is the closed topic taxonomy used by staff analytics.
type Category string

const (
	CategoryStress     Category = "Stress"
	CategoryWorkload   Category = "Workload"
	CategoryMotivation Category = "Motivation"
	CategoryGeneral    Category = "General"
)

// Message is one persisted chat turn. Sentiment and Category are only
// meaningful on RoleUser rows; assistant rows carry empty labels.
type Message struct {
	ID        string    `json:"id" db:"id"`
	Role      string    `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	Language  string    `json:"language" db:"language"`
	Sentiment Sentiment `json:"sentiment,omitempty" db:"sentiment"`
	Category  Category  `json:"category,omitempty" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
