package chat

import "strings"

// Keyword rules, checked in order; the first matching rule wins.
// English and Spanish variants of the same concepts; bare stems
// ("stress", "estres") also match their inflections.
var (
	stressHints     = []string{"stress", "estres", "anxious", "overwhelmed"}
	positiveHints   = []string{"motivated", "motivation", "motivado", "happy", "confident"}
	workloadHints   = []string{"work", "job", "trabajo"}
	motivationHints = []string{"motivation", "motivated", "motivado"}
)

// Analyze tags free text with a sentiment and a topic category.
// Pure and total: any input yields a label pair, defaulting to
// neutral/General.
func Analyze(text string) (Sentiment, Category) {
	lower := strings.ToLower(text)

	sentiment := SentimentNeutral
	if containsAny(lower, stressHints) {
		sentiment = SentimentNegative
	} else if containsAny(lower, positiveHints) {
		sentiment = SentimentPositive
	}

	category := CategoryGeneral
	switch {
	case containsAny(lower, stressHints):
		category = CategoryStress
	case containsAny(lower, workloadHints):
		category = CategoryWorkload
	case containsAny(lower, motivationHints):
		category = CategoryMotivation
	}

	return sentiment, category
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
