package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Analyze(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantSentiment Sentiment
		wantCategory  Category
	}{
		{name: "empty", text: "", wantSentiment: SentimentNeutral, wantCategory: CategoryGeneral},
		{name: "plain", text: "what should I study tonight?", wantSentiment: SentimentNeutral, wantCategory: CategoryGeneral},
		{name: "stress", text: "I'm so stressed about finals", wantSentiment: SentimentNegative, wantCategory: CategoryStress},
		{name: "stress es", text: "Estoy muy estresado por los examenes", wantSentiment: SentimentNegative, wantCategory: CategoryStress},
		{name: "anxious", text: "feeling anxious lately", wantSentiment: SentimentNegative, wantCategory: CategoryStress},
		{name: "overwhelmed", text: "I am OVERWHELMED", wantSentiment: SentimentNegative, wantCategory: CategoryStress},
		{name: "positive", text: "I feel motivated today!", wantSentiment: SentimentPositive, wantCategory: CategoryMotivation},
		{name: "positive es", text: "estoy motivado", wantSentiment: SentimentPositive, wantCategory: CategoryMotivation},
		{name: "happy", text: "so happy with my grade", wantSentiment: SentimentPositive, wantCategory: CategoryGeneral},
		{name: "workload", text: "my job leaves no time to study", wantSentiment: SentimentNeutral, wantCategory: CategoryWorkload},
		{name: "workload es", text: "el trabajo no me deja estudiar", wantSentiment: SentimentNeutral, wantCategory: CategoryWorkload},
		// stress outranks workload when both match
		{name: "stress beats workload", text: "work stress is killing me", wantSentiment: SentimentNegative, wantCategory: CategoryStress},
		{name: "case insensitive", text: "StReSsEd OuT", wantSentiment: SentimentNegative, wantCategory: CategoryStress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentiment, category := Analyze(tt.text)
			assert.Equal(t, tt.wantSentiment, sentiment)
			assert.Equal(t, tt.wantCategory, category)
		})
	}
}
