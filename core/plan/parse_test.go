package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validPlanJSON = `{
  "overview": "A light week.",
  "weeklyPlan": [
    {"day": "Monday", "blocks": [
      {"time": "17:00-18:30", "task": "Study Calculus", "durationMinutes": 90, "notes": "phone away"}
    ]}
  ],
  "tips": ["sleep well"],
  "copingToolbox": ["breathing"]
}`

func Test_ParseOutput(t *testing.T) {
	t.Run("direct JSON", func(t *testing.T) {
		out, outcome := ParseOutput(validPlanJSON, "en")
		assert.Equal(t, OutcomeParsed, outcome)
		assert.Equal(t, "A light week.", out.Overview)
		if assert.Len(t, out.WeeklyPlan, 1) {
			assert.Equal(t, "Monday", out.WeeklyPlan[0].Day)
			assert.Equal(t, 90, out.WeeklyPlan[0].Blocks[0].DurationMinutes)
		}
	})

	t.Run("JSON wrapped in prose", func(t *testing.T) {
		text := "Sure! Here is your plan:\n```json\n" + validPlanJSON + "\n```\nGood luck!"
		out, outcome := ParseOutput(text, "en")
		assert.Equal(t, OutcomeRecovered, outcome)
		assert.Equal(t, "A light week.", out.Overview)
	})

	t.Run("non-JSON text falls back to raw plan", func(t *testing.T) {
		out, outcome := ParseOutput("Monday: study math. Tuesday: rest.", "en")
		assert.Equal(t, OutcomeRaw, outcome)
		assert.Equal(t, "Plan generated (text).", out.Overview)
		if assert.Len(t, out.WeeklyPlan, 1) {
			assert.Equal(t, "Week", out.WeeklyPlan[0].Day)
			assert.Equal(t, "Monday: study math. Tuesday: rest.", out.WeeklyPlan[0].Blocks[0].Task)
		}
		assert.NotNil(t, out.Tips)
		assert.NotNil(t, out.CopingToolbox)
	})

	t.Run("raw plan is localized", func(t *testing.T) {
		out, outcome := ParseOutput("texto plano", "es")
		assert.Equal(t, OutcomeRaw, outcome)
		assert.Equal(t, "Plan generado (texto).", out.Overview)
		assert.Equal(t, "Semana", out.WeeklyPlan[0].Day)
	})

	t.Run("raw text is capped", func(t *testing.T) {
		out, outcome := ParseOutput(strings.Repeat("a", maxRawTask+500), "en")
		assert.Equal(t, OutcomeRaw, outcome)
		assert.Len(t, out.WeeklyPlan[0].Blocks[0].Task, maxRawTask)
	})

	t.Run("unbalanced braces fall back to raw", func(t *testing.T) {
		_, outcome := ParseOutput("here { is not json", "en")
		assert.Equal(t, OutcomeRaw, outcome)
	})
}
