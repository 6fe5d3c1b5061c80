package plan

import (
	"encoding/json"
	"strings"
)

// maxRawTask caps how much raw model text is carried into a fallback block.
const maxRawTask = 3000

// ParseOutput turns free model text into a plan Output, in three tiers:
// a direct JSON parse; a parse of the first '{' .. last '}' substring; and
// finally a single-block fallback plan carrying the raw text, marked as
// non-JSON output.
func ParseOutput(text, lang string) (Output, Outcome) {
	trimmed := strings.TrimSpace(text)

	var out Output
	if err := json.Unmarshal([]byte(trimmed), &out); err == nil {
		return out, OutcomeParsed
	}

	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start != -1 && end > start {
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &out); err == nil {
			return out, OutcomeRecovered
		}
	}

	return rawOutput(trimmed, lang), OutcomeRaw
}

// rawOutput wraps non-JSON model text in a displayable single-day plan.
func rawOutput(text, lang string) Output {
	overview := "Plan generated (text)."
	day := "Week"
	notes := "The model returned non-JSON; shown as text."
	if lang == "es" {
		overview = "Plan generado (texto)."
		day = "Semana"
		notes = "La respuesta no vino en JSON; se mostró como texto."
	}
	if len(text) > maxRawTask {
		text = text[:maxRawTask]
	}
	return Output{
		Overview: overview,
		WeeklyPlan: []Day{{
			Day: day,
			Blocks: []Block{{
				Time:  "—",
				Task:  text,
				Notes: notes,
			}},
		}},
		Tips:          []string{},
		CopingToolbox: []string{},
	}
}

// failedOutput is the error-shaped plan returned when the model call itself
// fails (transport error, rate limit).
func failedOutput(lang string) Output {
	overview := "Error generating plan."
	if lang == "es" {
		overview = "Error al generar el plan."
	}
	return Output{
		Overview:      overview,
		WeeklyPlan:    []Day{},
		Tips:          []string{},
		CopingToolbox: []string{},
	}
}
