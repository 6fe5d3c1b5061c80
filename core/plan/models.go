package plan

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/upliftai/backend/core"
)

// AnonymousUser owns plans generated without an authenticated session.
const AnonymousUser = "anonymous"

// Outcome records how the model output became a structured plan.
type Outcome string

const (
	// OutcomeParsed: the model returned the plan as valid JSON directly.
	OutcomeParsed Outcome = "parsed"
	// OutcomeRecovered: JSON was recovered from surrounding prose.
	OutcomeRecovered Outcome = "recovered"
	// OutcomeRaw: the output was not JSON; the raw text is carried in a
	// single fallback block.
	OutcomeRaw Outcome = "raw"
	// OutcomeFailed: the model call itself failed; the plan is an
	// error-shaped placeholder.
	OutcomeFailed Outcome = "failed"
)

type (
	// Block is one scheduled activity inside a day.
	Block struct {
		Time            string `json:"time"`
		Task            string `json:"task"`
		DurationMinutes int    `json:"durationMinutes"`
		Notes           string `json:"notes"`
	}

	// Day is an ordered list of blocks for one weekday.
	Day struct {
		Day    string  `json:"day"`
		Blocks []Block `json:"blocks"`
	}

	// Output is the generated content of a study plan.
	Output struct {
		Overview      string   `json:"overview"`
		WeeklyPlan    []Day    `json:"weeklyPlan"`
		Tips          []string `json:"tips"`
		CopingToolbox []string `json:"copingToolbox"`
	}

	// StudyPlan is one immutable generation result: the request inputs plus
	// the generated output.
	StudyPlan struct {
		ID       string `json:"id" db:"id"`
		UserID   string `json:"userId" db:"user_id"`
		Language string `json:"language" db:"language"`

		Courses              []string `json:"courses"`
		WorkHoursPerWeek     int      `json:"workHoursPerWeek" db:"work_hours_per_week"`
		CommuteMinutesPerDay int      `json:"commuteMinutesPerDay" db:"commute_minutes_per_day"`
		DaysPerWeek          int      `json:"daysPerWeek" db:"days_per_week"`
		Focus                string   `json:"focus" db:"focus"`

		Output
		Outcome   Outcome   `json:"outcome" db:"outcome"`
		CreatedAt time.Time `json:"created_at" db:"created_at"`
	}

	// Request carries the student context a plan is generated from.
	Request struct {
		Language             string   `json:"language" validate:"omitempty,oneof=en es"`
		Courses              []string `json:"courses" validate:"required,min=1,dive,required"`
		WorkHoursPerWeek     int      `json:"workHoursPerWeek" validate:"min=0"`
		CommuteMinutesPerDay int      `json:"commuteMinutesPerDay" validate:"min=0"`
		DaysPerWeek          int      `json:"daysPerWeek" validate:"min=0,max=7"`
		Focus                string   `json:"focus"`
	}
)

func (r *Request) Validate(validate *validator.Validate) error {
	r.Language = core.NormalizeLang(r.Language)
	for i, c := range r.Courses {
		r.Courses[i] = core.CleanString(c)
	}
	r.Focus = core.CleanString(r.Focus)
	if r.DaysPerWeek == 0 {
		r.DaysPerWeek = 7
	}
	return validate.Struct(r)
}
