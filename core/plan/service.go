package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core"
)

var ErrNotFound = errors.New("study plan not found")

type (
	Repository interface {
		CreatePlan(ctx context.Context, p StudyPlan) (StudyPlan, error)
		// GetLastPlanByUser returns the most recent plan owned by userID,
		// or ErrNotFound.
		GetLastPlanByUser(ctx context.Context, userID string) (StudyPlan, error)
	}

	Service struct {
		repo   Repository
		gen    core.TextGenerator
		logger core.Logger
	}
)

func NewService(repo Repository, gen core.TextGenerator, logger core.Logger) *Service {
	return &Service{repo: repo, gen: gen, logger: logger}
}

// Generate produces and persists a study plan for the request. Model output
// that cannot be parsed degrades tier by tier (see ParseOutput); a failed
// model call degrades to an error-shaped plan rather than an error.
func (svc *Service) Generate(ctx context.Context, userID string, req Request) (StudyPlan, error) {
	if userID == "" {
		userID = AnonymousUser
	}

	var out Output
	var outcome Outcome
	text, err := svc.gen.GenerateText(ctx, prompt(req))
	if err != nil {
		svc.logger.Error(fmt.Sprintf("study plan: model call failed: %v", err), err)
		out, outcome = failedOutput(req.Language), OutcomeFailed
	} else {
		out, outcome = ParseOutput(text, req.Language)
	}

	p := StudyPlan{
		ID:                   uuid.New().String(),
		UserID:               userID,
		Language:             req.Language,
		Courses:              req.Courses,
		WorkHoursPerWeek:     req.WorkHoursPerWeek,
		CommuteMinutesPerDay: req.CommuteMinutesPerDay,
		DaysPerWeek:          req.DaysPerWeek,
		Focus:                req.Focus,
		Output:               out,
		Outcome:              outcome,
		CreatedAt:            time.Now().UTC(),
	}
	saved, err := svc.repo.CreatePlan(ctx, p)
	return saved, errors.Wrap(err, "persisting study plan")
}

// Last returns the most recent plan for userID; nil if none exists.
func (svc *Service) Last(ctx context.Context, userID string) (*StudyPlan, error) {
	if userID == "" {
		userID = AnonymousUser
	}
	p, err := svc.repo.GetLastPlanByUser(ctx, userID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding last plan")
	}
	return &p, nil
}

// prompt builds the strict-JSON generation instruction.
func prompt(req Request) string {
	langLabel := "English"
	if req.Language == "es" {
		langLabel = "Spanish"
	}
	return fmt.Sprintf(`You are UpliftAI, a student success micro-advisor.
Return ONLY valid JSON. No markdown. No extra text.

Language: %s

Student context:
- Courses: %s
- Work hours/week: %d
- Commute minutes/day: %d
- Days per week to plan: %d
- Focus / upcoming: %s

Goal:
Create a realistic weekly study plan with time blocks and coping/wellness tips.

Output JSON schema exactly:
{
  "overview": "string",
  "weeklyPlan": [
    {
      "day": "Monday",
      "blocks": [
        { "time": "HH:MM-HH:MM", "task": "string", "durationMinutes": 0, "notes": "string" }
      ]
    }
  ],
  "tips": ["string", "string", "string"],
  "copingToolbox": ["string", "string", "string"]
}

Rules:
- Use 2 to 5 blocks per day.
- Distribute study across courses.
- Include breaks and 1 wellness action daily.
- Keep it supportive and realistic.`,
		langLabel, strings.Join(req.Courses, ", "), req.WorkHoursPerWeek,
		req.CommuteMinutesPerDay, req.DaysPerWeek, req.Focus)
}
