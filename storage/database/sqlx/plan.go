package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core/plan"
)

type planRepository struct {
	db *sqlx.DB
}

var _ plan.Repository = (*planRepository)(nil)

func NewPlanRepository(db *sqlx.DB) *planRepository {
	return &planRepository{db: db}
}

// planRow maps StudyPlan to the table; the nested weekly structure and the
// string lists live in jsonb columns.
type planRow struct {
	ID                   string    `db:"id"`
	UserID               string    `db:"user_id"`
	Language             string    `db:"language"`
	Courses              []byte    `db:"courses"`
	WorkHoursPerWeek     int       `db:"work_hours_per_week"`
	CommuteMinutesPerDay int       `db:"commute_minutes_per_day"`
	DaysPerWeek          int       `db:"days_per_week"`
	Focus                string    `db:"focus"`
	Overview             string    `db:"overview"`
	WeeklyPlan           []byte    `db:"weekly_plan"`
	Tips                 []byte    `db:"tips"`
	CopingToolbox        []byte    `db:"coping_toolbox"`
	Outcome              string    `db:"outcome"`
	CreatedAt            time.Time `db:"created_at"`
}

func (repo planRepository) row(p plan.StudyPlan) (planRow, error) {
	courses, err := json.Marshal(p.Courses)
	if err != nil {
		return planRow{}, err
	}
	week, err := json.Marshal(p.WeeklyPlan)
	if err != nil {
		return planRow{}, err
	}
	tips, err := json.Marshal(p.Tips)
	if err != nil {
		return planRow{}, err
	}
	coping, err := json.Marshal(p.CopingToolbox)
	if err != nil {
		return planRow{}, err
	}
	return planRow{
		ID:                   p.ID,
		UserID:               p.UserID,
		Language:             p.Language,
		Courses:              courses,
		WorkHoursPerWeek:     p.WorkHoursPerWeek,
		CommuteMinutesPerDay: p.CommuteMinutesPerDay,
		DaysPerWeek:          p.DaysPerWeek,
		Focus:                p.Focus,
		Overview:             p.Overview,
		WeeklyPlan:           week,
		Tips:                 tips,
		CopingToolbox:        coping,
		Outcome:              string(p.Outcome),
		CreatedAt:            p.CreatedAt,
	}, nil
}

func (repo planRepository) unrow(r planRow) (plan.StudyPlan, error) {
	p := plan.StudyPlan{
		ID:                   r.ID,
		UserID:               r.UserID,
		Language:             r.Language,
		WorkHoursPerWeek:     r.WorkHoursPerWeek,
		CommuteMinutesPerDay: r.CommuteMinutesPerDay,
		DaysPerWeek:          r.DaysPerWeek,
		Focus:                r.Focus,
		Outcome:              plan.Outcome(r.Outcome),
		CreatedAt:            r.CreatedAt,
	}
	p.Overview = r.Overview
	if err := json.Unmarshal(r.Courses, &p.Courses); err != nil {
		return plan.StudyPlan{}, err
	}
	if err := json.Unmarshal(r.WeeklyPlan, &p.WeeklyPlan); err != nil {
		return plan.StudyPlan{}, err
	}
	if err := json.Unmarshal(r.Tips, &p.Tips); err != nil {
		return plan.StudyPlan{}, err
	}
	if err := json.Unmarshal(r.CopingToolbox, &p.CopingToolbox); err != nil {
		return plan.StudyPlan{}, err
	}
	return p, nil
}

func (repo planRepository) CreatePlan(ctx context.Context, p plan.StudyPlan) (plan.StudyPlan, error) {
	r, err := repo.row(p)
	if err != nil {
		return plan.StudyPlan{}, errors.Wrap(err, "encoding study plan")
	}
	const q = `
		INSERT INTO study_plan
			(id, user_id, language, courses, work_hours_per_week, commute_minutes_per_day,
			 days_per_week, focus, overview, weekly_plan, tips, coping_toolbox, outcome, created_at)
		VALUES
			(:id, :user_id, :language, :courses, :work_hours_per_week, :commute_minutes_per_day,
			 :days_per_week, :focus, :overview, :weekly_plan, :tips, :coping_toolbox, :outcome, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, r); err != nil {
		return plan.StudyPlan{}, errors.Wrap(err, "inserting study plan")
	}
	return p, nil
}

func (repo planRepository) GetLastPlanByUser(ctx context.Context, userID string) (plan.StudyPlan, error) {
	var r planRow
	const q = `SELECT * FROM study_plan WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	if err := repo.db.GetContext(ctx, &r, q, userID); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return plan.StudyPlan{}, plan.ErrNotFound
		}
		return plan.StudyPlan{}, errors.Wrap(err, "finding last plan")
	}
	p, err := repo.unrow(r)
	return p, errors.Wrap(err, "decoding study plan")
}
