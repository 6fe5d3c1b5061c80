package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core"
	"github.com/upliftai/backend/core/plan"
)

type (
	planApi struct {
		deps ServerDeps
	}

	PlanResponse struct {
		Plan    *plan.StudyPlan `json:"plan"`
		SavedID string          `json:"savedId,omitempty"`
	}

	ScheduleRequest struct {
		Courses              []string `json:"courses"`
		WorkHoursPerWeek     int      `json:"workHoursPerWeek"`
		CommuteMinutesPerDay int      `json:"commuteMinutesPerDay"`
		DaysPerWeek          int      `json:"daysPerWeek"`
	}

	ScheduleResponse struct {
		WeeklyPlan []plan.Day `json:"weeklyPlan"`
	}
)

func registerPlanAPI(e *echo.Echo, deps ServerDeps, optAuth echo.MiddlewareFunc) {
	api := planApi{deps: deps}

	g := e.Group("/study-plan", optAuth)
	g.POST("", api.generate)
	g.GET("/last", api.last)

	e.POST("/schedule", api.schedule)
}

func (api *planApi) generate(ctx echo.Context) error {
	var data plan.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to plan.Request")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	p, err := api.deps.PlanSvc.Generate(ctx.Request().Context(), contextUserID(ctx), data)
	if err != nil {
		// model failures degrade inside the service; only persistence fails here
		api.deps.Logger.Error("study plan: generate failed", err)
		return ctx.JSON(http.StatusInternalServerError, PlanResponse{Plan: nil})
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Plan: &p, SavedID: p.ID})
}

func (api *planApi) last(ctx echo.Context) error {
	p, err := api.deps.PlanSvc.Last(ctx.Request().Context(), contextUserID(ctx))
	if err != nil {
		return errors.Wrap(err, "finding last plan")
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Plan: p})
}

func (api *planApi) schedule(ctx echo.Context) error {
	var data ScheduleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScheduleRequest")
	}
	for i, c := range data.Courses {
		data.Courses[i] = core.CleanString(c)
	}

	week := plan.WeeklySchedule(data.Courses, data.WorkHoursPerWeek, data.CommuteMinutesPerDay, data.DaysPerWeek)
	return ctx.JSON(http.StatusOK, ScheduleResponse{WeeklyPlan: week})
}
