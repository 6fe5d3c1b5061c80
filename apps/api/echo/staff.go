package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core/staff"
)

type (
	staffApi struct {
		deps ServerDeps
	}

	SentimentTrendResponse struct {
		Days   int                    `json:"days"`
		Points []staff.SentimentPoint `json:"points"`
	}

	PlansTrendResponse struct {
		Days   int               `json:"days"`
		Points []staff.PlanPoint `json:"points"`
	}

	PeakHoursResponse struct {
		Days   int               `json:"days"`
		Points []staff.HourPoint `json:"points"`
	}

	RecentMessagesResponse struct {
		Messages []staff.RecentMessage `json:"messages"`
	}
)

func registerStaffAPI(e *echo.Echo, deps ServerDeps, jwt echo.MiddlewareFunc) {
	api := staffApi{deps: deps}

	g := e.Group("/staff", jwt, staffMiddleware())
	g.GET("/summary", api.summary)
	g.GET("/sentiment-trend", api.sentimentTrend)
	g.GET("/plans-trend", api.plansTrend)
	g.GET("/peak-hours", api.peakHours)
	g.GET("/recent", api.recent)
}

func (api *staffApi) summary(ctx echo.Context) error {
	s, err := api.deps.StaffSvc.Summary(ctx.Request().Context(), queryInt(ctx, "days"))
	if err != nil {
		return errors.Wrap(err, "building summary")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *staffApi) sentimentTrend(ctx echo.Context) error {
	days, points, err := api.deps.StaffSvc.SentimentTrend(ctx.Request().Context(), queryInt(ctx, "days"))
	if err != nil {
		return errors.Wrap(err, "building sentiment trend")
	}
	if points == nil {
		points = []staff.SentimentPoint{}
	}
	return ctx.JSON(http.StatusOK, SentimentTrendResponse{Days: days, Points: points})
}

func (api *staffApi) plansTrend(ctx echo.Context) error {
	days, points, err := api.deps.StaffSvc.PlansTrend(ctx.Request().Context(), queryInt(ctx, "days"))
	if err != nil {
		return errors.Wrap(err, "building plans trend")
	}
	if points == nil {
		points = []staff.PlanPoint{}
	}
	return ctx.JSON(http.StatusOK, PlansTrendResponse{Days: days, Points: points})
}

func (api *staffApi) peakHours(ctx echo.Context) error {
	days, points, err := api.deps.StaffSvc.PeakHours(ctx.Request().Context(), queryInt(ctx, "days"))
	if err != nil {
		return errors.Wrap(err, "building peak hours")
	}
	if points == nil {
		points = []staff.HourPoint{}
	}
	return ctx.JSON(http.StatusOK, PeakHoursResponse{Days: days, Points: points})
}

func (api *staffApi) recent(ctx echo.Context) error {
	msgs, err := api.deps.StaffSvc.Recent(ctx.Request().Context(), queryInt(ctx, "limit"))
	if err != nil {
		return errors.Wrap(err, "listing recent messages")
	}
	if msgs == nil {
		msgs = []staff.RecentMessage{}
	}
	return ctx.JSON(http.StatusOK, RecentMessagesResponse{Messages: msgs})
}

// queryInt parses an integer query param; 0 when absent or malformed.
func queryInt(ctx echo.Context, name string) int {
	n, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
