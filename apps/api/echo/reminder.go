package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core/reminder"
)

type (
	reminderApi struct {
		deps ServerDeps
	}

	SubscribeResponse struct {
		OK      bool   `json:"ok"`
		Created bool   `json:"created,omitempty"`
		Updated bool   `json:"updated,omitempty"`
		TimeUTC string `json:"timeUtc"`
	}
)

var errMissingToken = echo.NewHTTPError(http.StatusBadRequest, "missing token")

func registerReminderAPI(e *echo.Echo, deps ServerDeps) {
	api := reminderApi{deps: deps}

	g := e.Group("/reminders")
	g.POST("", api.subscribe)
	g.GET("/unsubscribe", api.unsubscribe)
}

func (api *reminderApi) subscribe(ctx echo.Context) error {
	var data reminder.NewSubscription
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubscription")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	sub, created, err := api.deps.ReminderSvc.Subscribe(ctx.Request().Context(), data)
	if err != nil {
		// a bad timeZone surfaces as a field error (400) via errors.Cause
		return errors.Wrap(err, "subscribing")
	}

	return ctx.JSON(http.StatusOK, SubscribeResponse{
		OK:      true,
		Created: created,
		Updated: !created,
		TimeUTC: sub.TimeUTC,
	})
}

func (api *reminderApi) unsubscribe(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return errMissingToken
	}

	sub, err := api.deps.ReminderSvc.Unsubscribe(ctx.Request().Context(), token)
	if err != nil {
		if errors.Cause(err) == reminder.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "unsubscribing")
	}

	msg := "You have been unsubscribed from daily reminders."
	if sub.Lang == "es" {
		msg = "Has cancelado los recordatorios diarios."
	}
	return ctx.String(http.StatusOK, msg)
}
