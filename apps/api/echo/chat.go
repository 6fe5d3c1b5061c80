package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core"
	"github.com/upliftai/backend/core/chat"
)

type (
	chatApi struct {
		deps ServerDeps
	}

	ChatRequest struct {
		Message  string `json:"message" validate:"required"`
		Language string `json:"language" validate:"omitempty,oneof=en es"`
	}
)

func (r *ChatRequest) Validate(validate *validator.Validate) error {
	r.Message = core.CleanString(r.Message)
	r.Language = core.NormalizeLang(r.Language)
	return validate.Struct(r)
}

func registerChatAPI(e *echo.Echo, deps ServerDeps, optAuth echo.MiddlewareFunc) {
	api := chatApi{deps: deps}
	e.POST("/chat", api.advise, optAuth)
}

func (api *chatApi) advise(ctx echo.Context) error {
	var data ChatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	reply, err := api.deps.ChatSvc.Advise(ctx.Request().Context(), data.Message, data.Language)
	if err != nil {
		// the model fallback is handled inside the service; an error here
		// means persistence failed. The student still gets a usable reply.
		api.deps.Logger.Error("chat: advise failed", err)
		return ctx.JSON(http.StatusInternalServerError, chat.Reply{
			Reply:     chat.FallbackReply(data.Language),
			Sentiment: chat.SentimentNeutral,
			Category:  chat.CategoryGeneral,
		})
	}
	return ctx.JSON(http.StatusOK, reply)
}
