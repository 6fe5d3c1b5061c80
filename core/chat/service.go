package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core"
)

type (
	Repository interface {
		CreateMessage(ctx context.Context, msg Message) (Message, error)
	}

	// Reply is what the student gets back from one chat turn.
	Reply struct {
		Reply     string    `json:"reply"`
		Sentiment Sentiment `json:"sentiment"`
		Category  Category  `json:"category"`
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

// Advise answers one student message: tags it, asks the model for a reply
// (falling back to a canned localized reply on any model failure) and
// persists both turns. Assistant rows never carry sentiment/category.
func (svc *Service) Advise(ctx context.Context, message, lang string) (Reply, error) {
	lang = core.NormalizeLang(lang)
	sentiment, category := Analyze(message)

	reply := svc.generateReply(ctx, message, lang)

	now := time.Now().UTC()
	userMsg := Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   message,
		Language:  lang,
		Sentiment: sentiment,
		Category:  category,
		CreatedAt: now,
	}
	if _, err := svc.repo.CreateMessage(ctx, userMsg); err != nil {
		return Reply{}, errors.Wrap(err, "persisting user message")
	}

	assistantMsg := Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Content:   reply,
		Language:  lang,
		CreatedAt: now,
	}
	if _, err := svc.repo.CreateMessage(ctx, assistantMsg); err != nil {
		return Reply{}, errors.Wrap(err, "persisting assistant message")
	}

	return Reply{Reply: reply, Sentiment: sentiment, Category: category}, nil
}

func (svc *Service) generateReply(ctx context.Context, message, lang string) string {
	prompt := fmt.Sprintf("%s\n\nStudent: %s\nUpliftAI:", systemPrompt(lang), message)
	text, err := svc.gen.GenerateText(ctx, prompt)
	if err != nil {
		// rate limits included; the student always gets a usable reply
		svc.logger.Error(fmt.Sprintf("chat: model call failed: %v", err), err)
		return FallbackReply(lang)
	}
	if text == "" {
		return FallbackReply(lang)
	}
	return text
}

// FallbackReply is the canned advisor reply used when the model is
// unavailable or returns nothing.
func FallbackReply(lang string) string {
	if lang == "es" {
		return "Ahora mismo el servicio de IA está ocupado. Un paso rápido: inhala 4s, mantén 2s, exhala 6s (3 veces). " +
			"¿Cuántos cursos llevas y cuántas horas trabajas a la semana?"
	}
	return "The AI service is busy right now. Quick reset: inhale 4s, hold 2s, exhale 6s (3 times). " +
		"How many classes are you taking and how many hours do you work per week?"
}

func systemPrompt(lang string) string {
	if lang == "es" {
		return `Eres UpliftAI, un micro-asesor para estudiantes (académico + bienestar).
Reglas:
- Responde en español claro, amable y práctico.
- Sé breve (máx 8–10 líneas).
- Da pasos accionables.
- Haz 1 pregunta de seguimiento si falta contexto.
- Si hay crisis (autolesión/suicidio), recomienda ayuda inmediata y recursos de emergencia.
- No pidas datos personales.`
	}
	return `You are UpliftAI, a student micro-advisor (academics + wellness).
Rules:
- Reply in clear, friendly English.
- Be concise (max 8–10 lines).
- Give actionable steps.
- Ask 1 follow-up question if context is missing.
- If there is crisis content (self-harm/suicide), encourage immediate help and emergency resources.
- Do not ask for personal identifying info.`
}
