package chat

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	msgs []Message
	err  error
}

func (r *fakeRepo) CreateMessage(_ context.Context, msg Message) (Message, error) {
	if r.err != nil {
		return Message{}, r.err
	}
	r.msgs = append(r.msgs, msg)
	return msg, nil
}

type fakeGen struct {
	text string
	err  error
}

func (g *fakeGen) GenerateText(context.Context, string) (string, error) { return g.text, g.err }

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func Test_Service_Advise(t *testing.T) {
	ctx := context.Background()

	t.Run("model reply is returned and both turns persisted", func(t *testing.T) {
		repo := new(fakeRepo)
		svc := NewService(repo, &fakeGen{text: "Try a 25-minute pomodoro."}, nopLogger{})

		reply, err := svc.Advise(ctx, "I'm so stressed about finals", "en")
		assert.NoError(t, err)
		assert.Equal(t, "Try a 25-minute pomodoro.", reply.Reply)
		assert.Equal(t, SentimentNegative, reply.Sentiment)
		assert.Equal(t, CategoryStress, reply.Category)

		if assert.Len(t, repo.msgs, 2) {
			usr, ast := repo.msgs[0], repo.msgs[1]
			assert.Equal(t, RoleUser, usr.Role)
			assert.Equal(t, SentimentNegative, usr.Sentiment)
			assert.Equal(t, CategoryStress, usr.Category)

			// assistant rows never carry labels
			assert.Equal(t, RoleAssistant, ast.Role)
			assert.Empty(t, ast.Sentiment)
			assert.Empty(t, ast.Category)
			assert.Equal(t, "Try a 25-minute pomodoro.", ast.Content)
		}
	})

	t.Run("model failure degrades to fallback reply", func(t *testing.T) {
		repo := new(fakeRepo)
		svc := NewService(repo, &fakeGen{err: errors.New("429 rate limited")}, nopLogger{})

		reply, err := svc.Advise(ctx, "hola", "es")
		assert.NoError(t, err)
		assert.Equal(t, FallbackReply("es"), reply.Reply)
		assert.Len(t, repo.msgs, 2)
	})

	t.Run("empty model output degrades to fallback reply", func(t *testing.T) {
		repo := new(fakeRepo)
		svc := NewService(repo, &fakeGen{text: ""}, nopLogger{})

		reply, err := svc.Advise(ctx, "hello", "en")
		assert.NoError(t, err)
		assert.Equal(t, FallbackReply("en"), reply.Reply)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		repo := &fakeRepo{err: errors.New("boom")}
		svc := NewService(repo, &fakeGen{text: "ok"}, nopLogger{})

		_, err := svc.Advise(ctx, "hello", "en")
		assert.Error(t, err)
	})
}
