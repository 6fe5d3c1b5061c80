package plan

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	plans []StudyPlan
	err   error
}

func (r *fakeRepo) CreatePlan(_ context.Context, p StudyPlan) (StudyPlan, error) {
	if r.err != nil {
		return StudyPlan{}, r.err
	}
	r.plans = append(r.plans, p)
	return p, nil
}

func (r *fakeRepo) GetLastPlanByUser(_ context.Context, userID string) (StudyPlan, error) {
	var last *StudyPlan
	for i := range r.plans {
		p := &r.plans[i]
		if p.UserID != userID {
			continue
		}
		if last == nil || p.CreatedAt.After(last.CreatedAt) {
			last = p
		}
	}
	if last == nil {
		return StudyPlan{}, ErrNotFound
	}
	return *last, nil
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

func Test_Service_Generate(t *testing.T) {
	ctx := context.Background()
	req := Request{Language: "en", Courses: []string{"Calculus"}, DaysPerWeek: 5}

	t.Run("parsed output is persisted", func(t *testing.T) {
		repo := new(fakeRepo)
		svc := NewService(repo, &fakeGen{text: validPlanJSON}, nopLogger{})

		p, err := svc.Generate(ctx, "usr1", req)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeParsed, p.Outcome)
		assert.Equal(t, "usr1", p.UserID)
		assert.Equal(t, "A light week.", p.Overview)
		assert.Len(t, repo.plans, 1)
	})

	t.Run("anonymous owner when no user", func(t *testing.T) {
		repo := new(fakeRepo)
		svc := NewService(repo, &fakeGen{text: validPlanJSON}, nopLogger{})

		p, err := svc.Generate(ctx, "", req)
		assert.NoError(t, err)
		assert.Equal(t, AnonymousUser, p.UserID)
	})

	t.Run("model failure degrades to error-shaped plan", func(t *testing.T) {
		repo := new(fakeRepo)
		svc := NewService(repo, &fakeGen{err: errors.New("timeout")}, nopLogger{})

		p, err := svc.Generate(ctx, "usr1", req)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeFailed, p.Outcome)
		assert.Equal(t, "Error generating plan.", p.Overview)
		assert.Empty(t, p.WeeklyPlan)
		assert.Len(t, repo.plans, 1)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		repo := &fakeRepo{err: errors.New("boom")}
		svc := NewService(repo, &fakeGen{text: validPlanJSON}, nopLogger{})

		_, err := svc.Generate(ctx, "usr1", req)
		assert.Error(t, err)
	})
}

func Test_Service_Last(t *testing.T) {
	ctx := context.Background()
	repo := new(fakeRepo)
	svc := NewService(repo, &fakeGen{text: validPlanJSON}, nopLogger{})

	t.Run("nil when none", func(t *testing.T) {
		p, err := svc.Last(ctx, "usr1")
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("most recent wins", func(t *testing.T) {
		if _, err := svc.Generate(ctx, "usr1", Request{Language: "en", Courses: []string{"Calculus"}}); err != nil {
			t.Fatalf("Generate(): %v", err)
		}
		second, err := svc.Generate(ctx, "usr1", Request{Language: "en", Courses: []string{"Biology"}})
		if err != nil {
			t.Fatalf("Generate(): %v", err)
		}

		p, err := svc.Last(ctx, "usr1")
		assert.NoError(t, err)
		if assert.NotNil(t, p) {
			assert.Equal(t, second.ID, p.ID)
		}
	})
}
