package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/upliftai/backend/core"
)

type fakeRepo struct {
	mu   sync.Mutex
	subs map[string]*Subscription
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{subs: make(map[string]*Subscription)}
}

func (r *fakeRepo) CreateSubscription(_ context.Context, sub Subscription) (Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.ID] = &sub
	return sub, nil
}

func (r *fakeRepo) UpdateSubscription(_ context.Context, sub Subscription) (Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orig, ok := r.subs[sub.ID]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	sub.LastSentAt = orig.LastSentAt
	r.subs[sub.ID] = &sub
	return sub, nil
}

func (r *fakeRepo) GetSubscriptionByEmail(_ context.Context, email string) (Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.Email == email {
			return *sub, nil
		}
	}
	return Subscription{}, ErrNotFound
}

func (r *fakeRepo) GetSubscriptionByToken(_ context.Context, token string) (Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.UnsubscribeToken == token {
			return *sub, nil
		}
	}
	return Subscription{}, ErrNotFound
}

func (r *fakeRepo) DueSubscriptions(_ context.Context, timeUTC string) ([]Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []Subscription
	for _, sub := range r.subs {
		if sub.IsActive && sub.TimeUTC == timeUTC {
			due = append(due, *sub)
		}
	}
	return due, nil
}

func (r *fakeRepo) MarkSent(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[id]
	if !ok {
		return ErrNotFound
	}
	sub.LastSentAt = &at
	return nil
}

// winterDay pins a date outside daylight saving so zone offsets are stable.
var winterDay = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func Test_UTCTime(t *testing.T) {
	tests := []struct {
		name      string
		localTime string
		timeZone  string
		want      string
		wantErr   error
	}{
		{name: "UTC passthrough", localTime: "09:30", timeZone: "UTC", want: "09:30"},
		{name: "Los Angeles standard time", localTime: "09:00", timeZone: "America/Los_Angeles", want: "17:00"},
		{name: "New York standard time", localTime: "09:00", timeZone: "America/New_York", want: "14:00"},
		{name: "Madrid standard time", localTime: "09:00", timeZone: "Europe/Madrid", want: "08:00"},
		{name: "wraps past midnight", localTime: "23:00", timeZone: "America/Los_Angeles", want: "07:00"},
		{name: "bad zone", localTime: "09:00", timeZone: "Mars/Olympus", wantErr: ErrBadTimeZone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UTCTime(tt.localTime, tt.timeZone, winterDay)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Service_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("first signup creates", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		svc.now = func() time.Time { return winterDay }

		sub, created, err := svc.Subscribe(ctx, NewSubscription{
			Email: "a@test.cd", Lang: "en", LocalTime: "09:00", TimeZone: "America/Los_Angeles",
		})
		assert.NoError(t, err)
		assert.True(t, created)
		assert.True(t, sub.IsActive)
		assert.Equal(t, "17:00", sub.TimeUTC)
		assert.NotEmpty(t, sub.ID)
		assert.NotEmpty(t, sub.UnsubscribeToken)
	})

	t.Run("second signup upserts and reactivates", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		svc.now = func() time.Time { return winterDay }

		first, _, err := svc.Subscribe(ctx, NewSubscription{
			Email: "a@test.cd", Lang: "en", LocalTime: "09:00", TimeZone: "America/Los_Angeles",
		})
		assert.NoError(t, err)

		if _, err = svc.Unsubscribe(ctx, first.UnsubscribeToken); err != nil {
			t.Fatalf("Unsubscribe(): %v", err)
		}

		second, created, err := svc.Subscribe(ctx, NewSubscription{
			Email: "a@test.cd", Lang: "es", LocalTime: "21:15", TimeZone: "UTC",
		})
		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.UnsubscribeToken, second.UnsubscribeToken)
		assert.Equal(t, "es", second.Lang)
		assert.Equal(t, "21:15", second.TimeUTC)
		assert.True(t, second.IsActive)
		assert.Len(t, repo.subs, 1)
	})

	t.Run("bad timezone rejects without mutation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		_, _, err := svc.Subscribe(ctx, NewSubscription{
			Email: "a@test.cd", Lang: "en", LocalTime: "09:00", TimeZone: "Mars/Olympus",
		})
		_, ok := errors.Cause(err).(*core.ValidationError)
		assert.True(t, ok)
		assert.Empty(t, repo.subs)
	})
}

func Test_Service_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return winterDay }

	sub, _, err := svc.Subscribe(ctx, NewSubscription{
		Email: "a@test.cd", Lang: "en", LocalTime: "09:00", TimeZone: "UTC",
	})
	if err != nil {
		t.Fatalf("Subscribe(): %v", err)
	}

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.Unsubscribe(ctx, "nope")
		assert.Equal(t, ErrNotFound, errors.Cause(err))
	})

	t.Run("deactivates", func(t *testing.T) {
		got, err := svc.Unsubscribe(ctx, sub.UnsubscribeToken)
		assert.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("idempotent", func(t *testing.T) {
		got, err := svc.Unsubscribe(ctx, sub.UnsubscribeToken)
		assert.NoError(t, err)
		assert.False(t, got.IsActive)
	})
}
