package reminder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core"
)

var (
	ErrNotFound    = errors.New("subscription not found")
	ErrBadTimeZone = errors.New("invalid timeZone")
)

type (
	Repository interface {
		CreateSubscription(ctx context.Context, sub Subscription) (Subscription, error)
		UpdateSubscription(ctx context.Context, sub Subscription) (Subscription, error)
		GetSubscriptionByEmail(ctx context.Context, email string) (Subscription, error)
		GetSubscriptionByToken(ctx context.Context, token string) (Subscription, error)
		// DueSubscriptions returns all active subscriptions whose TimeUTC
		// equals the given "HH:MM" minute.
		DueSubscriptions(ctx context.Context, timeUTC string) ([]Subscription, error)
		MarkSent(ctx context.Context, id string, at time.Time) error
	}

	Service struct {
		repo Repository
		now  func() time.Time // injected for tests
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// UTCTime converts a local "HH:MM" in the given IANA zone to the UTC "HH:MM"
// it corresponds to on the day of `now`. The localTime is assumed
// pre-validated against the HH:MM pattern.
func UTCTime(localTime, timeZone string, now time.Time) (string, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return "", ErrBadTimeZone
	}

	parts := strings.SplitN(localTime, ":", 2)
	hh, _ := strconv.Atoi(parts[0])
	mm, _ := strconv.Atoi(parts[1])

	today := now.In(loc)
	local := time.Date(today.Year(), today.Month(), today.Day(), hh, mm, 0, 0, loc)
	return local.UTC().Format("15:04"), nil
}

// Subscribe upserts the subscription for ns.Email: one row per email, a
// second signup overwrites time/zone/lang and reactivates. Returns the
// subscription and whether it was created (vs updated).
func (svc *Service) Subscribe(ctx context.Context, ns NewSubscription) (Subscription, bool, error) {
	timeUTC, err := UTCTime(ns.LocalTime, ns.TimeZone, svc.now())
	if err != nil {
		return Subscription{}, false, core.NewValidationError(err,
			core.FieldError{Field: "timeZone", Error: ErrBadTimeZone.Error()})
	}

	now := svc.now().UTC()

	existing, err := svc.repo.GetSubscriptionByEmail(ctx, ns.Email)
	if err == nil {
		existing.Lang = ns.Lang
		existing.LocalTime = ns.LocalTime
		existing.TimeZone = ns.TimeZone
		existing.TimeUTC = timeUTC
		existing.IsActive = true
		existing.UpdatedAt = now
		sub, err := svc.repo.UpdateSubscription(ctx, existing)
		return sub, false, errors.Wrap(err, "updating subscription")
	}
	if errors.Cause(err) != ErrNotFound {
		return Subscription{}, false, errors.Wrap(err, "finding subscription by email")
	}

	sub := Subscription{
		ID:               uuid.New().String(),
		Email:            ns.Email,
		Lang:             ns.Lang,
		LocalTime:        ns.LocalTime,
		TimeZone:         ns.TimeZone,
		TimeUTC:          timeUTC,
		IsActive:         true,
		UnsubscribeToken: newUnsubscribeToken(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	sub, err = svc.repo.CreateSubscription(ctx, sub)
	return sub, true, errors.Wrap(err, "creating subscription")
}

// Unsubscribe deactivates the subscription owning the token. Possession of
// the token is the sole credential. Idempotent: a second call with the same
// token succeeds again.
func (svc *Service) Unsubscribe(ctx context.Context, token string) (Subscription, error) {
	sub, err := svc.repo.GetSubscriptionByToken(ctx, token)
	if err != nil {
		return Subscription{}, err
	}
	sub.IsActive = false
	sub.UpdatedAt = svc.now().UTC()
	return svc.repo.UpdateSubscription(ctx, sub)
}

// Due returns active subscriptions matching the given UTC minute.
func (svc *Service) Due(ctx context.Context, timeUTC string) ([]Subscription, error) {
	return svc.repo.DueSubscriptions(ctx, timeUTC)
}

func (svc *Service) MarkSent(ctx context.Context, id string, at time.Time) error {
	return svc.repo.MarkSent(ctx, id, at)
}

// newUnsubscribeToken returns a globally unique opaque token.
func newUnsubscribeToken() string {
	return fmt.Sprintf("%s%s",
		strings.ReplaceAll(uuid.New().String(), "-", ""),
		strings.ReplaceAll(uuid.New().String(), "-", ""))
}
