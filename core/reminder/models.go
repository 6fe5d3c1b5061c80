package reminder

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/upliftai/backend/core"
)

// Subscription is one email's daily reminder. At most one row exists per
// email; signing up again overwrites time/zone and reactivates.
//
// TimeUTC is derived once, at write time, from "today at LocalTime in
// TimeZone". It is not recomputed on daylight-saving transitions, so
// subscribers in DST-observing zones drift by one hour twice a year.
type Subscription struct {
	ID        string `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Lang      string `json:"lang" db:"lang"`
	LocalTime string `json:"localTime" db:"local_time"` // "HH:MM" in TimeZone
	TimeZone  string `json:"timeZone" db:"time_zone"`   // IANA name
	TimeUTC   string `json:"timeUtc" db:"time_utc"`     // "HH:MM", what the scheduler matches on

	IsActive         bool       `json:"isActive" db:"is_active"`
	UnsubscribeToken string     `json:"-" db:"unsubscribe_token"`
	LastSentAt       *time.Time `json:"lastSentAt,omitempty" db:"last_sent_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewSubscription is a signup (or time-change) request.
type NewSubscription struct {
	Email     string `json:"email" validate:"required,email"`
	Lang      string `json:"lang" validate:"omitempty,oneof=en es"`
	LocalTime string `json:"localTime" validate:"required,hhmm"`
	TimeZone  string `json:"timeZone" validate:"required"`
}

func (ns *NewSubscription) Validate(validate *validator.Validate) error {
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Lang = core.NormalizeLang(ns.Lang)
	ns.TimeZone = core.CleanString(ns.TimeZone)
	return validate.Struct(ns)
}
