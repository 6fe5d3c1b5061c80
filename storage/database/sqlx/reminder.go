package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core/reminder"
)

type reminderRepository struct {
	db *sqlx.DB
}

var _ reminder.Repository = (*reminderRepository)(nil)

func NewReminderRepository(db *sqlx.DB) *reminderRepository {
	return &reminderRepository{db: db}
}

func (repo reminderRepository) CreateSubscription(ctx context.Context, sub reminder.Subscription) (reminder.Subscription, error) {
	const q = `
		INSERT INTO reminder_subscription
			(id, email, lang, local_time, time_zone, time_utc, is_active, unsubscribe_token, last_sent_at, created_at, updated_at)
		VALUES
			(:id, :email, :lang, :local_time, :time_zone, :time_utc, :is_active, :unsubscribe_token, :last_sent_at, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, sub); err != nil {
		return reminder.Subscription{}, errors.Wrap(err, "inserting subscription")
	}
	return sub, nil
}

func (repo reminderRepository) UpdateSubscription(ctx context.Context, sub reminder.Subscription) (reminder.Subscription, error) {
	const q = `
		UPDATE reminder_subscription
		SET lang = :lang, local_time = :local_time, time_zone = :time_zone, time_utc = :time_utc,
		    is_active = :is_active, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, sub)
	if err != nil {
		return reminder.Subscription{}, errors.Wrap(err, "updating subscription")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return reminder.Subscription{}, reminder.ErrNotFound
	}
	return sub, nil
}

func (repo reminderRepository) GetSubscriptionByEmail(ctx context.Context, email string) (reminder.Subscription, error) {
	var sub reminder.Subscription
	err := repo.db.GetContext(ctx, &sub, `SELECT * FROM reminder_subscription WHERE email = $1`, email)
	return sub, repo.trapNoRowsErr(err, "finding subscription by email")
}

func (repo reminderRepository) GetSubscriptionByToken(ctx context.Context, token string) (reminder.Subscription, error) {
	var sub reminder.Subscription
	err := repo.db.GetContext(ctx, &sub, `SELECT * FROM reminder_subscription WHERE unsubscribe_token = $1`, token)
	return sub, repo.trapNoRowsErr(err, "finding subscription by token")
}

func (repo reminderRepository) DueSubscriptions(ctx context.Context, timeUTC string) ([]reminder.Subscription, error) {
	var subs []reminder.Subscription
	const q = `SELECT * FROM reminder_subscription WHERE is_active AND time_utc = $1`
	if err := repo.db.SelectContext(ctx, &subs, q, timeUTC); err != nil {
		return nil, errors.Wrap(err, "querying due subscriptions")
	}
	return subs, nil
}

func (repo reminderRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE reminder_subscription SET last_sent_at = $2 WHERE id = $1`
	_, err := repo.db.ExecContext(ctx, q, id, at)
	return errors.Wrap(err, "marking subscription sent")
}

func (repo reminderRepository) trapNoRowsErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Cause(err) == sql.ErrNoRows {
		return reminder.ErrNotFound
	}
	return errors.Wrap(err, msg)
}
