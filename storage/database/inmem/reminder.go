package inmemdb

import (
	"context"
	"time"

	"github.com/upliftai/backend/core/reminder"
)

type reminderRepository struct {
	db *subscriptionTable
}

func NewReminderRepository(db *DB) reminder.Repository {
	return &reminderRepository{db: db.subscriptions}
}

func (repo *reminderRepository) CreateSubscription(_ context.Context, sub reminder.Subscription) (reminder.Subscription, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[sub.ID] = &sub
	return sub, nil
}

func (repo *reminderRepository) UpdateSubscription(_ context.Context, sub reminder.Subscription) (reminder.Subscription, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[sub.ID]
	if !ok {
		return reminder.Subscription{}, reminder.ErrNotFound
	}
	sub.LastSentAt = orig.LastSentAt
	repo.db.table[sub.ID] = &sub
	return sub, nil
}

func (repo *reminderRepository) GetSubscriptionByEmail(_ context.Context, email string) (reminder.Subscription, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, sub := range repo.db.table {
		if sub.Email == email {
			return *sub, nil
		}
	}
	return reminder.Subscription{}, reminder.ErrNotFound
}

func (repo *reminderRepository) GetSubscriptionByToken(_ context.Context, token string) (reminder.Subscription, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, sub := range repo.db.table {
		if sub.UnsubscribeToken == token {
			return *sub, nil
		}
	}
	return reminder.Subscription{}, reminder.ErrNotFound
}

func (repo *reminderRepository) DueSubscriptions(_ context.Context, timeUTC string) ([]reminder.Subscription, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var due []reminder.Subscription
	for _, sub := range repo.db.table {
		if sub.IsActive && sub.TimeUTC == timeUTC {
			due = append(due, *sub)
		}
	}
	return due, nil
}

func (repo *reminderRepository) MarkSent(_ context.Context, id string, at time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	sub, ok := repo.db.table[id]
	if !ok {
		return reminder.ErrNotFound
	}
	sub.LastSentAt = &at
	return nil
}
