// Package inmemdb is an in-memory implementation of the repositories,
// used by package tests and local experiments.
package inmemdb

import (
	"sync"

	"github.com/upliftai/backend/core/account"
	"github.com/upliftai/backend/core/chat"
	"github.com/upliftai/backend/core/plan"
	"github.com/upliftai/backend/core/reminder"
)

type (
	DB struct {
		accounts      *accountTable
		messages      *messageTable
		subscriptions *subscriptionTable
		plans         *planTable
	}

	accountTable struct {
		sync.RWMutex
		table map[string]*account.Account // by ID
	}

	messageTable struct {
		sync.RWMutex
		table []chat.Message // insertion order
	}

	subscriptionTable struct {
		sync.RWMutex
		table map[string]*reminder.Subscription // by ID
	}

	planTable struct {
		sync.RWMutex
		table []plan.StudyPlan // insertion order
	}
)

func Open() *DB {
	return &DB{
		accounts:      &accountTable{table: make(map[string]*account.Account)},
		messages:      &messageTable{},
		subscriptions: &subscriptionTable{table: make(map[string]*reminder.Subscription)},
		plans:         &planTable{},
	}
}
