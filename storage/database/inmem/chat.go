package inmemdb

import (
	"context"

	"github.com/upliftai/backend/core/chat"
)

type chatRepository struct {
	db *messageTable
}

func NewChatRepository(db *DB) chat.Repository {
	return &chatRepository{db: db.messages}
}

func (repo *chatRepository) CreateMessage(_ context.Context, msg chat.Message) (chat.Message, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table = append(repo.db.table, msg)
	return msg, nil
}
