package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core/chat"
)

type chatRepository struct {
	db *sqlx.DB
}

var _ chat.Repository = (*chatRepository)(nil)

func NewChatRepository(db *sqlx.DB) *chatRepository {
	return &chatRepository{db: db}
}

func (repo chatRepository) CreateMessage(ctx context.Context, msg chat.Message) (chat.Message, error) {
	const q = `
		INSERT INTO chat_message (id, role, content, language, sentiment, category, created_at)
		VALUES (:id, :role, :content, :language, :sentiment, :category, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, msg); err != nil {
		return chat.Message{}, errors.Wrap(err, "inserting chat message")
	}
	return msg, nil
}
