package repositories

import (
	"context"

	"medivision/internal/models"
)

type ChatRepository interface {
	// Create persists the message and fills in the server-assigned ID and
	// timestamp.
	Create(ctx context.Context, msg *models.ChatMessage) error
	Conversation(ctx context.Context, viewer, other string) ([]*models.ChatMessage, error)
	MarkRead(ctx context.Context, sender, receiver string) error
	UnreadCount(ctx context.Context, receiver string) (int, error)
}

type chatRepository struct {
	db Database
}

func NewChatRepository(db Database) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	query := `INSERT INTO chat_messages (sender, receiver, message, timestamp, is_read)
		VALUES ($1, $2, $3, NOW(), false)
		RETURNING id, timestamp`
	return r.db.QueryRow(ctx, query, msg.Sender, msg.Receiver, msg.Message).
		Scan(&msg.ID, &msg.Timestamp)
}

func (r *chatRepository) Conversation(ctx context.Context, viewer, other string) ([]*models.ChatMessage, error) {
	query := `SELECT id, sender, receiver, message, timestamp, is_read FROM chat_messages
		WHERE (sender = $1 AND receiver = $2) OR (sender = $2 AND receiver = $1)
		ORDER BY timestamp ASC`
	rows, err := r.db.Query(ctx, query, viewer, other)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		msg := &models.ChatMessage{}
		if err := rows.Scan(&msg.ID, &msg.Sender, &msg.Receiver, &msg.Message,
			&msg.Timestamp, &msg.IsRead); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *chatRepository) MarkRead(ctx context.Context, sender, receiver string) error {
	query := `UPDATE chat_messages SET is_read = true
		WHERE sender = $1 AND receiver = $2 AND is_read = false`
	_, err := r.db.Exec(ctx, query, sender, receiver)
	return err
}

func (r *chatRepository) UnreadCount(ctx context.Context, receiver string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE receiver = $1 AND is_read = false`, receiver).
		Scan(&count)
	return count, err
}
