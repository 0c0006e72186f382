package db

import (
	"context"

	"github.com/gemchat/backend/internal/model"
	"github.com/google/uuid"
)

func (db *Postgres) CreateChat(ctx context.Context, userID uuid.UUID, name string) (*model.Chat, error) {
	query := `
		INSERT INTO chats (user_id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, user_id, name, created_at, updated_at
	`
	var chat model.Chat
	err := db.Pool.QueryRow(ctx, query, userID, name).Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Name,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	chat.Messages = []model.Message{}
	return &chat, nil
}

func (db *Postgres) ListChats(ctx context.Context, userID uuid.UUID) ([]model.Chat, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM chats
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []model.Chat{}
	for rows.Next() {
		var chat model.Chat
		if err := rows.Scan(
			&chat.ID,
			&chat.UserID,
			&chat.Name,
			&chat.CreatedAt,
			&chat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

func (db *Postgres) GetChat(ctx context.Context, chatID uuid.UUID) (*model.Chat, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM chats
		WHERE id = $1
	`
	var chat model.Chat
	err := db.Pool.QueryRow(ctx, query, chatID).Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Name,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	messages, err := db.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	chat.Messages = messages
	return &chat, nil
}

func (db *Postgres) DeleteChat(ctx context.Context, chatID uuid.UUID) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM chats WHERE id = $1`, chatID)
	return err
}

func (db *Postgres) ListMessages(ctx context.Context, chatID uuid.UUID) ([]model.Message, error) {
	query := `
		SELECT id, chat_id, role, content, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY id ASC
	`
	rows, err := db.Pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ChatID,
			&msg.Role,
			&msg.Content,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// InsertMessage appends a message and bumps the chat's updated_at in one
// transaction so chat ordering stays consistent with its newest message.
func (db *Postgres) InsertMessage(ctx context.Context, chatID uuid.UUID, role, content string) (*model.Message, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var msg model.Message
	err = tx.QueryRow(ctx, `
		INSERT INTO messages (chat_id, role, content, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, chat_id, role, content, created_at
	`, chatID, role, content).Scan(
		&msg.ID,
		&msg.ChatID,
		&msg.Role,
		&msg.Content,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx,
		`UPDATE chats SET updated_at = NOW() WHERE id = $1`, chatID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &msg, nil
}
