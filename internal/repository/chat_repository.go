package repository

import (
	"context"

	"drawer/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ChatRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChatRepository(db *pgxpool.Pool, logger *zap.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ChatRepository) Create(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	query := squirrel.Insert("chat_messages").
		Columns("role", "content", "attachment_url").
		Values(msg.Role, msg.Content, msg.AttachmentURL).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	created := *msg
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, err
	}

	return &created, nil
}

// List returns the conversation log in insertion order.
func (r *ChatRepository) List(ctx context.Context) ([]*models.ChatMessage, error) {
	query := squirrel.Select("id", "role", "content", "attachment_url", "created_at").
		From("chat_messages").
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.AttachmentURL, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}

func (r *ChatRepository) Clear(ctx context.Context) error {
	query := squirrel.Delete("chat_messages").PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
