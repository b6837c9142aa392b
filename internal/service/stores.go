package service

import (
	"context"

	"drawer/internal/dto"
	"drawer/internal/models"
)

// Store contracts the services depend on. The pgx repositories satisfy them;
// tests substitute in-memory fakes.

type DocumentStore interface {
	List(ctx context.Context) ([]*models.Document, error)
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	Delete(ctx context.Context, id int64) error
	LastByMerchant(ctx context.Context, merchant string) (*models.Document, error)
}

type NoteStore interface {
	List(ctx context.Context) ([]*models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, id int64, updates *dto.UpdateNoteRequest) (*models.Note, error)
	Delete(ctx context.Context, id int64) error
}

type ChatStore interface {
	List(ctx context.Context) ([]*models.ChatMessage, error)
	Create(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error)
	Clear(ctx context.Context) error
}
