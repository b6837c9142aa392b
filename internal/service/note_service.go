package service

import (
	"context"
	"errors"
	"strings"

	"drawer/internal/dto"
	"drawer/internal/models"

	"go.uber.org/zap"
)

var ErrEmptyContent = errors.New("note content is required")

type NoteService struct {
	notes  NoteStore
	logger *zap.Logger
}

func NewNoteService(notes NoteStore, logger *zap.Logger) *NoteService {
	return &NoteService{notes: notes, logger: logger}
}

func (s *NoteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*models.Note, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	note := &models.Note{
		Content:      content,
		ReminderDate: req.ReminderDate,
		ReminderTime: req.ReminderTime,
	}
	if req.IsCompleted != nil {
		note.IsCompleted = *req.IsCompleted
	}
	return s.notes.Create(ctx, note)
}

func (s *NoteService) List(ctx context.Context) ([]*models.Note, error) {
	return s.notes.List(ctx)
}

func (s *NoteService) Update(ctx context.Context, id int64, req *dto.UpdateNoteRequest) (*models.Note, error) {
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, ErrEmptyContent
	}
	// Nothing to change, return the current state.
	if req.Content == nil && req.ReminderDate == nil && req.ReminderTime == nil && req.IsCompleted == nil {
		return s.notes.GetByID(ctx, id)
	}
	return s.notes.Update(ctx, id, req)
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.notes.Delete(ctx, id)
}
