package service

import (
	"context"
	"time"

	"drawer/internal/dto"
	"drawer/internal/models"
	"drawer/internal/repository"
)

// In-memory store fakes standing in for the pgx repositories.

type fakeDocStore struct {
	docs   []*models.Document
	nextID int64
}

func (f *fakeDocStore) List(_ context.Context) ([]*models.Document, error) {
	out := make([]*models.Document, len(f.docs))
	copy(out, f.docs)
	return out, nil
}

func (f *fakeDocStore) GetByID(_ context.Context, id int64) (*models.Document, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDocStore) Create(_ context.Context, doc *models.Document) (*models.Document, error) {
	f.nextID++
	doc.ID = f.nextID
	doc.CreatedAt = time.Now()
	f.docs = append(f.docs, doc)
	return doc, nil
}

func (f *fakeDocStore) Delete(_ context.Context, id int64) error {
	for i, d := range f.docs {
		if d.ID == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeDocStore) LastByMerchant(_ context.Context, merchant string) (*models.Document, error) {
	for i := len(f.docs) - 1; i >= 0; i-- {
		if f.docs[i].Merchant == merchant {
			return f.docs[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeNoteStore struct {
	notes     []*models.Note
	nextID    int64
	createErr error
}

func (f *fakeNoteStore) List(_ context.Context) ([]*models.Note, error) {
	out := make([]*models.Note, len(f.notes))
	copy(out, f.notes)
	return out, nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, id int64) (*models.Note, error) {
	for _, n := range f.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeNoteStore) Create(_ context.Context, note *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	note.ID = f.nextID
	note.CreatedAt = time.Now()
	f.notes = append(f.notes, note)
	return note, nil
}

func (f *fakeNoteStore) Update(_ context.Context, id int64, updates *dto.UpdateNoteRequest) (*models.Note, error) {
	note, err := f.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if updates.Content != nil {
		note.Content = *updates.Content
	}
	if updates.ReminderDate != nil {
		note.ReminderDate = updates.ReminderDate
	}
	if updates.ReminderTime != nil {
		note.ReminderTime = updates.ReminderTime
	}
	if updates.IsCompleted != nil {
		note.IsCompleted = *updates.IsCompleted
	}
	return note, nil
}

func (f *fakeNoteStore) Delete(_ context.Context, id int64) error {
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeChatStore struct {
	messages []*models.ChatMessage
	nextID   int64
}

func (f *fakeChatStore) List(_ context.Context) ([]*models.ChatMessage, error) {
	out := make([]*models.ChatMessage, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

func (f *fakeChatStore) Create(_ context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	f.nextID++
	msg.ID = f.nextID
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeChatStore) Clear(_ context.Context) error {
	f.messages = nil
	return nil
}

// stubGenerator returns a canned response or error.
type stubGenerator struct {
	response string
	err      error
	// lastPrompt records the prompt of the most recent call.
	lastPrompt string
	lastFile   *FileAttachment
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, file *FileAttachment) (string, error) {
	g.lastPrompt = prompt
	g.lastFile = file
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}
