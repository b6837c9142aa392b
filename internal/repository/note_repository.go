package repository

import (
	"context"
	"errors"

	"drawer/internal/dto"
	"drawer/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var noteColumns = []string{
	"id", "content", "reminder_date", "reminder_time", "is_completed", "created_at",
}

type NoteRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewNoteRepository(db *pgxpool.Pool, logger *zap.Logger) *NoteRepository {
	return &NoteRepository{
		db:     db,
		logger: logger,
	}
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID, &note.Content, &note.ReminderDate, &note.ReminderTime,
		&note.IsCompleted, &note.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := squirrel.Insert("notes").
		Columns("content", "reminder_date", "reminder_time", "is_completed").
		Values(note.Content, note.ReminderDate, note.ReminderTime, note.IsCompleted).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	created := *note
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := squirrel.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	note, err := scanNote(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return note, err
}

func (r *NoteRepository) List(ctx context.Context) ([]*models.Note, error) {
	query := squirrel.Select(noteColumns...).
		From("notes").
		OrderBy("created_at DESC").
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

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// Update applies a partial update: only non-nil fields are written.
func (r *NoteRepository) Update(ctx context.Context, id int64, updates *dto.UpdateNoteRequest) (*models.Note, error) {
	query := squirrel.Update("notes").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(noteColumns)).
		PlaceholderFormat(squirrel.Dollar)

	if updates.Content != nil {
		query = query.Set("content", *updates.Content)
	}
	if updates.ReminderDate != nil {
		query = query.Set("reminder_date", *updates.ReminderDate)
	}
	if updates.ReminderTime != nil {
		query = query.Set("reminder_time", *updates.ReminderTime)
	}
	if updates.IsCompleted != nil {
		query = query.Set("is_completed", *updates.IsCompleted)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	note, err := scanNote(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return note, err
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func joinColumns(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}
	return out
}
