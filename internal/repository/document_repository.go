package repository

import (
	"context"
	"errors"

	"drawer/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("not found")

var documentColumns = []string{
	"id", "file_url", "merchant", "amount", "category", "transaction_type",
	"date", "due_date", "summary", "insight", "raw_text", "file_size",
	"file_path", "created_at",
}

type DocumentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID, &doc.FileURL, &doc.Merchant, &doc.Amount, &doc.Category,
		&doc.TransactionType, &doc.Date, &doc.DueDate, &doc.Summary,
		&doc.Insight, &doc.RawText, &doc.FileSize, &doc.FilePath, &doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query := squirrel.Insert("documents").
		Columns("file_url", "merchant", "amount", "category", "transaction_type",
			"date", "due_date", "summary", "insight", "raw_text", "file_size", "file_path").
		Values(doc.FileURL, doc.Merchant, doc.Amount, doc.Category, doc.TransactionType,
			doc.Date, doc.DueDate, doc.Summary, doc.Insight, doc.RawText, doc.FileSize, doc.FilePath).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	created := *doc
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	doc, err := scanDocument(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return doc, err
}

// List returns every document, most recent first.
func (r *DocumentRepository) List(ctx context.Context) ([]*models.Document, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
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

	var documents []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

// LastByMerchant returns the most recently created document with an exact
// merchant match, or ErrNotFound. Exact-string match is intentional.
func (r *DocumentRepository) LastByMerchant(ctx context.Context, merchant string) (*models.Document, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"merchant": merchant}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	doc, err := scanDocument(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return doc, err
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("documents").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
