package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"drawer/internal/models"
	"drawer/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UploadFile is an incoming multipart upload.
type UploadFile struct {
	Reader   io.Reader
	Filename string
	MIMEType string
}

// StoredFile is an upload persisted under the uploads directory.
type StoredFile struct {
	Name string
	Path string
	URL  string
	Data []byte
}

type DocumentService struct {
	docs      DocumentStore
	llm       Generator
	uploadDir string
	logger    *zap.Logger
}

func NewDocumentService(docs DocumentStore, llm Generator, uploadDir string, logger *zap.Logger) *DocumentService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &DocumentService{
		docs:      docs,
		llm:       llm,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

func (s *DocumentService) List(ctx context.Context) ([]*models.Document, error) {
	return s.docs.List(ctx)
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*models.Document, error) {
	return s.docs.GetByID(ctx, id)
}

// SaveUpload writes the upload to disk under a unique name and keeps the
// bytes in memory for the extraction call.
func (s *DocumentService) SaveUpload(file *UploadFile) (*StoredFile, error) {
	data, err := io.ReadAll(file.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	path := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{
		Name: name,
		Path: path,
		URL:  "/uploads/" + name,
		Data: data,
	}, nil
}

// Ingest runs the full upload pipeline: save the file, extract facts via the
// model, derive the insight against merchant history, persist the document.
// The stored file is removed again if any later stage fails.
func (s *DocumentService) Ingest(ctx context.Context, file *UploadFile) (*models.Document, error) {
	stored, err := s.SaveUpload(file)
	if err != nil {
		return nil, err
	}

	doc, err := s.IngestStored(ctx, stored, file.MIMEType)
	if err != nil {
		if rmErr := os.Remove(stored.Path); rmErr != nil {
			s.logger.Warn("Failed to remove file after ingest failure", zap.Error(rmErr))
		}
		return nil, err
	}

	return doc, nil
}

// IngestStored extracts, normalizes and persists a document for an already
// stored file. The file is left in place on failure so callers that have
// referenced it (chat attachments) stay consistent.
func (s *DocumentService) IngestStored(ctx context.Context, stored *StoredFile, mimeType string) (*models.Document, error) {
	raw, err := s.llm.Generate(ctx, extractionPrompt, &FileAttachment{
		Data:     stored.Data,
		MIMEType: mimeType,
	})
	if err != nil {
		return nil, err
	}

	extracted, err := NormalizeExtraction(raw, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	previousAmount := s.previousAmount(ctx, extracted.Merchant)
	insight := GenerateInsight(
		extracted.Amount,
		previousAmount,
		extracted.DueDate,
		extracted.Category,
		extracted.TransactionType,
		time.Now().UTC(),
	)

	doc := &models.Document{
		FileURL:         stored.URL,
		Merchant:        sanitizeUTF8(extracted.Merchant),
		Amount:          extracted.Amount,
		Category:        extracted.Category,
		TransactionType: extracted.TransactionType,
		Date:            extracted.Date,
		DueDate:         extracted.DueDate,
		Summary:         sanitizeUTF8(extracted.Summary),
		Insight:         insight,
		FileSize:        int64(len(stored.Data)),
		FilePath:        &stored.Path,
	}
	if extracted.RawText != "" {
		rawText := sanitizeUTF8(extracted.RawText)
		doc.RawText = &rawText
	}

	created, err := s.docs.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}

	s.logger.Info("Document ingested",
		zap.Int64("id", created.ID),
		zap.String("merchant", created.Merchant),
		zap.String("transaction_type", string(created.TransactionType)),
	)

	return created, nil
}

// previousAmount sources the comparison baseline for the insight: the amount
// of the most recent document with the exact same merchant.
func (s *DocumentService) previousAmount(ctx context.Context, merchant string) *decimal.Decimal {
	prev, err := s.docs.LastByMerchant(ctx, merchant)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("History lookup failed", zap.String("merchant", merchant), zap.Error(err))
		}
		return nil
	}
	amount := prev.Amount
	return &amount
}

// Delete removes the document record and its stored file.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	path := ""
	if doc.FilePath != nil {
		path = *doc.FilePath
	} else if doc.FileURL != "" {
		path = filepath.Join(s.uploadDir, filepath.Base(doc.FileURL))
	}
	if path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove stored file", zap.String("path", path), zap.Error(err))
		}
	}

	return nil
}
