package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drawer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const walmartExtraction = `{"merchant":"Walmart","amount":47.53,"category":"Finance","transaction_type":"expense",` +
	`"date":"2025-01-15","due_date":null,"summary":"Groceries.","raw_text":"WALMART SUPERCENTER..."}`

func TestIngest(t *testing.T) {
	store := &fakeDocStore{}
	llm := &stubGenerator{response: walmartExtraction}
	dir := t.TempDir()
	svc := NewDocumentService(store, llm, dir, zap.NewNop())

	doc, err := svc.Ingest(context.Background(), &UploadFile{
		Reader:   strings.NewReader("%PDF-1.4 fake"),
		Filename: "receipt.pdf",
		MIMEType: "application/pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "Walmart", doc.Merchant)
	assert.Equal(t, "47.53", doc.Amount.StringFixed(2))
	assert.Equal(t, models.CategoryFinance, doc.Category)
	assert.Equal(t, models.TransactionExpense, doc.TransactionType)
	assert.Equal(t, "2025-01-15", doc.Date)
	assert.Equal(t, "Expense of $47.53 saved in Finance.", doc.Insight)
	assert.Equal(t, int64(len("%PDF-1.4 fake")), doc.FileSize)
	require.NotNil(t, doc.RawText)
	assert.Equal(t, "WALMART SUPERCENTER...", *doc.RawText)

	assert.True(t, strings.HasPrefix(doc.FileURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(doc.FileURL, ".pdf"))
	require.NotNil(t, doc.FilePath)
	saved, err := os.ReadFile(*doc.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(saved))

	// The model received the file inline.
	require.NotNil(t, llm.lastFile)
	assert.Equal(t, "application/pdf", llm.lastFile.MIMEType)
}

func TestIngest_InsightUsesMerchantHistory(t *testing.T) {
	store := &fakeDocStore{}
	llm := &stubGenerator{response: walmartExtraction}
	svc := NewDocumentService(store, llm, t.TempDir(), zap.NewNop())

	first, err := svc.Ingest(context.Background(), &UploadFile{
		Reader: strings.NewReader("first"), Filename: "a.pdf", MIMEType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "Expense of $47.53 saved in Finance.", first.Insight)

	llm.response = `{"merchant":"Walmart","amount":95.06,"category":"Finance","transaction_type":"expense",` +
		`"date":"2025-02-15","due_date":null,"summary":"Groceries.","raw_text":"..."}`
	second, err := svc.Ingest(context.Background(), &UploadFile{
		Reader: strings.NewReader("second"), Filename: "b.pdf", MIMEType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alert: This is 100% more expensive than your last similar purchase ($47.53).", second.Insight)
}

func TestIngest_ExtractionFailureRemovesFile(t *testing.T) {
	store := &fakeDocStore{}
	dir := t.TempDir()
	svc := NewDocumentService(store, &stubGenerator{response: "no data here"}, dir, zap.NewNop())

	_, err := svc.Ingest(context.Background(), &UploadFile{
		Reader:   strings.NewReader("fake"),
		Filename: "blurry.png",
		MIMEType: "image/png",
	})
	assert.ErrorIs(t, err, ErrNoJSONFound)
	assert.Empty(t, store.docs)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed ingest must not leave files behind")
}

func TestIngestStored_FailureKeepsFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewDocumentService(&fakeDocStore{}, &stubGenerator{response: "no data here"}, dir, zap.NewNop())

	stored, err := svc.SaveUpload(&UploadFile{
		Reader:   strings.NewReader("fake"),
		Filename: "attachment.png",
		MIMEType: "image/png",
	})
	require.NoError(t, err)

	_, err = svc.IngestStored(context.Background(), stored, "image/png")
	assert.ErrorIs(t, err, ErrNoJSONFound)

	// Chat attachments reference the stored file, so it stays.
	_, statErr := os.Stat(stored.Path)
	assert.NoError(t, statErr)
}

func TestDocumentDelete_RemovesStoredFile(t *testing.T) {
	store := &fakeDocStore{}
	dir := t.TempDir()
	svc := NewDocumentService(store, &stubGenerator{response: walmartExtraction}, dir, zap.NewNop())

	doc, err := svc.Ingest(context.Background(), &UploadFile{
		Reader: strings.NewReader("fake"), Filename: "receipt.pdf", MIMEType: "application/pdf",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), doc.ID))
	assert.Empty(t, store.docs)
	_, statErr := os.Stat(filepath.Join(dir, filepath.Base(doc.FileURL)))
	assert.True(t, os.IsNotExist(statErr))
}
