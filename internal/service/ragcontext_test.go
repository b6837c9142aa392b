package service

import (
	"strings"
	"testing"
	"time"

	"drawer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildRAGContext_FullCorpus(t *testing.T) {
	now := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	rawText := "COMCAST\nAccount 12345\nTotal due: $89.99"
	docs := []*models.Document{
		{
			ID:              1,
			FileURL:         "/uploads/comcast.pdf",
			Merchant:        "Comcast",
			Amount:          decimal.RequireFromString("89.99"),
			Category:        models.CategoryHome,
			TransactionType: models.TransactionExpense,
			Date:            "2026-02-01",
			DueDate:         strPtr("2026-02-20"),
			Summary:         "Monthly internet bill.",
			RawText:         &rawText,
		},
		{
			ID:              2,
			Merchant:        "Acme Corporation",
			Amount:          decimal.RequireFromString("2500.00"),
			Category:        models.CategoryFinance,
			TransactionType: models.TransactionIncome,
			Date:            "2026-02-14",
			Summary:         "Bi-weekly pay stub.",
		},
		{
			ID:              3,
			Merchant:        "Acme Corporation",
			Amount:          decimal.Zero,
			Category:        models.CategoryFinance,
			TransactionType: models.TransactionRecord,
			Date:            "2024-12-31",
			Summary:         "W-2 wage statement.",
		},
	}
	notes := []*models.Note{
		{ID: 1, Content: "Pay electricity bill", ReminderDate: strPtr("2026-02-28"), ReminderTime: strPtr("09:00")},
		{ID: 2, Content: "Call the dentist"},
	}

	out := BuildRAGContext(docs, notes, now)

	assert.True(t, strings.HasPrefix(out, "You are Drawer, an intelligent AI assistant"))
	assert.Contains(t, out, "Today's date is 2026-02-15.")
	assert.Contains(t, out, "=== STORED DOCUMENTS (3 total) ===")
	assert.Contains(t, out, "--- Document #1: Comcast [expense] ---")
	assert.Contains(t, out, "Category: Home | Type: expense | Amount: $89.99 | Date: 2026-02-01 | Due: 2026-02-20 | Download: /uploads/comcast.pdf")
	assert.Contains(t, out, "Full extracted text:\n"+rawText)
	assert.Contains(t, out, "=== NOTES & REMINDERS (2 total) ===")
	assert.Contains(t, out, `- Note #1: "Pay electricity bill" (Reminder: 2026-02-28 at 09:00)`)
	assert.Contains(t, out, `- Note #2: "Call the dentist"`+"\n")
	assert.Contains(t, out, "- Total expenses: $89.99 (1 expense documents)")
	assert.Contains(t, out, "- Total income: $2500.00 (1 income documents)")
	assert.Contains(t, out, "- Net: $2410.01")
	assert.Contains(t, out, "- Records (informational, not counted): 1 documents")
	assert.Contains(t, out, "- Categories: Home, Finance")
	assert.Contains(t, out, "- Merchants: Comcast, Acme Corporation")
}

func TestBuildRAGContext_EmptyCorpus(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := BuildRAGContext(nil, nil, now)

	assert.Contains(t, out, "=== STORED DOCUMENTS (0 total) ===")
	assert.NotContains(t, out, "=== NOTES & REMINDERS")
	assert.Contains(t, out, "- Total expenses: $0.00 (0 expense documents)")
	assert.Contains(t, out, "- Net: $0.00")
	assert.Contains(t, out, "- Categories: none")
	assert.Contains(t, out, "- Merchants: none")
}

func TestBuildRAGContext_MissingTypeTreatedAsRecord(t *testing.T) {
	docs := []*models.Document{
		{ID: 7, Merchant: "DMV", Category: models.CategoryIdentityLegal, Date: "2025-05-01", Summary: "Driver's license."},
	}

	out := BuildRAGContext(docs, nil, time.Now())

	assert.Contains(t, out, "--- Document #7: DMV [record] ---")
	assert.Contains(t, out, "- Records (informational, not counted): 1 documents")
}
