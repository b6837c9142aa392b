package service

import (
	"fmt"
	"strings"
	"time"

	"drawer/internal/models"

	"github.com/shopspring/decimal"
)

// BuildRAGContext serializes the whole document and note corpus plus a
// computed financial summary into one deterministic text block. This is the
// entire evidentiary basis the conversational model gets, so it must be
// exhaustive (every document's raw text included) and exact (2-decimal
// display, nothing else rounded).
func BuildRAGContext(docs []*models.Document, notes []*models.Note, now time.Time) string {
	totalExpenses := decimal.Zero
	totalIncome := decimal.Zero
	var expenseCount, incomeCount, recordCount int
	for _, doc := range docs {
		switch doc.TransactionType {
		case models.TransactionExpense:
			totalExpenses = totalExpenses.Add(doc.Amount)
			expenseCount++
		case models.TransactionIncome:
			totalIncome = totalIncome.Add(doc.Amount)
			incomeCount++
		default:
			recordCount++
		}
	}

	var b strings.Builder
	b.WriteString("You are Drawer, an intelligent AI assistant for a personal data warehouse application.\n")
	b.WriteString("You have access to all the user's stored documents and notes. Answer questions using ONLY the data below - be specific and precise.\n\n")
	fmt.Fprintf(&b, "Today's date is %s.\n\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "=== STORED DOCUMENTS (%d total) ===\n", len(docs))

	for _, doc := range docs {
		docType := doc.TransactionType
		if docType == "" {
			docType = models.TransactionRecord
		}
		fmt.Fprintf(&b, "\n--- Document #%d: %s [%s] ---\n", doc.ID, doc.Merchant, docType)
		fmt.Fprintf(&b, "Category: %s | Type: %s | Amount: $%s | Date: %s",
			doc.Category, docType, doc.Amount.StringFixed(2), doc.Date)
		if doc.DueDate != nil {
			fmt.Fprintf(&b, " | Due: %s", *doc.DueDate)
		}
		if doc.FileURL != "" {
			fmt.Fprintf(&b, " | Download: %s", doc.FileURL)
		}
		fmt.Fprintf(&b, "\nSummary: %s\n", doc.Summary)
		if doc.RawText != nil && *doc.RawText != "" {
			fmt.Fprintf(&b, "Full extracted text:\n%s\n", *doc.RawText)
		}
	}

	if len(notes) > 0 {
		fmt.Fprintf(&b, "\n=== NOTES & REMINDERS (%d total) ===\n", len(notes))
		for _, note := range notes {
			fmt.Fprintf(&b, "- Note #%d: \"%s\"", note.ID, note.Content)
			if note.ReminderDate != nil {
				fmt.Fprintf(&b, " (Reminder: %s", *note.ReminderDate)
				if note.ReminderTime != nil {
					fmt.Fprintf(&b, " at %s", *note.ReminderTime)
				}
				b.WriteString(")")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n=== FINANCIAL SUMMARY ===\n")
	fmt.Fprintf(&b, "- Total expenses: $%s (%d expense documents)\n", totalExpenses.StringFixed(2), expenseCount)
	fmt.Fprintf(&b, "- Total income: $%s (%d income documents)\n", totalIncome.StringFixed(2), incomeCount)
	fmt.Fprintf(&b, "- Net: $%s\n", totalIncome.Sub(totalExpenses).StringFixed(2))
	fmt.Fprintf(&b, "- Records (informational, not counted): %d documents\n", recordCount)
	fmt.Fprintf(&b, "- Total documents: %d\n", len(docs))
	fmt.Fprintf(&b, "- Total notes: %d\n", len(notes))
	fmt.Fprintf(&b, "- Categories: %s\n", joinOrNone(distinctCategories(docs)))
	fmt.Fprintf(&b, "- Merchants: %s\n", joinOrNone(distinctMerchants(docs)))

	return b.String()
}

// distinctCategories keeps first-occurrence order, duplicates removed.
func distinctCategories(docs []*models.Document) []string {
	seen := make(map[models.Category]bool)
	var out []string
	for _, doc := range docs {
		if !seen[doc.Category] {
			seen[doc.Category] = true
			out = append(out, string(doc.Category))
		}
	}
	return out
}

func distinctMerchants(docs []*models.Document) []string {
	seen := make(map[string]bool)
	var out []string
	for _, doc := range docs {
		if !seen[doc.Merchant] {
			seen[doc.Merchant] = true
			out = append(out, doc.Merchant)
		}
	}
	return out
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
