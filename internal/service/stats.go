package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"drawer/internal/dto"
	"drawer/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// noteEventIDOffset keeps note-derived calendar event ids from colliding
// with document ids in the same result set.
const noteEventIDOffset = 100000

const calendarTitleMaxLen = 50

// StatsService recomputes every aggregate from current store state on each
// call. There is no caching and no staleness guarantee across concurrent
// requests.
type StatsService struct {
	docs   DocumentStore
	notes  NoteStore
	logger *zap.Logger
}

func NewStatsService(docs DocumentStore, notes NoteStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		docs:   docs,
		notes:  notes,
		logger: logger,
	}
}

func (s *StatsService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	return ComputeStats(docs), nil
}

func (s *StatsService) StorageBreakdown(ctx context.Context) ([]dto.StorageCategory, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	return StorageByCategory(docs), nil
}

func (s *StatsService) MonthlyFlow(ctx context.Context, year, month int) ([]dto.DailyFlow, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	return ComputeMonthlyFlow(docs, year, month), nil
}

func (s *StatsService) CalendarEvents(ctx context.Context, startDate, endDate string) ([]dto.CalendarEvent, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	return ComputeCalendarEvents(docs, notes, startDate, endDate), nil
}

// ComputeStats totals the document set. topCategory is the category with the
// largest summed file size; ties go to the category encountered first, and an
// empty set yields nil.
func ComputeStats(docs []*models.Document) *dto.StatsResponse {
	totalExpenses := decimal.Zero
	totalIncome := decimal.Zero
	var totalStorageBytes int64

	categoryBytes := make(map[models.Category]int64)
	var categoryOrder []models.Category

	for _, doc := range docs {
		switch doc.TransactionType {
		case models.TransactionExpense:
			totalExpenses = totalExpenses.Add(doc.Amount)
		case models.TransactionIncome:
			totalIncome = totalIncome.Add(doc.Amount)
		}
		totalStorageBytes += doc.FileSize
		if _, ok := categoryBytes[doc.Category]; !ok {
			categoryOrder = append(categoryOrder, doc.Category)
		}
		categoryBytes[doc.Category] += doc.FileSize
	}

	var topCategory *string
	var topBytes int64 = -1
	for _, cat := range categoryOrder {
		if categoryBytes[cat] > topBytes {
			topBytes = categoryBytes[cat]
			name := string(cat)
			topCategory = &name
		}
	}

	return &dto.StatsResponse{
		TotalExpenses:     totalExpenses.InexactFloat64(),
		TotalIncome:       totalIncome.InexactFloat64(),
		TotalDocuments:    len(docs),
		TopCategory:       topCategory,
		TotalStorageBytes: totalStorageBytes,
	}
}

// StorageByCategory rolls up per-category document count and bytes, sorted
// descending by bytes. Ties keep first-occurrence order.
func StorageByCategory(docs []*models.Document) []dto.StorageCategory {
	index := make(map[models.Category]int)
	out := []dto.StorageCategory{}

	for _, doc := range docs {
		i, ok := index[doc.Category]
		if !ok {
			i = len(out)
			index[doc.Category] = i
			out = append(out, dto.StorageCategory{Category: string(doc.Category)})
		}
		out[i].Count++
		out[i].TotalBytes += doc.FileSize
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalBytes > out[j].TotalBytes
	})

	return out
}

// ComputeMonthlyFlow produces one zero-initialized bucket per calendar day of
// the month, then accumulates each document dated within the month into its
// day by transaction type. A document date missing from the pre-seeded table
// still gets a bucket rather than being dropped.
func ComputeMonthlyFlow(docs []*models.Document, year, month int) []dto.DailyFlow {
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	startDate := fmt.Sprintf("%04d-%02d-01", year, month)
	endDate := fmt.Sprintf("%04d-%02d-%02d", year, month, lastDay)

	type flowBucket struct {
		expenses decimal.Decimal
		income   decimal.Decimal
	}

	dayMap := make(map[string]*flowBucket, lastDay)
	for day := 1; day <= lastDay; day++ {
		dayMap[fmt.Sprintf("%04d-%02d-%02d", year, month, day)] = &flowBucket{}
	}

	for _, doc := range docs {
		if doc.Date < startDate || doc.Date > endDate {
			continue
		}
		bucket, ok := dayMap[doc.Date]
		if !ok {
			bucket = &flowBucket{}
			dayMap[doc.Date] = bucket
		}
		switch doc.TransactionType {
		case models.TransactionExpense:
			bucket.expenses = bucket.expenses.Add(doc.Amount)
		case models.TransactionIncome:
			bucket.income = bucket.income.Add(doc.Amount)
		}
	}

	out := make([]dto.DailyFlow, 0, len(dayMap))
	for date, bucket := range dayMap {
		out = append(out, dto.DailyFlow{
			Date:     date,
			Expenses: bucket.expenses.InexactFloat64(),
			Income:   bucket.income.InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	return out
}

// ComputeCalendarEvents merges document due dates and note reminder dates
// into one feed over the inclusive date range. Bills come before reminders on
// the same date; the sort is otherwise stable.
func ComputeCalendarEvents(docs []*models.Document, notes []*models.Note, startDate, endDate string) []dto.CalendarEvent {
	events := []dto.CalendarEvent{}

	for _, doc := range docs {
		if doc.DueDate == nil || *doc.DueDate < startDate || *doc.DueDate > endDate {
			continue
		}
		events = append(events, dto.CalendarEvent{
			ID:      doc.ID,
			Title:   fmt.Sprintf("%s - $%s", doc.Merchant, doc.Amount.StringFixed(2)),
			Date:    *doc.DueDate,
			Type:    dto.EventBill,
			Details: doc.Summary,
		})
	}

	for _, note := range notes {
		if note.ReminderDate == nil || *note.ReminderDate < startDate || *note.ReminderDate > endDate {
			continue
		}
		events = append(events, dto.CalendarEvent{
			ID:      note.ID + noteEventIDOffset,
			Title:   truncateTitle(note.Content),
			Date:    *note.ReminderDate,
			Type:    dto.EventReminder,
			Details: note.Content,
		})
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date < events[j].Date })

	return events
}

func truncateTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= calendarTitleMaxLen {
		return content
	}
	return string(runes[:calendarTitleMaxLen]) + "..."
}
