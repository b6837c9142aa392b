package dto

type StatsResponse struct {
	TotalExpenses     float64 `json:"totalExpenses"`
	TotalIncome       float64 `json:"totalIncome"`
	TotalDocuments    int     `json:"totalDocuments"`
	TopCategory       *string `json:"topCategory"`
	TotalStorageBytes int64   `json:"totalStorageBytes"`
}

type StorageCategory struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	TotalBytes int64  `json:"totalBytes"`
}

// DailyFlow is one day bucket of the monthly cash-flow table.
type DailyFlow struct {
	Date     string  `json:"date"`
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
}

type CalendarEventType string

const (
	EventBill     CalendarEventType = "bill"
	EventReminder CalendarEventType = "reminder"
)

// CalendarEvent is a derived projection merging document due dates and note
// reminder dates into one date-indexed feed. Never persisted.
type CalendarEvent struct {
	ID      int64             `json:"id"`
	Title   string            `json:"title"`
	Date    string            `json:"date"`
	Type    CalendarEventType `json:"type"`
	Details string            `json:"details,omitempty"`
}
