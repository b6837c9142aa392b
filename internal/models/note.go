package models

import "time"

// Note is a user- or assistant-created reminder/memo. Mutable and deletable,
// unlike documents.
type Note struct {
	ID           int64     `json:"id" db:"id"`
	Content      string    `json:"content" db:"content"`
	ReminderDate *string   `json:"reminderDate" db:"reminder_date"`
	ReminderTime *string   `json:"reminderTime" db:"reminder_time"`
	IsCompleted  bool      `json:"isCompleted" db:"is_completed"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
