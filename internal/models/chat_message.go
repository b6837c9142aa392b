package models

import "time"

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is an append-only conversation log entry.
type ChatMessage struct {
	ID            int64     `json:"id" db:"id"`
	Role          ChatRole  `json:"role" db:"role"`
	Content       string    `json:"content" db:"content"`
	AttachmentURL *string   `json:"attachmentUrl" db:"attachment_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
