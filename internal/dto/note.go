package dto

type CreateNoteRequest struct {
	Content      string  `json:"content"`
	ReminderDate *string `json:"reminderDate"`
	ReminderTime *string `json:"reminderTime"`
	IsCompleted  *bool   `json:"isCompleted"`
}

// UpdateNoteRequest carries a partial update: nil fields are left untouched.
type UpdateNoteRequest struct {
	Content      *string `json:"content"`
	ReminderDate *string `json:"reminderDate"`
	ReminderTime *string `json:"reminderTime"`
	IsCompleted  *bool   `json:"isCompleted"`
}
