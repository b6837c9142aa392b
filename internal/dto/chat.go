package dto

import "drawer/internal/models"

type SendMessageResponse struct {
	AssistantMessage *models.ChatMessage `json:"assistantMessage"`
	Document         *models.Document    `json:"document"`
	Note             *models.Note        `json:"note"`
}
