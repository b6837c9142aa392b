package handlers

import (
	"errors"

	"drawer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	messages, err := h.chatService.Messages(c.Context())
	if err != nil {
		h.logger.Error("Failed to list chat messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list messages",
		})
	}
	return c.JSON(messages)
}

// Send accepts a multipart form: a "message" text field, an optional "file"
// attachment, or both.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	message := c.FormValue("message")

	var file *service.UploadFile
	if fileHeader, err := c.FormFile("file"); err == nil {
		mimeType := fileHeader.Header.Get("Content-Type")
		if !allowedMIMETypes[mimeType] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported file type. Upload a PDF or an image (PNG, JPEG, WebP).",
			})
		}
		src, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to open file",
			})
		}
		defer src.Close()
		file = &service.UploadFile{
			Reader:   src,
			Filename: fileHeader.Filename,
			MIMEType: mimeType,
		}
	}

	resp, err := h.chatService.Send(c.Context(), message, file)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message or file is required",
			})
		}
		h.logger.Error("Failed to process chat message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}
	return c.JSON(resp)
}

func (h *ChatHandler) Clear(c *fiber.Ctx) error {
	if err := h.chatService.ClearMessages(c.Context()); err != nil {
		h.logger.Error("Failed to clear chat messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear messages",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Ghost appends a simulated assistant notification to the conversation.
func (h *ChatHandler) Ghost(c *fiber.Ctx) error {
	msg, err := h.chatService.Ghost(c.Context(), c.Query("name"))
	if err != nil {
		h.logger.Error("Failed to create ghost message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create message",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
