package handlers

import (
	"errors"

	"drawer/internal/dto"
	"drawer/internal/repository"
	"drawer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type NoteHandler struct {
	noteService *service.NoteService
	logger      *zap.Logger
}

func NewNoteHandler(noteService *service.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	note, err := h.noteService.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Content is required",
			})
		}
		h.logger.Error("Failed to create note", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create note",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	notes, err := h.noteService.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list notes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list notes",
		})
	}
	return c.JSON(notes)
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid note ID",
		})
	}

	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	note, err := h.noteService.Update(c.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyContent):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Content cannot be empty",
			})
		case errors.Is(err, repository.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Note not found",
			})
		}
		h.logger.Error("Failed to update note", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update note",
		})
	}
	return c.JSON(note)
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid note ID",
		})
	}

	if err := h.noteService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Note not found",
			})
		}
		h.logger.Error("Failed to delete note", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete note",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
