package handlers

import (
	"time"

	"drawer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StatsHandler struct {
	statsService *service.StatsService
	logger       *zap.Logger
}

func NewStatsHandler(statsService *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.statsService.Stats(c.Context())
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute stats",
		})
	}
	return c.JSON(stats)
}

func (h *StatsHandler) Storage(c *fiber.Ctx) error {
	breakdown, err := h.statsService.StorageBreakdown(c.Context())
	if err != nil {
		h.logger.Error("Failed to compute storage breakdown", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute storage breakdown",
		})
	}
	return c.JSON(breakdown)
}

// MonthlyFlow returns per-day expense and income totals. Missing or invalid
// year and month query params fall back to the current month.
func (h *StatsHandler) MonthlyFlow(c *fiber.Ctx) error {
	now := time.Now().UTC()
	year := c.QueryInt("year", 0)
	month := c.QueryInt("month", 0)
	if year <= 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	flow, err := h.statsService.MonthlyFlow(c.Context(), year, month)
	if err != nil {
		h.logger.Error("Failed to compute monthly flow", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute monthly flow",
		})
	}
	return c.JSON(flow)
}

func (h *StatsHandler) Calendar(c *fiber.Ctx) error {
	startDate := c.Query("start", "2020-01-01")
	endDate := c.Query("end", "2030-12-31")

	events, err := h.statsService.CalendarEvents(c.Context(), startDate, endDate)
	if err != nil {
		h.logger.Error("Failed to compute calendar events", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute calendar events",
		})
	}
	return c.JSON(events)
}
