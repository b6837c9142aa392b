package api

import (
	"drawer/internal/api/handlers"
	"drawer/pkg/auth"
	"drawer/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	docHandler *handlers.DocumentHandler,
	noteHandler *handlers.NoteHandler,
	chatHandler *handlers.ChatHandler,
	statsHandler *handlers.StatsHandler,
	jwtManager *auth.JWTManager,
	uploadDir string,
	maxBodyBytes int,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: maxBodyBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Static("/uploads", uploadDir)

	app.Post("/api/login", authHandler.Login)

	protected := app.Group("/api", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Post("/upload", docHandler.Upload)
	protected.Get("/documents", docHandler.List)
	protected.Get("/documents/:id", docHandler.Get)
	protected.Delete("/documents/:id", docHandler.Delete)

	protected.Get("/notes", noteHandler.List)
	protected.Post("/notes", noteHandler.Create)
	protected.Patch("/notes/:id", noteHandler.Update)
	protected.Delete("/notes/:id", noteHandler.Delete)

	protected.Get("/chat/messages", chatHandler.Messages)
	protected.Post("/chat/send", chatHandler.Send)
	protected.Delete("/chat/messages", chatHandler.Clear)
	protected.Post("/chat/ghost", chatHandler.Ghost)

	protected.Get("/stats", statsHandler.Stats)
	protected.Get("/stats/monthly-flow", statsHandler.MonthlyFlow)
	protected.Get("/stats/storage", statsHandler.Storage)
	protected.Get("/calendar", statsHandler.Calendar)

	return app
}
