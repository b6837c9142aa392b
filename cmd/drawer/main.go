package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"drawer/internal/api"
	"drawer/internal/api/handlers"
	"drawer/internal/repository"
	"drawer/internal/service"
	"drawer/pkg/auth"
	"drawer/pkg/config"
	"drawer/pkg/logger"
	"drawer/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Drawer service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Bootstrap(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to bootstrap schema", zap.Error(err))
	}

	docRepo := repository.NewDocumentRepository(db, appLogger)
	noteRepo := repository.NewNoteRepository(db, appLogger)
	chatRepo := repository.NewChatRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.Expiration)

	authService, err := service.NewAuthService(cfg.Auth.Password, jwtManager, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize auth service", zap.Error(err))
	}

	llmService, err := service.NewLLMService(ctx, &cfg.Gemini, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		appLogger.Fatal("Failed to create upload directory", zap.Error(err))
	}

	docService := service.NewDocumentService(docRepo, llmService, cfg.Upload.Dir, appLogger)
	noteService := service.NewNoteService(noteRepo, appLogger)
	chatService := service.NewChatService(docService, docRepo, noteRepo, chatRepo, llmService, appLogger)
	statsService := service.NewStatsService(docRepo, noteRepo, appLogger)

	authHandler := handlers.NewAuthHandler(authService, appLogger)
	docHandler := handlers.NewDocumentHandler(docService, appLogger)
	noteHandler := handlers.NewNoteHandler(noteService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	statsHandler := handlers.NewStatsHandler(statsService, appLogger)

	app := api.SetupRouter(
		authHandler,
		docHandler,
		noteHandler,
		chatHandler,
		statsHandler,
		jwtManager,
		cfg.Upload.Dir,
		int(cfg.Upload.MaxSizeBytes),
		appLogger,
	)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
