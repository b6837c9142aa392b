package postgres

import (
	"context"
	"fmt"

	"drawer/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func NewPool(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
	)

	return pool, nil
}

// Bootstrap creates the tables if they do not exist yet. Serial ids double as
// the creation-order key for "most recent" queries.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id SERIAL PRIMARY KEY,
			file_url TEXT NOT NULL,
			merchant TEXT NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			category TEXT NOT NULL,
			transaction_type TEXT NOT NULL DEFAULT 'record',
			date TEXT NOT NULL,
			due_date TEXT,
			summary TEXT NOT NULL,
			insight TEXT NOT NULL,
			raw_text TEXT,
			file_size BIGINT NOT NULL DEFAULT 0,
			file_path TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id SERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			reminder_date TEXT,
			reminder_time TEXT,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id SERIAL PRIMARY KEY,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			attachment_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}

	logger.Info("Database schema ready")
	return nil
}
