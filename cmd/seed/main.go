package main

import (
	"context"
	"log"

	"drawer/internal/models"
	"drawer/internal/repository"
	"drawer/pkg/config"
	"drawer/pkg/logger"
	"drawer/pkg/postgres"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Populates empty documents and notes tables with demo data so a fresh
// install has something to browse. Non-empty tables are left untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

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

	appLogger.Info("Starting database seeding")

	if err := seedDocuments(ctx, docRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed documents", zap.Error(err))
	}
	if err := seedNotes(ctx, noteRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed notes", zap.Error(err))
	}

	appLogger.Info("Database seeding completed")
}

func seedDocuments(ctx context.Context, repo *repository.DocumentRepository, appLogger *zap.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		appLogger.Info("Documents already present, skipping", zap.Int("count", len(existing)))
		return nil
	}

	comcastDue := "2026-02-20"
	docs := []*models.Document{
		{
			FileURL:         "/uploads/sample-starbucks.pdf",
			Merchant:        "Starbucks",
			Amount:          decimal.RequireFromString("12.45"),
			Category:        models.CategoryFinance,
			TransactionType: models.TransactionExpense,
			Date:            "2026-02-10",
			Summary:         "Grande caramel macchiato and a turkey pesto panini at the downtown location.",
			Insight:         "Expense of $12.45 saved in Finance.",
			FileSize:        45000,
		},
		{
			FileURL:         "/uploads/sample-comcast.pdf",
			Merchant:        "Comcast",
			Amount:          decimal.RequireFromString("89.99"),
			Category:        models.CategoryHome,
			TransactionType: models.TransactionExpense,
			Date:            "2026-02-01",
			DueDate:         &comcastDue,
			Summary:         "Monthly internet service bill for 200Mbps plan.",
			Insight:         "Reminder: Payment due on 2026-02-20 (5 days away).",
			FileSize:        38000,
		},
		{
			FileURL:         "/uploads/sample-amazon.pdf",
			Merchant:        "Amazon",
			Amount:          decimal.RequireFromString("156.78"),
			Category:        models.CategoryFinance,
			TransactionType: models.TransactionExpense,
			Date:            "2026-02-08",
			Summary:         "Wireless earbuds and a phone charging cable purchased online.",
			Insight:         "Expense of $156.78 saved in Finance.",
			FileSize:        52000,
		},
		{
			FileURL:         "/uploads/sample-paycheck.pdf",
			Merchant:        "Acme Corporation",
			Amount:          decimal.RequireFromString("2500.00"),
			Category:        models.CategoryFinance,
			TransactionType: models.TransactionIncome,
			Date:            "2026-02-14",
			Summary:         "Bi-weekly pay stub from Acme Corporation, net pay $2,500.",
			Insight:         "Income of $2,500.00 recorded in Finance.",
			FileSize:        67000,
		},
		{
			FileURL:         "/uploads/sample-w2.pdf",
			Merchant:        "Acme Corporation",
			Amount:          decimal.Zero,
			Category:        models.CategoryFinance,
			TransactionType: models.TransactionRecord,
			Date:            "2024-12-31",
			Summary:         "W-2 wage statement from Acme Corporation for tax year 2024.",
			Insight:         "Filed as a record in Finance.",
			FileSize:        41000,
		},
	}

	for _, doc := range docs {
		if _, err := repo.Create(ctx, doc); err != nil {
			return err
		}
	}
	appLogger.Info("Seeded sample documents", zap.Int("count", len(docs)))
	return nil
}

func seedNotes(ctx context.Context, repo *repository.NoteRepository, appLogger *zap.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		appLogger.Info("Notes already present, skipping", zap.Int("count", len(existing)))
		return nil
	}

	electricityDate, electricityTime := "2026-02-28", "09:00"
	subscriptionsDate, subscriptionsTime := "2026-02-26", "10:00"
	insuranceDate := "2026-03-01"
	notes := []*models.Note{
		{
			Content:      "Pay electricity bill - check if rate increased this month",
			ReminderDate: &electricityDate,
			ReminderTime: &electricityTime,
		},
		{
			Content:      "Review annual subscription renewals for Netflix and Spotify",
			ReminderDate: &subscriptionsDate,
			ReminderTime: &subscriptionsTime,
		},
		{
			Content:      "Compare car insurance quotes before renewal on March 15th",
			ReminderDate: &insuranceDate,
		},
	}

	for _, note := range notes {
		if _, err := repo.Create(ctx, note); err != nil {
			return err
		}
	}
	appLogger.Info("Seeded sample notes", zap.Int("count", len(notes)))
	return nil
}
