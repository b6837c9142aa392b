package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFinance       Category = "Finance"
	CategoryHealth        Category = "Health"
	CategoryPersonal      Category = "Personal"
	CategoryHome          Category = "Home"
	CategoryIdentityLegal Category = "Identity/Legal"
	CategoryCareerSchool  Category = "Career/School"
)

// Categories lists the closed category set in display order.
var Categories = []Category{
	CategoryFinance,
	CategoryHealth,
	CategoryPersonal,
	CategoryHome,
	CategoryIdentityLegal,
	CategoryCareerSchool,
}

func ValidCategory(c Category) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

type TransactionType string

const (
	// TransactionExpense is money going out: bills, receipts, purchases.
	TransactionExpense TransactionType = "expense"
	// TransactionIncome is money coming in: pay stubs, deposits, refunds.
	TransactionIncome TransactionType = "income"
	// TransactionRecord is an informational document (W-2, ID, certificate)
	// excluded from financial totals; its amount is always zero.
	TransactionRecord TransactionType = "record"
)

var TransactionTypes = []TransactionType{
	TransactionExpense,
	TransactionIncome,
	TransactionRecord,
}

func ValidTransactionType(t TransactionType) bool {
	for _, v := range TransactionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Document is one uploaded artifact with its extracted facts. Created once
// per successful extraction, never mutated, deleted explicitly by the user.
type Document struct {
	ID              int64           `json:"id" db:"id"`
	FileURL         string          `json:"fileUrl" db:"file_url"`
	Merchant        string          `json:"merchant" db:"merchant"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Category        Category        `json:"category" db:"category"`
	TransactionType TransactionType `json:"transactionType" db:"transaction_type"`
	Date            string          `json:"date" db:"date"`
	DueDate         *string         `json:"dueDate" db:"due_date"`
	Summary         string          `json:"summary" db:"summary"`
	Insight         string          `json:"insight" db:"insight"`
	RawText         *string         `json:"rawText" db:"raw_text"`
	FileSize        int64           `json:"fileSize" db:"file_size"`
	FilePath        *string         `json:"filePath" db:"file_path"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}
