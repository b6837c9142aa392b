package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"drawer/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoJSONFound means the model response contained no JSON object at all.
	ErrNoJSONFound = errors.New("Failed to extract data from the document. Please try a clearer image or PDF")
	// ErrMalformedJSON means a JSON span was found but could not be parsed.
	ErrMalformedJSON = errors.New("the extraction response was not valid JSON")
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ExtractedData is a fully normalized document record: every field has been
// coerced or defaulted, so all Document invariants hold.
type ExtractedData struct {
	Merchant        string
	Amount          decimal.Decimal
	Category        models.Category
	TransactionType models.TransactionType
	Date            string
	DueDate         *string
	Summary         string
	RawText         string
}

// NormalizeExtraction locates the JSON object in a raw model response and
// coerces it field by field into a valid record. A bad field never fails the
// whole record; only a response with no parseable JSON does.
func NormalizeExtraction(text string, now time.Time) (*ExtractedData, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONFound
	}

	dec := json.NewDecoder(strings.NewReader(text[start : end+1]))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	data := &ExtractedData{
		Merchant:        coerceMerchant(raw["merchant"]),
		Amount:          coerceAmount(raw["amount"]),
		Category:        models.Category(coerceString(raw["category"])),
		TransactionType: models.TransactionType(coerceString(raw["transaction_type"])),
		Date:            coerceDate(raw["date"], now),
		DueDate:         coerceOptionalDate(raw["due_date"]),
		Summary:         coerceString(raw["summary"]),
		RawText:         coerceString(raw["raw_text"]),
	}

	if !models.ValidCategory(data.Category) {
		data.Category = models.CategoryFinance
	}
	if !models.ValidTransactionType(data.TransactionType) {
		data.TransactionType = models.TransactionRecord
	}

	// Records are informational and must not affect financial totals.
	if data.TransactionType == models.TransactionRecord {
		data.Amount = decimal.Zero
	}

	return data, nil
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

func coerceMerchant(v any) string {
	s := strings.TrimSpace(coerceString(v))
	if s == "" {
		return "Unknown"
	}
	return s
}

func coerceAmount(v any) decimal.Decimal {
	var f float64
	switch val := v.(type) {
	case json.Number:
		f, _ = val.Float64()
	case float64:
		f = val
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(val), 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f).Round(2)
}

func coerceDate(v any, now time.Time) string {
	s := coerceString(v)
	if isoDateRe.MatchString(s) {
		return s
	}
	return now.Format("2006-01-02")
}

func coerceOptionalDate(v any) *string {
	s := coerceString(v)
	if !isoDateRe.MatchString(s) {
		return nil
	}
	return &s
}
