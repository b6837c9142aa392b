package service

import (
	"fmt"
	"math"
	"time"

	"drawer/internal/models"

	"github.com/shopspring/decimal"
)

var minusFive = decimal.NewFromInt(-5)

// GenerateInsight derives a single comparative sentence from the current
// amount against the previous amount for the same merchant, or from due-date
// proximity. First matching rule wins.
//
// The percent-change thresholds are asymmetric on purpose: any increase
// triggers an alert, but a decrease only does below -5%, so tiny savings stay
// quiet.
func GenerateInsight(
	current decimal.Decimal,
	previous *decimal.Decimal,
	dueDate *string,
	category models.Category,
	transactionType models.TransactionType,
	now time.Time,
) string {
	if transactionType == models.TransactionRecord {
		return fmt.Sprintf("Filed as a record in %s.", category)
	}

	if transactionType == models.TransactionIncome {
		if previous != nil && previous.IsPositive() {
			diff := percentChange(current, *previous)
			if diff.IsPositive() {
				return fmt.Sprintf("Income is %s%% higher than your last deposit ($%s).",
					diff.Abs().Round(0), previous.StringFixed(2))
			}
			if diff.LessThan(minusFive) {
				return fmt.Sprintf("Income is %s%% lower than your last deposit ($%s).",
					diff.Abs().Round(0), previous.StringFixed(2))
			}
		}
		return fmt.Sprintf("Income of $%s recorded in %s.", current.StringFixed(2), category)
	}

	if previous != nil && previous.IsPositive() {
		diff := percentChange(current, *previous)
		if diff.IsPositive() {
			return fmt.Sprintf("Alert: This is %s%% more expensive than your last similar purchase ($%s).",
				diff.Abs().Round(0), previous.StringFixed(2))
		}
		if diff.LessThan(minusFive) {
			return fmt.Sprintf("Great news! This is %s%% less than your last similar purchase ($%s).",
				diff.Abs().Round(0), previous.StringFixed(2))
		}
	}

	if dueDate != nil && *dueDate != "" {
		if due, err := time.Parse("2006-01-02", *dueDate); err == nil {
			daysUntilDue := int(math.Ceil(due.Sub(now).Hours() / 24))
			if daysUntilDue >= 0 && daysUntilDue <= 7 {
				return fmt.Sprintf("Reminder: Payment due on %s (%d days away).", *dueDate, daysUntilDue)
			}
			if daysUntilDue < 0 {
				return fmt.Sprintf("Alert: This payment was due on %s (%d days overdue).", *dueDate, -daysUntilDue)
			}
		}
	}

	return fmt.Sprintf("Expense of $%s saved in %s.", current.StringFixed(2), category)
}

func percentChange(current, previous decimal.Decimal) decimal.Decimal {
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
}
