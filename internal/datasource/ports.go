// Package datasource defines the read-only ports the analytics engine
// consumes. Each port is an independent snapshot read; the engine treats a
// failing port as an empty source rather than an aborted computation.
package datasource

import (
	"context"
	"time"

	"spendlens/internal/core"
)

// ExpenseFilter bounds an expense listing. End is exclusive.
type ExpenseFilter struct {
	Start time.Time
	End   time.Time
}

// BudgetFilter selects budgets for a period. Month == 0 matches both
// monthly budgets of any month and yearly budgets for the year.
type BudgetFilter struct {
	Year  int
	Month int
}

type (
	// SummaryReader serves pre-aggregated annual summaries.
	SummaryReader interface {
		AnnualSummary(ctx context.Context, year int) (core.AnnualSummary, error)
	}

	// ExpenseLister returns raw expenses matching a date window.
	ExpenseLister interface {
		ListExpenses(ctx context.Context, filter ExpenseFilter) ([]core.Expense, error)
	}

	// CategoryReader returns the category reference list.
	CategoryReader interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
	}

	// BudgetReader returns budgets matching a period filter.
	BudgetReader interface {
		ListBudgets(ctx context.Context, filter BudgetFilter) ([]core.Budget, error)
	}
)

// Store is a backend providing all four snapshot reads.
type Store interface {
	SummaryReader
	ExpenseLister
	CategoryReader
	BudgetReader
}

// MonthWindow returns the [start, end) date window of a calendar month.
func MonthWindow(year, month int) ExpenseFilter {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return ExpenseFilter{Start: start, End: start.AddDate(0, 1, 0)}
}
