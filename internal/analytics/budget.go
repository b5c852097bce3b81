package analytics

import (
	"github.com/shopspring/decimal"

	"spendlens/internal/core"
)

// Status thresholds as percentage of the budget amount.
const (
	nearLimitThreshold = 85
	overThreshold      = 100
)

// EvaluateBudget compares the category's normalized spend against the
// budget. percentage_used stays uncapped above 100 so "over by X%" can be
// reported; a zero-amount budget degrades to under/0 instead of dividing
// by zero.
func EvaluateBudget(b core.Budget, spent decimal.Decimal) core.BudgetWithStatus {
	out := core.BudgetWithStatus{
		Budget:    b,
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
		Status:    core.StatusUnder,
	}
	if !b.Amount.IsPositive() {
		return out
	}

	out.PercentageUsed = core.PercentOf(spent, b.Amount)
	switch {
	case out.PercentageUsed >= overThreshold:
		out.Status = core.StatusOver
	case out.PercentageUsed >= nearLimitThreshold:
		out.Status = core.StatusNearLimit
	}
	return out
}

// EvaluateBudgets evaluates each budget against the spend of its category
// in the period. spentByCategory is keyed by category id, already in the
// reference currency.
func EvaluateBudgets(budgets []core.Budget, spentByCategory map[int64]decimal.Decimal) []core.BudgetWithStatus {
	out := make([]core.BudgetWithStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, EvaluateBudget(b, spentByCategory[b.CategoryID]))
	}
	return out
}

// SummarizeBudgets aggregates evaluated budgets: totals plus counts of
// budgets per status class.
func SummarizeBudgets(items []core.BudgetWithStatus) core.BudgetSummary {
	s := core.BudgetSummary{
		TotalBudget: decimal.Zero,
		TotalSpent:  decimal.Zero,
	}
	for _, item := range items {
		s.TotalBudget = s.TotalBudget.Add(item.Amount)
		s.TotalSpent = s.TotalSpent.Add(item.Spent)
		switch item.Status {
		case core.StatusOver:
			s.OverBudgetCount++
		case core.StatusNearLimit:
			s.NearLimitCount++
		}
	}
	s.TotalRemaining = s.TotalBudget.Sub(s.TotalSpent)
	return s
}
