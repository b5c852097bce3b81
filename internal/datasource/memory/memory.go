// Package memory provides a seedable in-memory Store, used as the default
// backend and as the test double for the analytics engine.
package memory

import (
	"context"
	"sort"
	"sync"

	"spendlens/internal/core"
	"spendlens/internal/currency"
	"spendlens/internal/datasource"
)

type Store struct {
	mu        sync.Mutex
	rates     *currency.Table
	expenses  []core.Expense
	cats      []core.Category
	budgets   []core.Budget
	summaries map[int]core.AnnualSummary // explicit overrides by year
}

func New(rates *currency.Table) *Store {
	return &Store{
		rates:     rates,
		summaries: make(map[int]core.AnnualSummary),
	}
}

// AddExpenses appends expense snapshots to the store.
func (s *Store) AddExpenses(expenses ...core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, expenses...)
}

// AddCategories appends categories to the reference list.
func (s *Store) AddCategories(cats ...core.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cats = append(s.cats, cats...)
}

// AddBudgets appends budgets to the store.
func (s *Store) AddBudgets(budgets ...core.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append(s.budgets, budgets...)
}

// SetAnnualSummary installs a pre-aggregated summary for a year, taking
// precedence over the summary derived from stored expenses. This mirrors a
// backend whose summary endpoint is served independently of the raw list.
func (s *Store) SetAnnualSummary(summary core.AnnualSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.Year] = summary
}

// ListExpenses implements datasource.ExpenseLister.
func (s *Store) ListExpenses(_ context.Context, filter datasource.ExpenseFilter) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Expense
	for _, e := range s.expenses {
		if !filter.Start.IsZero() && e.Date.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && !e.Date.Before(filter.End) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListCategories implements datasource.CategoryReader.
func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.cats...), nil
}

// ListBudgets implements datasource.BudgetReader.
func (s *Store) ListBudgets(_ context.Context, filter datasource.BudgetFilter) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Budget
	for _, b := range s.budgets {
		if filter.Year != 0 && b.Year != filter.Year {
			continue
		}
		if filter.Month != 0 && b.Period == core.Monthly && b.Month != filter.Month {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// AnnualSummary implements datasource.SummaryReader. An explicitly installed
// summary wins; otherwise the summary is derived from stored expenses with
// amounts normalized to the base currency.
func (s *Store) AnnualSummary(_ context.Context, year int) (core.AnnualSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if summary, ok := s.summaries[year]; ok {
		return summary, nil
	}
	return datasource.BuildAnnualSummary(year, s.expenses, s.cats, s.rates), nil
}
