package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"spendlens/internal/core"
)

// SeedDemoData fills a store with a small, current-month data set so the
// dashboard has something to show out of the box.
func SeedDemoData(s *Store) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	s.AddCategories(
		core.Category{ID: 1, Name: "Groceries", Color: "#22C55E"},
		core.Category{ID: 2, Name: "Transport", Color: "#3B82F6"},
		core.Category{ID: 3, Name: "Dining", Color: "#F97316"},
		core.Category{ID: 4, Name: "Utilities", Color: "#A855F7"},
	)

	s.AddExpenses(
		core.Expense{ID: 1, Description: "Weekly groceries", Amount: decimal.NewFromFloat(84.50), Currency: "USD", Date: monthStart.AddDate(0, 0, 2), CategoryID: 1},
		core.Expense{ID: 2, Description: "Metro pass", Amount: decimal.NewFromFloat(62), Currency: "USD", Date: monthStart.AddDate(0, 0, 3), CategoryID: 2},
		core.Expense{ID: 3, Description: "Dinner out", Amount: decimal.NewFromFloat(45.20), Currency: "EUR", Date: monthStart.AddDate(0, 0, 5), CategoryID: 3},
		core.Expense{ID: 4, Description: "Electricity bill", Amount: decimal.NewFromFloat(110.75), Currency: "USD", Date: monthStart.AddDate(0, 0, 8), CategoryID: 4},
		core.Expense{ID: 5, Description: "Farmers market", Amount: decimal.NewFromFloat(31.40), Currency: "USD", Date: monthStart.AddDate(0, 0, 10), CategoryID: 1},
		core.Expense{ID: 6, Description: "Taxi", Amount: decimal.NewFromFloat(18.90), Currency: "GBP", Date: monthStart.AddDate(0, 0, 12), CategoryID: 2},
		// previous month, for the trend baseline
		core.Expense{ID: 7, Description: "Weekly groceries", Amount: decimal.NewFromFloat(92.10), Currency: "USD", Date: monthStart.AddDate(0, -1, 4), CategoryID: 1},
		core.Expense{ID: 8, Description: "Gas bill", Amount: decimal.NewFromFloat(76.30), Currency: "USD", Date: monthStart.AddDate(0, -1, 9), CategoryID: 4},
	)

	s.AddBudgets(
		core.Budget{ID: 1, CategoryID: 1, Year: year, Month: int(month), Period: core.Monthly, Amount: decimal.NewFromInt(400), Currency: "USD"},
		core.Budget{ID: 2, CategoryID: 2, Year: year, Month: int(month), Period: core.Monthly, Amount: decimal.NewFromInt(120), Currency: "USD"},
		core.Budget{ID: 3, CategoryID: 3, Year: year, Period: core.Yearly, Amount: decimal.NewFromInt(1500), Currency: "USD"},
	)
}
