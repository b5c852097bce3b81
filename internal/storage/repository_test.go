package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendlens/internal/core"
	"spendlens/internal/currency"
	"spendlens/internal/datasource"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := RunMigrations(dbPath); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	repo, err := NewRepository(dbPath, currency.DefaultTable())
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestExpenseRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cat, err := repo.CreateCategory(ctx, core.Category{Name: "Groceries", Color: "#22C55E"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if cat.ID == 0 {
		t.Fatal("category should get an ID assigned")
	}

	created, err := repo.CreateExpense(ctx, core.Expense{
		Description: "Weekly shop",
		Amount:      d("84.50"),
		Currency:    "USD",
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		CategoryID:  cat.ID,
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	got, err := repo.ListExpenses(ctx, datasource.MonthWindow(2024, 3))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expenses = %d, want 1", len(got))
	}
	if got[0].ID != created.ID || got[0].Description != "Weekly shop" {
		t.Errorf("round trip mismatch: %+v", got[0])
	}
	if !got[0].Amount.Equal(d("84.50")) {
		t.Errorf("amount = %s, want 84.50 preserved exactly", got[0].Amount)
	}
}

func TestCreateExpenseRejectsInvalid(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.CreateExpense(context.Background(), core.Expense{
		Description: "",
		Amount:      d("10"),
		Currency:    "USD",
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	if err == nil {
		t.Error("expense without a description should be rejected")
	}
}

func TestListExpensesWindowBoundaries(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, e := range []core.Expense{
		{Description: "feb", Amount: d("10"), Currency: "USD", Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{Description: "mar first", Amount: d("20"), Currency: "USD", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Description: "mar last", Amount: d("30"), Currency: "USD", Date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		{Description: "apr", Amount: d("40"), Currency: "USD", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	} {
		if _, err := repo.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	got, err := repo.ListExpenses(ctx, datasource.MonthWindow(2024, 3))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expenses = %d, want exactly the two March rows", len(got))
	}
	if got[0].Description != "mar first" || got[1].Description != "mar last" {
		t.Errorf("rows = %s, %s; want date order", got[0].Description, got[1].Description)
	}
}

func TestListBudgetsYearlyMatchesAnyMonth(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	monthly := core.Budget{CategoryID: 1, Year: 2024, Month: 3, Period: core.Monthly, Amount: d("100"), Currency: "USD"}
	yearly := core.Budget{CategoryID: 2, Year: 2024, Period: core.Yearly, Amount: d("1000"), Currency: "USD"}
	otherMonth := core.Budget{CategoryID: 1, Year: 2024, Month: 4, Period: core.Monthly, Amount: d("100"), Currency: "USD"}

	for _, b := range []core.Budget{monthly, yearly, otherMonth} {
		if _, err := repo.CreateBudget(ctx, b); err != nil {
			t.Fatalf("CreateBudget failed: %v", err)
		}
	}

	got, err := repo.ListBudgets(ctx, datasource.BudgetFilter{Year: 2024, Month: 3})
	if err != nil {
		t.Fatalf("ListBudgets failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("budgets = %d, want the March monthly and the yearly one", len(got))
	}
}

func TestAnnualSummaryNormalizesCurrencies(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cat, err := repo.CreateCategory(ctx, core.Category{Name: "Travel", Color: "#F97316"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	// 93 EUR is 100 USD at the default rate.
	for _, e := range []core.Expense{
		{Description: "usd", Amount: d("50"), Currency: "USD", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), CategoryID: cat.ID},
		{Description: "eur", Amount: d("93"), Currency: "EUR", Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), CategoryID: cat.ID},
	} {
		if _, err := repo.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	got, err := repo.AnnualSummary(ctx, 2024)
	if err != nil {
		t.Fatalf("AnnualSummary failed: %v", err)
	}
	if !got.TotalAmount.Equal(d("150")) {
		t.Errorf("total = %s, want 150 in the base currency", got.TotalAmount)
	}
	if len(got.MonthlyData) != 2 {
		t.Errorf("monthly entries = %d, want 2", len(got.MonthlyData))
	}
	if len(got.CategoryData) != 1 || got.CategoryData[0].Name != "Travel" {
		t.Errorf("category data = %+v, want one resolved Travel entry", got.CategoryData)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := RunMigrations(dbPath); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		t.Fatalf("second run should be a no-op, got: %v", err)
	}
}
