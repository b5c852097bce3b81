package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"spendlens/internal/core"
)

func monthlyBudget(categoryID int64, amount string) core.Budget {
	return core.Budget{
		CategoryID: categoryID,
		Year:       2024,
		Month:      3,
		Period:     core.Monthly,
		Amount:     d(amount),
		Currency:   "USD",
	}
}

func TestEvaluateBudget(t *testing.T) {
	tests := []struct {
		name        string
		budget      string
		spent       string
		wantStatus  core.BudgetStatus
		wantPercent float64
	}{
		{"well under", "100", "50", core.StatusUnder, 50},
		{"just below near-limit", "100", "84.9", core.StatusUnder, 84.9},
		{"at near-limit threshold", "100", "85", core.StatusNearLimit, 85},
		{"between thresholds", "100", "92", core.StatusNearLimit, 92},
		{"exactly at budget", "100", "100", core.StatusOver, 100},
		{"over budget keeps uncapped percentage", "100", "150", core.StatusOver, 150},
		{"nothing spent", "100", "0", core.StatusUnder, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBudget(monthlyBudget(1, tt.budget), d(tt.spent))
			if got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.PercentageUsed != tt.wantPercent {
				t.Errorf("percentage = %v, want %v", got.PercentageUsed, tt.wantPercent)
			}
			wantRemaining := d(tt.budget).Sub(d(tt.spent))
			if !got.Remaining.Equal(wantRemaining) {
				t.Errorf("remaining = %s, want %s", got.Remaining, wantRemaining)
			}
		})
	}
}

func TestEvaluateBudgetZeroAmount(t *testing.T) {
	got := EvaluateBudget(monthlyBudget(1, "0"), d("40"))
	if got.Status != core.StatusUnder {
		t.Errorf("status = %s, want under for a zero budget", got.Status)
	}
	if got.PercentageUsed != 0 {
		t.Errorf("percentage = %v, want 0 (no division by zero)", got.PercentageUsed)
	}
}

func TestEvaluateBudgetsUnspentCategory(t *testing.T) {
	budgets := []core.Budget{
		monthlyBudget(1, "100"),
		monthlyBudget(2, "200"),
	}
	spent := map[int64]decimal.Decimal{1: d("90")}

	got := EvaluateBudgets(budgets, spent)

	if len(got) != 2 {
		t.Fatalf("evaluated = %d, want 2", len(got))
	}
	if got[0].Status != core.StatusNearLimit {
		t.Errorf("first status = %s, want near-limit", got[0].Status)
	}
	if !got[1].Spent.IsZero() || got[1].Status != core.StatusUnder {
		t.Errorf("category with no spend should evaluate under with 0 spent, got %s/%s",
			got[1].Spent, got[1].Status)
	}
}

func TestSummarizeBudgets(t *testing.T) {
	items := EvaluateBudgets(
		[]core.Budget{
			monthlyBudget(1, "100"),
			monthlyBudget(2, "100"),
			monthlyBudget(3, "100"),
		},
		map[int64]decimal.Decimal{
			1: d("150"), // over
			2: d("90"),  // near-limit
			3: d("10"),  // under
		},
	)

	got := SummarizeBudgets(items)

	if !got.TotalBudget.Equal(d("300")) {
		t.Errorf("total budget = %s, want 300", got.TotalBudget)
	}
	if !got.TotalSpent.Equal(d("250")) {
		t.Errorf("total spent = %s, want 250", got.TotalSpent)
	}
	if !got.TotalRemaining.Equal(d("50")) {
		t.Errorf("total remaining = %s, want 50", got.TotalRemaining)
	}
	if got.OverBudgetCount != 1 || got.NearLimitCount != 1 {
		t.Errorf("counts = over:%d near:%d, want 1/1", got.OverBudgetCount, got.NearLimitCount)
	}
}

func TestSummarizeBudgetsEmpty(t *testing.T) {
	got := SummarizeBudgets(nil)
	if !got.TotalBudget.IsZero() || !got.TotalRemaining.IsZero() {
		t.Errorf("empty summary should be all zero, got %+v", got)
	}
}
