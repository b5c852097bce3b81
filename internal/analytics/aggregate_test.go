package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"spendlens/internal/core"
)

func TestMonthlyOverviewSummaryAmountIsAuthoritative(t *testing.T) {
	annual := &core.AnnualSummary{
		Year: 2024,
		MonthlyData: []core.MonthlySummary{
			{Year: 2024, Month: 3, Amount: d("150")},
		},
	}
	// Raw expenses sum to 100, but the summary says 150.
	got := MonthlyOverview(2024, 3, annual, []core.Expense{
		expenseOn(2024, 3, 1, 1, "100"),
	}, testLookup())

	if !got.Amount.Equal(d("150")) {
		t.Errorf("amount = %s, want the summary's 150", got.Amount)
	}
	if len(got.Breakdown) != 1 || got.Breakdown[0].Source != core.SourceComputed {
		t.Errorf("breakdown should still come from expenses when the summary has none")
	}
}

func TestMonthlyOverviewSumsBreakdownWithoutSummary(t *testing.T) {
	got := MonthlyOverview(2024, 3, nil, []core.Expense{
		expenseOn(2024, 3, 1, 1, "30"),
		expenseOn(2024, 3, 2, 2, "70"),
	}, testLookup())

	if !got.Amount.Equal(d("100")) {
		t.Errorf("amount = %s, want 100 from breakdown sum", got.Amount)
	}
}

func TestMonthlyOverviewMismatchedYearIgnoresSummary(t *testing.T) {
	annual := &core.AnnualSummary{
		Year:        2023,
		MonthlyData: []core.MonthlySummary{{Year: 2023, Month: 3, Amount: d("999")}},
	}
	got := MonthlyOverview(2024, 3, annual, nil, testLookup())
	if !got.Amount.IsZero() {
		t.Errorf("amount = %s, want 0 when the summary is for another year", got.Amount)
	}
}

func TestCategoryTotalsPrefersExpenses(t *testing.T) {
	cats := []core.Category{
		{ID: 1, Name: "Groceries", Color: "#22C55E"},
		{ID: 2, Name: "Transport", Color: "#3B82F6"},
	}
	breakdown := []core.CategoryAmount{
		{CategoryID: 1, Amount: d("999")}, // stale, should be ignored
	}
	expenses := []core.Expense{
		expenseOn(2024, 3, 1, 1, "40"),
		expenseOn(2024, 3, 2, 1, "10"),
	}

	got := CategoryTotals(2024, 3, cats, expenses, breakdown, d("50"))

	if len(got) != 2 {
		t.Fatalf("rows = %d, want one per category", len(got))
	}
	if !got[0].Total.Equal(d("50")) || got[0].Count != 2 {
		t.Errorf("groceries row = %s/%d, want 50/2 from expenses", got[0].Total, got[0].Count)
	}
	if got[0].Percentage != 100 {
		t.Errorf("groceries percentage = %v, want 100", got[0].Percentage)
	}
	if !got[1].Total.IsZero() {
		t.Errorf("transport total = %s, want 0", got[1].Total)
	}
}

func TestCategoryTotalsFallsBackToBreakdown(t *testing.T) {
	cats := []core.Category{{ID: 1, Name: "Groceries"}}
	breakdown := []core.CategoryAmount{{CategoryID: 1, Amount: d("75"), Count: 3}}

	got := CategoryTotals(2024, 3, cats, nil, breakdown, d("100"))

	if !got[0].Total.Equal(d("75")) || got[0].Count != 3 {
		t.Errorf("row = %s/%d, want 75/3 from the breakdown", got[0].Total, got[0].Count)
	}
	if got[0].Percentage != 75 {
		t.Errorf("percentage = %v, want 75", got[0].Percentage)
	}
}

func TestTopSpendingCategory(t *testing.T) {
	tests := []struct {
		name   string
		totals []core.CategoryTotal
		want   string
	}{
		{
			name: "highest wins",
			totals: []core.CategoryTotal{
				{Name: "Groceries", Total: d("50")},
				{Name: "Transport", Total: d("80")},
			},
			want: "Transport",
		},
		{
			name: "tie keeps first occurrence",
			totals: []core.CategoryTotal{
				{Name: "Groceries", Total: d("50")},
				{Name: "Transport", Total: d("50")},
			},
			want: "Groceries",
		},
		{
			name:   "no positive spend yields sentinel",
			totals: []core.CategoryTotal{{Name: "Groceries", Total: decimal.Zero}},
			want:   "None",
		},
		{
			name:   "empty input yields sentinel",
			totals: nil,
			want:   "None",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopSpendingCategory(tt.totals); got.Name != tt.want {
				t.Errorf("top = %s, want %s", got.Name, tt.want)
			}
		})
	}
}

func TestEnrichAnnualSortsAndResolves(t *testing.T) {
	summary := core.AnnualSummary{
		Year:        2024,
		TotalAmount: d("100"),
		MonthlyData: []core.MonthlySummary{
			{Year: 2024, Month: 7, Amount: d("60")},
			{Year: 2024, Month: 2, Amount: d("40")},
		},
		CategoryData: []core.CategoryAmount{
			{CategoryID: 2, Amount: d("25")},
			{CategoryID: 1, Amount: d("75")},
		},
	}

	got := EnrichAnnual(summary, testLookup())

	if got.MonthlyData[0].Month != 2 || got.MonthlyData[1].Month != 7 {
		t.Errorf("months not sorted ascending: %d, %d", got.MonthlyData[0].Month, got.MonthlyData[1].Month)
	}
	if got.CategoryData[0].Name != "Groceries" {
		t.Errorf("top category = %s, want Groceries after descending sort", got.CategoryData[0].Name)
	}
	if got.CategoryData[0].Percentage != 75 || got.CategoryData[1].Percentage != 25 {
		t.Errorf("percentages = %v/%v, want 75/25", got.CategoryData[0].Percentage, got.CategoryData[1].Percentage)
	}
}
