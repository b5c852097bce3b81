// Package core holds the domain model: source snapshot records and the
// derived view structures the analytics engine produces from them.
package core

import "github.com/shopspring/decimal"

// BreakdownSource tags which fallback tier produced a breakdown entry.
// The tiers form a strict priority chain; first match wins.
type BreakdownSource string

const (
	SourceExplicit      BreakdownSource = "explicit"
	SourceComputed      BreakdownSource = "computed_from_expenses"
	SourceCategoryHint  BreakdownSource = "single_category_hint"
	SourceUncategorized BreakdownSource = "uncategorized"
	SourceEmpty         BreakdownSource = "empty"
)

// Defaults for entries whose category cannot be resolved.
const (
	UnknownCategoryName  = "Unknown Category"
	UnknownCategoryColor = "#9CA3AF"
)

type (
	// CategoryAmount is one entry of a period breakdown.
	CategoryAmount struct {
		CategoryID int64           `json:"category_id"`
		Name       string          `json:"category_name"`
		Color      string          `json:"category_color"`
		Amount     decimal.Decimal `json:"amount"`
		Percentage float64         `json:"percentage"` // 0-100, one decimal
		Count      int             `json:"count"`      // expense occurrences, 0 when unknown
		Source     BreakdownSource `json:"source"`
	}

	// MonthlySummary is the reconciled view of one calendar month.
	// Amount is expressed in the reference currency.
	MonthlySummary struct {
		Year            int              `json:"year"`
		Month           int              `json:"month"`
		Amount          decimal.Decimal  `json:"amount"`
		PrimaryCategory int64            `json:"primary_category_id,omitempty"`
		Breakdown       []CategoryAmount `json:"category_breakdown"`
	}

	// AnnualSummary aggregates a full year: one MonthlySummary per month
	// with data, plus category totals over the year.
	AnnualSummary struct {
		Year         int              `json:"year"`
		TotalAmount  decimal.Decimal  `json:"total_amount"`
		MonthlyData  []MonthlySummary `json:"monthly_data"`
		CategoryData []CategoryAmount `json:"category_data"`
	}

	// CategoryTotal is the per-category spending panel row for a period.
	CategoryTotal struct {
		CategoryID int64           `json:"category_id"`
		Name       string          `json:"name"`
		Color      string          `json:"color"`
		Total      decimal.Decimal `json:"total"`
		Percentage float64         `json:"percentage"`
		Count      int             `json:"count"`
	}

	// TopCategory names the category with the highest spend in a period.
	TopCategory struct {
		Name  string          `json:"name"`
		Spent decimal.Decimal `json:"spent"`
	}

	// Trend is the signed change of a metric between two consecutive periods.
	Trend struct {
		Delta         decimal.Decimal `json:"delta"`
		PercentChange float64         `json:"percent_change"`
		Label         string          `json:"label"`
	}

	// CategoryTrend pairs a category with its period-over-period trend.
	CategoryTrend struct {
		CategoryID int64  `json:"category_id"`
		Name       string `json:"name"`
		Trend      Trend  `json:"trend"`
	}
)

// BudgetStatus classifies spend against a budget.
type BudgetStatus string

const (
	StatusUnder     BudgetStatus = "under"
	StatusNearLimit BudgetStatus = "near-limit"
	StatusOver      BudgetStatus = "over"
)

type (
	// BudgetWithStatus is a budget enriched with the period's spend.
	// PercentageUsed is uncapped; display layers clamp progress bars at 100.
	BudgetWithStatus struct {
		Budget
		Spent          decimal.Decimal `json:"spent_amount"`
		Remaining      decimal.Decimal `json:"remaining_amount"` // negative when over
		PercentageUsed float64         `json:"percentage_used"`
		Status         BudgetStatus    `json:"status"`
	}

	// BudgetSummary aggregates all budgets of a period.
	BudgetSummary struct {
		TotalBudget     decimal.Decimal `json:"total_budget"`
		TotalSpent      decimal.Decimal `json:"total_spent"`
		TotalRemaining  decimal.Decimal `json:"total_remaining"`
		OverBudgetCount int             `json:"over_budget_count"`
		NearLimitCount  int             `json:"near_limit_count"`
	}
)

// NoTopCategory is the sentinel returned when no category has positive spend.
func NoTopCategory() TopCategory {
	return TopCategory{Name: "None", Spent: decimal.Zero}
}

// PercentOf returns part/total*100 rounded half-up to one decimal.
// A zero total yields 0, never NaN. This is the single rounding rule used
// for every percentage in the module.
func PercentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}
