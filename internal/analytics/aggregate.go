package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"spendlens/internal/core"
)

// MonthlyOverview builds the reconciled summary for one month. When the
// annual summary carries a matching monthly entry its amount is
// authoritative for the period total; otherwise the total is the sum of the
// reconciled breakdown amounts.
func MonthlyOverview(year, month int, annual *core.AnnualSummary, expenses []core.Expense, lookup CategoryLookup) core.MonthlySummary {
	out := core.MonthlySummary{Year: year, Month: month}

	var explicit []core.CategoryAmount
	if annual != nil && annual.Year == year {
		for _, m := range annual.MonthlyData {
			if m.Month != month {
				continue
			}
			out.Amount = m.Amount
			out.PrimaryCategory = m.PrimaryCategory
			explicit = m.Breakdown
			break
		}
	}

	out.Breakdown = Reconcile(BreakdownInput{
		Year:        year,
		Month:       month,
		Total:       out.Amount,
		Explicit:    explicit,
		Expenses:    expenses,
		PrimaryHint: out.PrimaryCategory,
		Lookup:      lookup,
	})

	if out.Amount.IsZero() {
		for _, entry := range out.Breakdown {
			out.Amount = out.Amount.Add(entry.Amount)
		}
	}
	return out
}

// CategoryTotals derives the per-category spending rows for a period.
// For each category in list order it prefers summing the period's expenses
// (most accurate), falling back to the reconciled breakdown entry when no
// expense list is available. Percentages are relative to the period total.
func CategoryTotals(year, month int, categories []core.Category, expenses []core.Expense, breakdown []core.CategoryAmount, total decimal.Decimal) []core.CategoryTotal {
	byCategory := make(map[int64]core.CategoryAmount, len(breakdown))
	for _, entry := range breakdown {
		byCategory[entry.CategoryID] = entry
	}

	haveExpenses := false
	for _, e := range expenses {
		if e.InPeriod(year, month) {
			haveExpenses = true
			break
		}
	}

	out := make([]core.CategoryTotal, 0, len(categories))
	for _, c := range categories {
		row := core.CategoryTotal{CategoryID: c.ID, Name: c.Name, Color: c.Color, Total: decimal.Zero}

		if haveExpenses {
			for _, e := range expenses {
				if e.CategoryID == c.ID && e.InPeriod(year, month) {
					row.Total = row.Total.Add(e.Amount)
					row.Count++
				}
			}
		} else if entry, ok := byCategory[c.ID]; ok {
			row.Total = entry.Amount
			row.Count = entry.Count
		}

		row.Percentage = core.PercentOf(row.Total, total)
		out = append(out, row)
	}
	return out
}

// TopSpendingCategory returns the category with the maximum spend, ties
// resolved by first occurrence in list order. When no category has positive
// spend the {None, 0} sentinel is returned.
func TopSpendingCategory(totals []core.CategoryTotal) core.TopCategory {
	top := core.NoTopCategory()
	for _, row := range totals {
		if row.Total.IsPositive() && row.Total.GreaterThan(top.Spent) {
			top = core.TopCategory{Name: row.Name, Spent: row.Total}
		}
	}
	return top
}

// EnrichAnnual normalizes a fetched annual summary in place of the raw
// source shape: months sorted ascending, category entries enriched with
// display fields and recomputed percentages against the year total.
func EnrichAnnual(summary core.AnnualSummary, lookup CategoryLookup) core.AnnualSummary {
	sort.SliceStable(summary.MonthlyData, func(i, j int) bool {
		return summary.MonthlyData[i].Month < summary.MonthlyData[j].Month
	})
	for i := range summary.CategoryData {
		entry := &summary.CategoryData[i]
		enrich(entry, lookup)
		if entry.Percentage == 0 {
			entry.Percentage = core.PercentOf(entry.Amount, summary.TotalAmount)
		}
	}
	sort.SliceStable(summary.CategoryData, func(i, j int) bool {
		return summary.CategoryData[i].Amount.GreaterThan(summary.CategoryData[j].Amount)
	})
	return summary
}
