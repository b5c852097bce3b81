package datasource

import (
	"sort"

	"github.com/shopspring/decimal"

	"spendlens/internal/core"
	"spendlens/internal/currency"
)

// BuildAnnualSummary derives a year's summary from raw expenses, with all
// amounts normalized to the base currency. Backends that store raw
// expenses (memory, SQLite) share this to serve the SummaryReader port the
// same way the upstream summary endpoint would.
func BuildAnnualSummary(year int, expenses []core.Expense, cats []core.Category, rates *currency.Table) core.AnnualSummary {
	monthTotals := make(map[int]decimal.Decimal)
	catTotals := make(map[int64]decimal.Decimal)
	catCounts := make(map[int64]int)
	total := decimal.Zero

	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		amount := rates.Convert(e.Amount, e.Currency, currency.Base)
		month := int(e.Date.Month())
		monthTotals[month] = monthTotals[month].Add(amount)
		catTotals[e.CategoryID] = catTotals[e.CategoryID].Add(amount)
		catCounts[e.CategoryID]++
		total = total.Add(amount)
	}

	summary := core.AnnualSummary{Year: year, TotalAmount: total}
	for month := 1; month <= 12; month++ {
		amount, ok := monthTotals[month]
		if !ok {
			continue
		}
		summary.MonthlyData = append(summary.MonthlyData, core.MonthlySummary{
			Year:   year,
			Month:  month,
			Amount: amount,
		})
	}

	byID := make(map[int64]core.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	for id, amount := range catTotals {
		entry := core.CategoryAmount{
			CategoryID: id,
			Amount:     amount,
			Percentage: core.PercentOf(amount, total),
			Count:      catCounts[id],
		}
		if c, ok := byID[id]; ok {
			entry.Name = c.Name
			entry.Color = c.Color
		}
		summary.CategoryData = append(summary.CategoryData, entry)
	}
	sort.SliceStable(summary.CategoryData, func(i, j int) bool {
		return summary.CategoryData[i].Amount.GreaterThan(summary.CategoryData[j].Amount)
	})

	return summary
}
