package analytics

import (
	"github.com/shopspring/decimal"

	"spendlens/internal/core"
)

// Trend labels surfaced to comparison indicators.
const (
	LabelNoChange = "No change"
	LabelNewSpend = "New this month"
	LabelUp       = "Up vs last month"
	LabelDown     = "Down vs last month"
)

// PreviousPeriod resolves the period immediately before (year, month),
// rolling January back to December of the prior year.
func PreviousPeriod(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// Compare computes the period-over-period trend of a metric. A zero
// baseline with positive current spend is treated as new spend (100%),
// never as an infinite change.
func Compare(current, previous decimal.Decimal) core.Trend {
	t := core.Trend{Delta: current.Sub(previous)}

	switch {
	case previous.IsPositive():
		t.PercentChange = core.PercentOf(t.Delta, previous)
	case current.IsPositive():
		t.PercentChange = 100
	default:
		t.PercentChange = 0
	}

	switch {
	case t.PercentChange == 0:
		t.Label = LabelNoChange
	case t.Delta.IsNegative():
		t.Label = LabelDown
	default:
		t.Label = LabelUp
	}
	return t
}

// CompareCategory applies the same rules per category, additionally
// distinguishing genuinely new spend from a 0% change: a category with no
// baseline but positive current spend is labelled "New this month".
func CompareCategory(current, previous decimal.Decimal) core.Trend {
	t := Compare(current, previous)
	if !previous.IsPositive() && current.IsPositive() {
		t.Label = LabelNewSpend
	}
	return t
}

// CategoryTrends pairs each current-period category row with its trend
// against the previous period's breakdown.
func CategoryTrends(current []core.CategoryTotal, previous []core.CategoryAmount) []core.CategoryTrend {
	prevByID := make(map[int64]decimal.Decimal, len(previous))
	for _, entry := range previous {
		prevByID[entry.CategoryID] = entry.Amount
	}

	out := make([]core.CategoryTrend, 0, len(current))
	for _, row := range current {
		prev, ok := prevByID[row.CategoryID]
		if !ok {
			prev = decimal.Zero
		}
		out = append(out, core.CategoryTrend{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			Trend:      CompareCategory(row.Total, prev),
		})
	}
	return out
}
