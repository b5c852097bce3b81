// Package analytics implements the expense analytics aggregation engine:
// breakdown reconciliation, monthly/annual aggregation, trend comparison
// and budget status evaluation over read-only data-source snapshots.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"spendlens/internal/core"
)

// CategoryLookup resolves a category id to its reference record.
type CategoryLookup func(id int64) (core.Category, bool)

// LookupFromList builds a CategoryLookup over a category slice.
func LookupFromList(cats []core.Category) CategoryLookup {
	byID := make(map[int64]core.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	return func(id int64) (core.Category, bool) {
		c, ok := byID[id]
		return c, ok
	}
}

// BreakdownInput carries one period's signals for reconciliation. Expense
// amounts are expected to be already normalized to the reference currency.
type BreakdownInput struct {
	Year  int
	Month int

	// Total is the period's aggregate total. May be zero when the summary
	// source was missing.
	Total decimal.Decimal

	// Explicit is the pre-aggregated breakdown from the summary source,
	// possibly nil or sparsely populated.
	Explicit []core.CategoryAmount

	// Expenses is the raw list; only entries dated inside the period count.
	Expenses []core.Expense

	// PrimaryHint is the period record's single category hint, 0 when absent.
	PrimaryHint int64

	Lookup CategoryLookup
}

// Reconcile produces an enriched, sorted per-category breakdown using a
// strict priority chain; the first tier with a signal wins:
//
//	explicit breakdown > grouping of raw expenses > single category hint
//	> synthetic uncategorized entry > empty
//
// Every entry is tagged with the tier that produced it, display fields are
// filled from the entry itself, then the lookup, then the unknown defaults,
// and the final list is stable-sorted descending by amount.
func Reconcile(in BreakdownInput) []core.CategoryAmount {
	entries := reconcileTiers(in)
	for i := range entries {
		enrich(&entries[i], in.Lookup)
	}
	// Stable: ties keep input order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})
	return entries
}

func reconcileTiers(in BreakdownInput) []core.CategoryAmount {
	if len(in.Explicit) > 0 {
		return fromExplicit(in)
	}

	if grouped := fromExpenses(in); len(grouped) > 0 {
		return grouped
	}

	if in.PrimaryHint != 0 && in.Total.IsPositive() {
		return []core.CategoryAmount{{
			CategoryID: in.PrimaryHint,
			Amount:     in.Total,
			Percentage: 100,
			Source:     core.SourceCategoryHint,
		}}
	}

	if in.Total.IsPositive() {
		return []core.CategoryAmount{{
			Name:       core.UnknownCategoryName,
			Color:      core.UnknownCategoryColor,
			Amount:     in.Total,
			Percentage: 100,
			Source:     core.SourceUncategorized,
		}}
	}

	return nil
}

// fromExplicit keeps the provided amounts and percentages verbatim,
// recomputing a percentage only when the source left it unset.
func fromExplicit(in BreakdownInput) []core.CategoryAmount {
	out := make([]core.CategoryAmount, len(in.Explicit))
	copy(out, in.Explicit)
	for i := range out {
		out[i].Source = core.SourceExplicit
		if out[i].Percentage == 0 && !in.Total.IsZero() {
			out[i].Percentage = core.PercentOf(out[i].Amount, in.Total)
		}
	}
	return out
}

// fromExpenses groups the period's expenses by category. Percentages are
// computed against the period total, falling back to the grouped sum when
// the total is zero or unset.
func fromExpenses(in BreakdownInput) []core.CategoryAmount {
	sums := make(map[int64]decimal.Decimal)
	counts := make(map[int64]int)
	var order []int64
	grouped := decimal.Zero

	for _, e := range in.Expenses {
		if !e.InPeriod(in.Year, in.Month) {
			continue
		}
		if _, seen := sums[e.CategoryID]; !seen {
			order = append(order, e.CategoryID)
		}
		sums[e.CategoryID] = sums[e.CategoryID].Add(e.Amount)
		counts[e.CategoryID]++
		grouped = grouped.Add(e.Amount)
	}
	if len(order) == 0 {
		return nil
	}

	base := in.Total
	if base.IsZero() {
		base = grouped
	}

	out := make([]core.CategoryAmount, 0, len(order))
	for _, id := range order {
		out = append(out, core.CategoryAmount{
			CategoryID: id,
			Amount:     sums[id],
			Percentage: core.PercentOf(sums[id], base),
			Count:      counts[id],
			Source:     core.SourceComputed,
		})
	}
	return out
}

// enrich fills display fields by priority: entry values, category lookup,
// unknown defaults.
func enrich(entry *core.CategoryAmount, lookup CategoryLookup) {
	if entry.Name != "" && entry.Color != "" {
		return
	}
	if lookup != nil && entry.CategoryID != 0 {
		if c, ok := lookup(entry.CategoryID); ok {
			if entry.Name == "" {
				entry.Name = c.Name
			}
			if entry.Color == "" {
				entry.Color = c.Color
			}
		}
	}
	if entry.Name == "" {
		entry.Name = core.UnknownCategoryName
	}
	if entry.Color == "" {
		entry.Color = core.UnknownCategoryColor
	}
}
