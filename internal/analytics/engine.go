package analytics

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"spendlens/internal/cache"
	"spendlens/internal/core"
	"spendlens/internal/currency"
	"spendlens/internal/datasource"
	"spendlens/internal/log"
)

const (
	categoryCacheKey   = "categories"
	defaultRecentLimit = 6
)

// RefreshPublisher notifies external consumers that a new dashboard view
// has been computed. Implementations must be safe for concurrent use.
type RefreshPublisher interface {
	PublishSummaryRefreshed(ctx context.Context, year, month int, generation uint64) error
}

// Snapshot is the immutable joined result of one aggregation request's
// independent source reads. Monetary values are normalized to the display
// currency; Degraded lists the sources that failed and were substituted
// with empty values.
type Snapshot struct {
	Year            int
	Month           int
	Generation      uint64
	DisplayCurrency string

	Annual       *core.AnnualSummary
	PrevAnnual   *core.AnnualSummary // fetched only for January requests
	Expenses     []core.Expense
	PrevExpenses []core.Expense
	Categories   []core.Category
	Budgets      []core.Budget

	Degraded []string
}

// DashboardView is the derived, transient view structure produced from a
// snapshot. It is recomputed on every period change or data refresh and
// never written back to any source.
type DashboardView struct {
	Year            int                     `json:"year"`
	Month           int                     `json:"month"`
	Generation      uint64                  `json:"generation"`
	Currency        string                  `json:"currency"`
	Monthly         core.MonthlySummary     `json:"monthly_summary"`
	CategoryTotals  []core.CategoryTotal    `json:"category_totals"`
	TopCategory     core.TopCategory        `json:"top_category"`
	Trend           core.Trend              `json:"trend"`
	CategoryTrends  []core.CategoryTrend    `json:"category_trends"`
	Budgets         []core.BudgetWithStatus `json:"budgets"`
	BudgetSummary   core.BudgetSummary      `json:"budget_summary"`
	Annual          *core.AnnualSummary     `json:"annual_summary,omitempty"`
	RecentExpenses  []core.Expense          `json:"recent_expenses"`
	DegradedSources []string                `json:"degraded_sources,omitempty"`
}

// Engine owns the snapshot reads and the pure aggregation over them.
// Aggregations never fail: a source error degrades that source to its
// empty value and the computation proceeds with partial data.
type Engine struct {
	src     datasource.Store
	rates   *currency.Table
	display string
	cats    cache.Cache[[]core.Category]
	logger  *log.Logger
	events  RefreshPublisher
	recent  int

	gen atomic.Uint64
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithCategoryCache injects the cache collaborator for category lists.
func WithCategoryCache(c cache.Cache[[]core.Category]) Option {
	return func(e *Engine) { e.cats = c }
}

// WithPublisher injects the refresh event publisher.
func WithPublisher(p RefreshPublisher) Option {
	return func(e *Engine) { e.events = p }
}

// WithRecentLimit sets how many recent expenses the view carries.
func WithRecentLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.recent = n
		}
	}
}

func NewEngine(src datasource.Store, rates *currency.Table, displayCurrency string, logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		src:     src,
		rates:   rates,
		display: displayCurrency,
		logger:  logger.WithComponent(log.ComponentEngine),
		recent:  defaultRecentLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dashboard fetches all snapshot sources in parallel, joins them, and
// aggregates the derived view. It always returns a structurally valid view.
func (e *Engine) Dashboard(ctx context.Context, year, month int) *DashboardView {
	snap := e.Fetch(ctx, year, month)
	view := Aggregate(snap)
	if e.recent != defaultRecentLimit {
		view.RecentExpenses = recentExpenses(snap.Expenses, e.recent)
	}

	if e.events != nil {
		if err := e.events.PublishSummaryRefreshed(ctx, year, month, snap.Generation); err != nil {
			e.logger.WarnContext(ctx, "Refresh event publish failed",
				log.FieldOperation, log.OpPublish,
				log.FieldYear, year,
				log.FieldMonth, month,
				log.FieldError, err)
		}
	}
	return view
}

// Fetch issues the period's independent reads in parallel and joins them
// into a normalized snapshot. None of the reads depends on another's
// result, so the group is a join barrier, not a lock; each failed read is
// logged and degraded to an empty value.
func (e *Engine) Fetch(ctx context.Context, year, month int) *Snapshot {
	snap := &Snapshot{
		Year:            year,
		Month:           month,
		Generation:      e.gen.Add(1),
		DisplayCurrency: e.display,
	}
	prevYear, prevMonth := PreviousPeriod(year, month)

	var mu sync.Mutex
	degrade := func(source string, err error) {
		e.logger.WarnContext(ctx, "Snapshot source degraded to empty",
			log.FieldOperation, log.OpFetch,
			log.FieldSource, source,
			log.FieldYear, year,
			log.FieldMonth, month,
			log.FieldError, err)
		mu.Lock()
		snap.Degraded = append(snap.Degraded, source)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := e.src.AnnualSummary(gctx, year)
		if err != nil {
			degrade(log.SourceAnnualSummary, err)
			return nil
		}
		snap.Annual = &summary
		return nil
	})

	if prevYear != year {
		g.Go(func() error {
			summary, err := e.src.AnnualSummary(gctx, prevYear)
			if err != nil {
				degrade(log.SourcePrevAnnualSummary, err)
				return nil
			}
			snap.PrevAnnual = &summary
			return nil
		})
	}

	g.Go(func() error {
		expenses, err := e.src.ListExpenses(gctx, datasource.MonthWindow(year, month))
		if err != nil {
			degrade(log.SourceExpenses, err)
			return nil
		}
		snap.Expenses = expenses
		return nil
	})

	g.Go(func() error {
		expenses, err := e.src.ListExpenses(gctx, datasource.MonthWindow(prevYear, prevMonth))
		if err != nil {
			degrade(log.SourcePrevExpenses, err)
			return nil
		}
		snap.PrevExpenses = expenses
		return nil
	})

	g.Go(func() error {
		cats, err := e.categories(gctx)
		if err != nil {
			degrade(log.SourceCategories, err)
			return nil
		}
		snap.Categories = cats
		return nil
	})

	g.Go(func() error {
		budgets, err := e.src.ListBudgets(gctx, datasource.BudgetFilter{Year: year, Month: month})
		if err != nil {
			degrade(log.SourceBudgets, err)
			return nil
		}
		snap.Budgets = budgets
		return nil
	})

	_ = g.Wait() // goroutines only report via degrade

	e.normalize(ctx, snap)
	return snap
}

// categories serves the category list through the cache collaborator when
// one is configured; staleness is governed by the cache's TTL.
func (e *Engine) categories(ctx context.Context) ([]core.Category, error) {
	if e.cats != nil {
		if cats, ok := e.cats.Get(categoryCacheKey); ok {
			return cats, nil
		}
	}
	cats, err := e.src.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if e.cats != nil {
		e.cats.Set(categoryCacheKey, cats)
	}
	return cats, nil
}

// InvalidateCategories drops the cached category list so the next fetch
// rereads it from the source. Called when a refresh event arrives from
// another instance.
func (e *Engine) InvalidateCategories() {
	if e.cats != nil {
		e.cats.Invalidate(categoryCacheKey)
	}
}

// normalize converts every monetary value in the snapshot into the display
// currency. Conversion never fails; unknown codes fall back to parity with
// the base currency, which is logged here so the masking is observable.
func (e *Engine) normalize(ctx context.Context, snap *Snapshot) {
	unknown := map[string]bool{}
	note := func(code string) {
		if code != "" && !e.rates.Known(code) && !unknown[code] {
			unknown[code] = true
			e.logger.WarnContext(ctx, "Unknown currency code treated as base parity",
				log.FieldOperation, log.OpNormalize,
				log.FieldCurrency, code)
		}
	}

	convert := func(expenses []core.Expense) {
		for i := range expenses {
			note(expenses[i].Currency)
			expenses[i].Amount = e.rates.Convert(expenses[i].Amount, expenses[i].Currency, snap.DisplayCurrency)
			expenses[i].Currency = snap.DisplayCurrency
		}
	}
	convert(snap.Expenses)
	convert(snap.PrevExpenses)

	for i := range snap.Budgets {
		note(snap.Budgets[i].Currency)
		snap.Budgets[i].Amount = e.rates.Convert(snap.Budgets[i].Amount, snap.Budgets[i].Currency, snap.DisplayCurrency)
		snap.Budgets[i].Currency = snap.DisplayCurrency
	}

	snap.Annual = e.convertAnnual(snap.Annual, snap.DisplayCurrency)
	snap.PrevAnnual = e.convertAnnual(snap.PrevAnnual, snap.DisplayCurrency)
}

// convertAnnual returns a copy of the summary with every amount converted
// from the base currency into the display currency. Backends serve annual
// summaries in the base currency; converting here keeps the period total
// and the expense-derived breakdown in the same unit. The copy matters:
// a store may hand out a shared summary, and converting it in place would
// compound on every fetch.
func (e *Engine) convertAnnual(summary *core.AnnualSummary, display string) *core.AnnualSummary {
	if summary == nil || display == currency.Base {
		return summary
	}

	out := *summary
	out.TotalAmount = e.rates.Convert(summary.TotalAmount, currency.Base, display)

	out.MonthlyData = make([]core.MonthlySummary, len(summary.MonthlyData))
	for i, m := range summary.MonthlyData {
		m.Amount = e.rates.Convert(m.Amount, currency.Base, display)
		m.Breakdown = append([]core.CategoryAmount(nil), m.Breakdown...)
		for j := range m.Breakdown {
			m.Breakdown[j].Amount = e.rates.Convert(m.Breakdown[j].Amount, currency.Base, display)
		}
		out.MonthlyData[i] = m
	}

	out.CategoryData = append([]core.CategoryAmount(nil), summary.CategoryData...)
	for i := range out.CategoryData {
		out.CategoryData[i].Amount = e.rates.Convert(out.CategoryData[i].Amount, currency.Base, display)
	}
	return &out
}

// Aggregate is the pure combine step: it derives the full dashboard view
// from an immutable snapshot, with no I/O and no shared state.
func Aggregate(snap *Snapshot) *DashboardView {
	lookup := LookupFromList(snap.Categories)

	monthly := MonthlyOverview(snap.Year, snap.Month, snap.Annual, snap.Expenses, lookup)
	totals := CategoryTotals(snap.Year, snap.Month, snap.Categories, snap.Expenses, monthly.Breakdown, monthly.Amount)
	top := TopSpendingCategory(totals)

	prevYear, prevMonth := PreviousPeriod(snap.Year, snap.Month)
	prevAnnual := snap.Annual
	if prevYear != snap.Year {
		prevAnnual = snap.PrevAnnual
	}
	prevMonthly := MonthlyOverview(prevYear, prevMonth, prevAnnual, snap.PrevExpenses, lookup)

	spentByCategory := make(map[int64]decimal.Decimal, len(totals))
	for _, row := range totals {
		spentByCategory[row.CategoryID] = row.Total
	}
	budgets := EvaluateBudgets(snap.Budgets, spentByCategory)

	view := &DashboardView{
		Year:            snap.Year,
		Month:           snap.Month,
		Generation:      snap.Generation,
		Currency:        snap.DisplayCurrency,
		Monthly:         monthly,
		CategoryTotals:  totals,
		TopCategory:     top,
		Trend:           Compare(monthly.Amount, prevMonthly.Amount),
		CategoryTrends:  CategoryTrends(totals, prevMonthly.Breakdown),
		Budgets:         budgets,
		BudgetSummary:   SummarizeBudgets(budgets),
		RecentExpenses:  recentExpenses(snap.Expenses, defaultRecentLimit),
		DegradedSources: snap.Degraded,
	}
	if snap.Annual != nil {
		enriched := EnrichAnnual(*snap.Annual, lookup)
		view.Annual = &enriched
	}
	return view
}

func recentExpenses(expenses []core.Expense, n int) []core.Expense {
	out := append([]core.Expense(nil), expenses...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Latest retains only the highest-generation view, discarding results of
// superseded aggregation requests so a slow stale fetch can never
// overwrite a newer selection.
type Latest struct {
	mu   sync.Mutex
	gen  uint64
	view *DashboardView
}

// Apply installs the view unless a newer generation has already been
// applied. It reports whether the view was accepted.
func (l *Latest) Apply(view *DashboardView) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.view != nil && view.Generation < l.gen {
		return false
	}
	l.gen = view.Generation
	l.view = view
	return true
}

// View returns the most recently applied view, or nil.
func (l *Latest) View() *DashboardView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view
}
