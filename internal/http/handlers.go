package http

import (
	"context"
	"net/http"

	"spendlens/internal/analytics"
	"spendlens/internal/core"
	"spendlens/internal/currency"
	"spendlens/internal/datasource"
	"spendlens/internal/log"
)

// dashboardResponse decorates the computed view with a display-ready total.
type dashboardResponse struct {
	*analytics.DashboardView
	TotalDisplay string `json:"total_display"`
}

// handleDashboard computes the dashboard view for the requested period.
// Aggregation never fails outright; partial data is flagged in
// degraded_sources.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	year, month := parseYearMonth(r)
	view := s.engine.Dashboard(ctx, year, month)

	// A stale view loses to a newer generation already applied.
	if !s.latest.Apply(view) {
		if current := s.latest.View(); current != nil {
			view = current
		}
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		DashboardView: view,
		TotalDisplay:  currency.Format(view.Monthly.Amount, view.Currency),
	})
}

// handleAnnualSummary serves the year's summary with category names and
// colors resolved.
func (s *Server) handleAnnualSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	year, _ := parseYearMonth(r)

	summary, err := s.store.AnnualSummary(ctx, year)
	if err != nil {
		s.logger.ErrorContext(ctx, "Annual summary read failed",
			log.FieldYear, year,
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load annual summary")
		return
	}

	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Category list read failed, serving summary unresolved",
			log.FieldYear, year,
			log.FieldError, err)
	}

	enriched := analytics.EnrichAnnual(summary, analytics.LookupFromList(cats))
	writeJSON(w, http.StatusOK, enriched)
}

// handleBudgets serves the period's budgets with spend status attached.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	year, month := parseYearMonth(r)
	view := s.engine.Dashboard(ctx, year, month)

	writeJSON(w, http.StatusOK, struct {
		Year    int                     `json:"year"`
		Month   int                     `json:"month"`
		Budgets []core.BudgetWithStatus `json:"budgets"`
		Summary core.BudgetSummary      `json:"summary"`
	}{
		Year:    year,
		Month:   month,
		Budgets: view.Budgets,
		Summary: view.BudgetSummary,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Category list read failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	year, month := parseYearMonth(r)
	expenses, err := s.store.ListExpenses(ctx, datasource.MonthWindow(year, month))
	if err != nil {
		s.logger.ErrorContext(ctx, "Expense list read failed",
			log.FieldYear, year,
			log.FieldMonth, month,
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}
