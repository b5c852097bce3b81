// Package storage implements the datasource ports on SQLite. Amounts are
// stored as decimal strings alongside their currency code so nothing is
// lost to binary floating point.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"spendlens/internal/core"
	"spendlens/internal/currency"
	"spendlens/internal/datasource"
)

const dateLayout = "2006-01-02"

type Repository struct {
	db    *sql.DB
	rates *currency.Table
}

func NewRepository(dbPath string, rates *currency.Table) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Repository{db: db, rates: rates}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// CreateExpense inserts an expense and returns it with the assigned ID.
func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (description, amount, currency, date, category_id)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Description, e.Amount.String(), e.Currency, e.Date.Format(dateLayout), e.CategoryID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("read expense id: %w", err)
	}
	e.ID = id
	return e, nil
}

// CreateCategory inserts a category and returns it with the assigned ID.
func (r *Repository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if c.Color == "" {
		c.Color = core.UnknownCategoryColor
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, color, description) VALUES (?, ?, ?)`,
		c.Name, c.Color, c.Description)
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("read category id: %w", err)
	}
	c.ID = id
	return c, nil
}

// CreateBudget inserts a budget and returns it with the assigned ID.
func (r *Repository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (category_id, year, month, period, amount, currency)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.CategoryID, b.Year, b.Month, string(b.Period), b.Amount.String(), b.Currency)
	if err != nil {
		return core.Budget{}, fmt.Errorf("insert budget: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Budget{}, fmt.Errorf("read budget id: %w", err)
	}
	b.ID = id
	return b, nil
}

// ListExpenses implements datasource.ExpenseLister.
func (r *Repository) ListExpenses(ctx context.Context, filter datasource.ExpenseFilter) ([]core.Expense, error) {
	query := `SELECT id, description, amount, currency, date, category_id FROM expenses`
	var args []any
	var where []string

	if !filter.Start.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, filter.Start.Format(dateLayout))
	}
	if !filter.End.IsZero() {
		where = append(where, "date < ?")
		args = append(args, filter.End.Format(dateLayout))
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// ListCategories implements datasource.CategoryReader.
func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, description FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

// ListBudgets implements datasource.BudgetReader. Yearly budgets match any
// month filter within their year.
func (r *Repository) ListBudgets(ctx context.Context, filter datasource.BudgetFilter) ([]core.Budget, error) {
	query := `SELECT id, category_id, year, month, period, amount, currency FROM budgets`
	var args []any

	if filter.Year != 0 {
		query += " WHERE year = ?"
		args = append(args, filter.Year)
		if filter.Month != 0 {
			query += " AND (period = 'yearly' OR month = ?)"
			args = append(args, filter.Month)
		}
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var period, amount string
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Year, &b.Month, &period, &amount, &b.Currency); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Period = core.BudgetPeriod(period)
		b.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse budget amount %q: %w", amount, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

// AnnualSummary implements datasource.SummaryReader by aggregating the
// year's stored expenses normalized to the base currency.
func (r *Repository) AnnualSummary(ctx context.Context, year int) (core.AnnualSummary, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	expenses, err := r.ListExpenses(ctx, datasource.ExpenseFilter{Start: start, End: end})
	if err != nil {
		return core.AnnualSummary{}, err
	}
	cats, err := r.ListCategories(ctx)
	if err != nil {
		return core.AnnualSummary{}, err
	}

	return datasource.BuildAnnualSummary(year, expenses, cats, r.rates), nil
}

func scanExpense(rows *sql.Rows) (core.Expense, error) {
	var e core.Expense
	var amount, date string
	if err := rows.Scan(&e.ID, &e.Description, &amount, &e.Currency, &date, &e.CategoryID); err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}

	var err error
	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense amount %q: %w", amount, err)
	}
	e.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense date %q: %w", date, err)
	}
	return e, nil
}
