package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Monthly BudgetPeriod = "monthly"
	Yearly  BudgetPeriod = "yearly"
)

type (
	BudgetPeriod string

	// Expense is a read-only snapshot of a recorded expense. The engine
	// never mutates expenses; it only derives views from them.
	Expense struct {
		ID          int64           `json:"id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Currency    string          `json:"currency"`
		Date        time.Time       `json:"date"`
		CategoryID  int64           `json:"category_id"` // 0 means uncategorized
	}

	// Category is reference data used to enrich breakdowns.
	Category struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Color       string `json:"color"` // display hex, e.g. "#3B82F6"
		Description string `json:"description,omitempty"`
	}

	// Budget allocates an amount to a category for a month or a year.
	// Month == 0 together with Period == Yearly means a yearly budget.
	Budget struct {
		ID         int64           `json:"id"`
		CategoryID int64           `json:"category_id"`
		Year       int             `json:"year"`
		Month      int             `json:"month,omitempty"`
		Period     BudgetPeriod    `json:"period"`
		Amount     decimal.Decimal `json:"amount"`
		Currency   string          `json:"currency"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
)

func (p BudgetPeriod) IsValid() bool {
	switch p {
	case Monthly, Yearly:
		return true
	default:
		return false
	}
}

// InPeriod reports whether the expense date falls inside the given calendar month.
func (e Expense) InPeriod(year, month int) bool {
	return e.Date.Year() == year && int(e.Date.Month()) == month
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if len(e.Currency) != 3 {
		return ErrInvalidCurrency
	}
	if e.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (b Budget) Validate() error {
	if b.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if len(b.Currency) != 3 {
		return ErrInvalidCurrency
	}
	if !b.Period.IsValid() {
		return errors.New("invalid budget period")
	}
	if b.Period == Monthly && (b.Month < 1 || b.Month > 12) {
		return ErrInvalidMonth
	}
	if b.Period == Yearly && b.Month != 0 {
		return errors.New("yearly budget must not carry a month")
	}
	return nil
}
