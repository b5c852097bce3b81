package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Description: "coffee",
		Amount:      d("4.50"),
		Currency:    "USD",
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr error
	}{
		{"valid", func(*Expense) {}, nil},
		{"empty description", func(e *Expense) { e.Description = "  " }, ErrEmptyDescription},
		{"negative amount", func(e *Expense) { e.Amount = d("-1") }, ErrInvalidAmount},
		{"bad currency code", func(e *Expense) { e.Currency = "US" }, ErrInvalidCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	zeroDate := valid
	zeroDate.Date = time.Time{}
	if zeroDate.Validate() == nil {
		t.Error("zero date should fail validation")
	}
}

func TestExpenseInPeriod(t *testing.T) {
	e := Expense{Date: time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)}
	if !e.InPeriod(2024, 3) {
		t.Error("last day of March is inside the March period")
	}
	if e.InPeriod(2024, 4) {
		t.Error("March expense is not inside April")
	}
	if e.InPeriod(2023, 3) {
		t.Error("year must match too")
	}
}

func TestBudgetValidate(t *testing.T) {
	tests := []struct {
		name    string
		budget  Budget
		wantErr bool
	}{
		{
			name:   "valid monthly",
			budget: Budget{CategoryID: 1, Year: 2024, Month: 3, Period: Monthly, Amount: d("100"), Currency: "USD"},
		},
		{
			name:   "valid yearly",
			budget: Budget{CategoryID: 1, Year: 2024, Period: Yearly, Amount: d("1000"), Currency: "USD"},
		},
		{
			name:    "monthly without month",
			budget:  Budget{CategoryID: 1, Year: 2024, Period: Monthly, Amount: d("100"), Currency: "USD"},
			wantErr: true,
		},
		{
			name:    "monthly month out of range",
			budget:  Budget{CategoryID: 1, Year: 2024, Month: 13, Period: Monthly, Amount: d("100"), Currency: "USD"},
			wantErr: true,
		},
		{
			name:    "yearly with month",
			budget:  Budget{CategoryID: 1, Year: 2024, Month: 6, Period: Yearly, Amount: d("100"), Currency: "USD"},
			wantErr: true,
		},
		{
			name:    "negative amount",
			budget:  Budget{CategoryID: 1, Year: 2024, Month: 3, Period: Monthly, Amount: d("-5"), Currency: "USD"},
			wantErr: true,
		},
		{
			name:    "invalid period",
			budget:  Budget{CategoryID: 1, Year: 2024, Month: 3, Period: "weekly", Amount: d("100"), Currency: "USD"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name  string
		part  string
		total string
		want  float64
	}{
		{"half", "50", "100", 50},
		{"rounds half up to one decimal", "1", "3", 33.3},
		{"two thirds", "2", "3", 66.7},
		{"zero total never divides", "50", "0", 0},
		{"over 100 stays uncapped", "150", "100", 150},
		{"exact tenth", "1.5", "1000", 0.2}, // 0.15% rounds half-up
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentOf(d(tt.part), d(tt.total)); got != tt.want {
				t.Errorf("PercentOf(%s, %s) = %v, want %v", tt.part, tt.total, got, tt.want)
			}
		})
	}
}

func TestNoTopCategory(t *testing.T) {
	got := NoTopCategory()
	if got.Name != "None" || !got.Spent.IsZero() {
		t.Errorf("sentinel = %+v, want {None, 0}", got)
	}
}
