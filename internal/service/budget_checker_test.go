package service

import (
	"errors"
	"testing"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func catID(id int32) *int32 { return &id }

func budgetRow(id int32, category *int32, amount string) *domain.Budget {
	return &domain.Budget{ID: id, CategoryID: category, Amount: decimal.RequireFromString(amount)}
}

func TestCheckBudgetConsistency(t *testing.T) {
	food, transport, fun := catID(1), catID(2), catID(3)

	tests := []struct {
		name      string
		existing  []*domain.Budget
		category  *int32
		amount    string
		replacing *int32
		wantErr   error
	}{
		{
			name:     "category without total is unconstrained",
			existing: []*domain.Budget{budgetRow(1, food, "500.00")},
			category: transport,
			amount:   "100000.00",
		},
		{
			name:     "total with no categories",
			category: nil,
			amount:   "10.00",
		},
		{
			name:     "category exceeding total is rejected",
			existing: []*domain.Budget{budgetRow(1, nil, "1000.00"), budgetRow(2, food, "500.00")},
			category: transport,
			amount:   "600.00",
			wantErr:  domain.ErrBudgetExceedsTotal,
		},
		{
			name:     "category filling total exactly is accepted",
			existing: []*domain.Budget{budgetRow(1, nil, "1000.00"), budgetRow(2, food, "500.00")},
			category: transport,
			amount:   "500.00",
		},
		{
			name:     "updating own category does not double count",
			existing: []*domain.Budget{budgetRow(1, nil, "1000.00"), budgetRow(2, food, "900.00")},
			category: food,
			amount:   "1000.00",
		},
		{
			name:      "replaced row is excluded",
			existing:  []*domain.Budget{budgetRow(1, nil, "1000.00"), budgetRow(2, food, "900.00"), budgetRow(3, fun, "100.00")},
			category:  food,
			amount:    "900.00",
			replacing: catID(2),
		},
		{
			name:     "total below categories is rejected",
			existing: []*domain.Budget{budgetRow(2, food, "500.00"), budgetRow(3, transport, "300.00")},
			category: nil,
			amount:   "799.99",
			wantErr:  domain.ErrTotalBelowCategories,
		},
		{
			name:     "total equal to categories is accepted",
			existing: []*domain.Budget{budgetRow(1, nil, "2000.00"), budgetRow(2, food, "500.00"), budgetRow(3, transport, "300.00")},
			category: nil,
			amount:   "800.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBudgetConsistency(tt.existing, tt.category, decimal.RequireFromString(tt.amount), tt.replacing)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCheckBudgetConsistency_ReportsTotals(t *testing.T) {
	existing := []*domain.Budget{budgetRow(1, nil, "1000.00"), budgetRow(2, catID(1), "500.00")}

	err := CheckBudgetConsistency(existing, catID(2), decimal.RequireFromString("600.00"), nil)

	var cerr *domain.BudgetConsistencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected BudgetConsistencyError, got %v", err)
	}
	if !cerr.TotalBudget.Equal(decimal.RequireFromString("1000")) ||
		!cerr.CategorySum.Equal(decimal.RequireFromString("500")) ||
		!cerr.Proposed.Equal(decimal.RequireFromString("600")) {
		t.Errorf("Unexpected totals: %+v", cerr)
	}
	want := "the sum of all category budgets cannot exceed your total budget (total budget 1000.00, category budgets 500.00, requested 600.00)"
	if cerr.Error() != want {
		t.Errorf("Expected %q, got %q", want, cerr.Error())
	}
}
