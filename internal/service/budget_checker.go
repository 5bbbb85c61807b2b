package service

import (
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// CheckBudgetConsistency decides whether writing amount for categoryID (nil = total
// budget) keeps the month's category budgets within its total budget.
// existing holds the month's current budgets. replacingID names the row being
// overwritten, if any; it and the row for the same category are left out of the sum.
func CheckBudgetConsistency(existing []*domain.Budget, categoryID *int32, amount decimal.Decimal, replacingID *int32) error {
	categorySum := decimal.Zero
	var total *domain.Budget

	for _, b := range existing {
		if b.IsTotal() {
			total = b
			continue
		}
		if replacingID != nil && b.ID == *replacingID {
			continue
		}
		if categoryID != nil && *b.CategoryID == *categoryID {
			continue
		}
		categorySum = categorySum.Add(b.Amount)
	}

	if categoryID == nil {
		if amount.LessThan(categorySum) {
			return &domain.BudgetConsistencyError{
				Kind:        domain.ErrTotalBelowCategories,
				TotalBudget: amount,
				CategorySum: categorySum,
				Proposed:    amount,
			}
		}
		return nil
	}

	if total != nil && categorySum.Add(amount).GreaterThan(total.Amount) {
		return &domain.BudgetConsistencyError{
			Kind:        domain.ErrBudgetExceedsTotal,
			TotalBudget: total.Amount,
			CategorySum: categorySum,
			Proposed:    amount,
		}
	}
	return nil
}
