package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a monthly spending ceiling; a nil CategoryID marks the total budget
type Budget struct {
	ID           int32           `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	CategoryID   *int32          `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Month        time.Time       `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// IsTotal reports whether b is the category-less total budget
func (b *Budget) IsTotal() bool {
	return b.CategoryID == nil
}

// BudgetCheck inspects the month's current budgets before a write is applied
type BudgetCheck func(existing []*Budget) error

type BudgetRepository interface {
	GetByMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*Budget, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int32) (*Budget, error)
	// UpsertChecked serializes writers for (userID, budget.Month), runs check against the
	// month's budgets and upserts by (user, category, month) only if check passes
	UpsertChecked(ctx context.Context, budget *Budget, check BudgetCheck) (*Budget, error)
	Delete(ctx context.Context, userID uuid.UUID, id int32) error
}
