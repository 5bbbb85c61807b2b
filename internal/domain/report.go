package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary is one row of the monthly report. Budget and Remaining are nil
// when no budget is set for the category.
type CategorySummary struct {
	CategoryID *int32           `json:"categoryId,omitempty"`
	Name       string           `json:"name"`
	Income     decimal.Decimal  `json:"income"`
	Expense    decimal.Decimal  `json:"expense"`
	Budget     *decimal.Decimal `json:"budget"`
	Remaining  *decimal.Decimal `json:"remaining"`
	Over       bool             `json:"over"`
}

type MonthlySummary struct {
	MonthStart       time.Time          `json:"monthStart"`
	WindowEnd        time.Time          `json:"windowEnd"`
	IncomeTotal      decimal.Decimal    `json:"incomeTotal"`
	ExpenseTotal     decimal.Decimal    `json:"expenseTotal"`
	NetBalance       decimal.Decimal    `json:"netBalance"`
	TransactionCount int64              `json:"transactionCount"`
	TotalBudget      *decimal.Decimal   `json:"totalBudget"`
	TotalRemaining   *decimal.Decimal   `json:"totalRemaining"`
	Over             bool               `json:"over"`
	PerCategory      []*CategorySummary `json:"perCategory"`
}
