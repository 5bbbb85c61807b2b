package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/util"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReportService computes month-window aggregates from persisted entries and budgets
type ReportService struct {
	entryRepo  domain.EntryRepository
	budgetRepo domain.BudgetRepository
	loc        *time.Location
	now        func() time.Time
}

// NewReportService creates a new ReportService; loc decides the local "today"
func NewReportService(entryRepo domain.EntryRepository, budgetRepo domain.BudgetRepository, loc *time.Location) *ReportService {
	return &ReportService{
		entryRepo:  entryRepo,
		budgetRepo: budgetRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// CurrentMonth aggregates the month containing today
func (s *ReportService) CurrentMonth(ctx context.Context, userID uuid.UUID) (*domain.MonthlySummary, error) {
	today := util.Today(s.now(), s.loc)
	return s.AggregateMonth(ctx, userID, util.MonthStart(today))
}

// AggregateMonth sums entries dated from monthStart through the earlier of the
// month's last day and today, and sets them against the month's budgets.
func (s *ReportService) AggregateMonth(ctx context.Context, userID uuid.UUID, monthStart time.Time) (*domain.MonthlySummary, error) {
	if !util.IsMonthStart(monthStart) {
		return nil, domain.ErrInvalidMonth
	}
	today := util.Today(s.now(), s.loc)
	windowEnd := util.MinDate(util.MonthEnd(monthStart), today)

	var (
		totals  []*domain.CategoryTypeTotal
		budgets []*domain.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.entryRepo.SumByCategory(gctx, userID, monthStart, windowEnd)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgetRepo.GetByMonth(gctx, userID, monthStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summarize(monthStart, windowEnd, totals, budgets), nil
}

// summarize is the pure part of the report
func summarize(monthStart, windowEnd time.Time, totals []*domain.CategoryTypeTotal, budgets []*domain.Budget) *domain.MonthlySummary {
	summary := &domain.MonthlySummary{
		MonthStart:   monthStart,
		WindowEnd:    windowEnd,
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
		NetBalance:   decimal.Zero,
		PerCategory:  []*domain.CategorySummary{},
	}

	// Rows keyed by category id; -1 holds uncategorized entries
	const uncategorized = int32(-1)
	rows := make(map[int32]*domain.CategorySummary)
	row := func(categoryID *int32, name string) *domain.CategorySummary {
		key := uncategorized
		if categoryID != nil {
			key = *categoryID
		}
		r, ok := rows[key]
		if !ok {
			r = &domain.CategorySummary{
				CategoryID: categoryID,
				Name:       name,
				Income:     decimal.Zero,
				Expense:    decimal.Zero,
			}
			rows[key] = r
		}
		return r
	}

	for _, t := range totals {
		name := t.CategoryName
		if t.CategoryID == nil {
			name = domain.UncategorizedLabel
		}
		r := row(t.CategoryID, name)
		switch t.Type {
		case domain.EntryTypeIncome:
			r.Income = r.Income.Add(t.Total)
			summary.IncomeTotal = summary.IncomeTotal.Add(t.Total)
		case domain.EntryTypeExpense:
			r.Expense = r.Expense.Add(t.Total)
			summary.ExpenseTotal = summary.ExpenseTotal.Add(t.Total)
		}
		summary.TransactionCount += t.Count
	}
	summary.NetBalance = summary.IncomeTotal.Sub(summary.ExpenseTotal)

	for _, b := range budgets {
		amount := b.Amount
		if b.IsTotal() {
			summary.TotalBudget = &amount
			continue
		}
		name := ""
		if b.CategoryName != nil {
			name = *b.CategoryName
		}
		r := row(b.CategoryID, name)
		r.Budget = &amount
	}

	for _, r := range rows {
		if r.Budget != nil {
			remaining := r.Budget.Sub(r.Expense)
			r.Remaining = &remaining
			r.Over = remaining.IsNegative()
		}
		summary.PerCategory = append(summary.PerCategory, r)
	}
	if summary.TotalBudget != nil {
		remaining := summary.TotalBudget.Sub(summary.ExpenseTotal)
		summary.TotalRemaining = &remaining
		summary.Over = remaining.IsNegative()
	}

	sort.Slice(summary.PerCategory, func(i, j int) bool {
		a, b := summary.PerCategory[i], summary.PerCategory[j]
		if (a.CategoryID == nil) != (b.CategoryID == nil) {
			return b.CategoryID == nil
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return *a.CategoryID < *b.CategoryID
	})

	return summary
}
