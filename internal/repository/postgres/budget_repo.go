package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise/pennywise-backend/db/sqlc"
	"github.com/pennywise/pennywise-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// GetByMonth retrieves all budgets of a month; the total budget sorts first
func (r *BudgetRepository) GetByMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*domain.Budget, error) {
	return listBudgets(ctx, r.queries, userID, month)
}

// GetByID retrieves a budget owned by userID
func (r *BudgetRepository) GetByID(ctx context.Context, userID uuid.UUID, id int32) (*domain.Budget, error) {
	budget, err := r.queries.GetBudgetByID(ctx, sqlc.GetBudgetByIDParams{
		UserID: uuidToPg(userID),
		ID:     id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return sqlcBudgetToDomain(budget), nil
}

// UpsertChecked runs check and the upsert in one transaction holding an
// advisory lock on (user, month), so concurrent writers to the same month
// always see each other's rows.
func (r *BudgetRepository) UpsertChecked(ctx context.Context, budget *domain.Budget, check domain.BudgetCheck) (*domain.Budget, error) {
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	qtx := r.queries.WithTx(tx)

	if err := qtx.LockBudgetMonth(ctx, budgetLockKey(budget.UserID, budget.Month)); err != nil {
		return nil, fmt.Errorf("lock budget month: %w", err)
	}

	existing, err := listBudgets(ctx, qtx, budget.UserID, budget.Month)
	if err != nil {
		return nil, err
	}
	if err := check(existing); err != nil {
		return nil, err
	}

	saved, err := qtx.UpsertBudget(ctx, sqlc.UpsertBudgetParams{
		UserID:     uuidToPg(budget.UserID),
		CategoryID: int32PtrToPgInt4(budget.CategoryID),
		Month:      timeToPgDate(budget.Month),
		Amount:     amount,
	})
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation, pgCheckViolation:
			return nil, domain.ErrStoreConflict
		case pgFKViolation:
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result := sqlcBudgetToDomain(saved)
	result.CategoryName = budget.CategoryName
	return result, nil
}

// Delete removes a budget owned by userID
func (r *BudgetRepository) Delete(ctx context.Context, userID uuid.UUID, id int32) error {
	rows, err := r.queries.DeleteBudget(ctx, sqlc.DeleteBudgetParams{
		UserID: uuidToPg(userID),
		ID:     id,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func listBudgets(ctx context.Context, q *sqlc.Queries, userID uuid.UUID, month time.Time) ([]*domain.Budget, error) {
	rows, err := q.ListBudgetsByMonth(ctx, sqlc.ListBudgetsByMonthParams{
		UserID: uuidToPg(userID),
		Month:  timeToPgDate(month),
	})
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Budget, len(rows))
	for i, row := range rows {
		b := sqlcBudgetToDomain(sqlc.Budget{
			ID:         row.ID,
			UserID:     row.UserID,
			CategoryID: row.CategoryID,
			Month:      row.Month,
			Amount:     row.Amount,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		})
		b.CategoryName = pgTextToStringPtr(row.CategoryName)
		result[i] = b
	}
	return result, nil
}

func budgetLockKey(userID uuid.UUID, month time.Time) string {
	return "budgets:" + userID.String() + ":" + month.Format(domain.DateLayout)
}

func sqlcBudgetToDomain(b sqlc.Budget) *domain.Budget {
	return &domain.Budget{
		ID:         b.ID,
		UserID:     pgToUUID(b.UserID),
		CategoryID: pgInt4ToInt32Ptr(b.CategoryID),
		Month:      pgDateToTime(b.Month),
		Amount:     pgNumericToDecimal(b.Amount),
		CreatedAt:  b.CreatedAt.Time,
		UpdatedAt:  b.UpdatedAt.Time,
	}
}
