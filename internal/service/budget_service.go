package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/util"
	"github.com/pennywise/pennywise-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetService handles monthly total and category budgets
type BudgetService struct {
	budgetRepo     domain.BudgetRepository
	categoryRepo   domain.CategoryRepository
	eventPublisher websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BudgetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *BudgetService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// SetBudgetInput is a request to set the total (CategoryID nil) or a category budget
type SetBudgetInput struct {
	Month      time.Time
	CategoryID *int32
	Amount     decimal.Decimal
}

// GetBudgets returns the budgets of a month
func (s *BudgetService) GetBudgets(ctx context.Context, userID uuid.UUID, month time.Time) ([]*domain.Budget, error) {
	if !util.IsMonthStart(month) {
		return nil, domain.ErrInvalidMonth
	}
	return s.budgetRepo.GetByMonth(ctx, userID, month)
}

// SetBudget creates or replaces a budget, keeping category budgets within the total
func (s *BudgetService) SetBudget(ctx context.Context, userID uuid.UUID, input SetBudgetInput) (*domain.Budget, error) {
	if !util.IsMonthStart(input.Month) {
		return nil, domain.ErrInvalidMonth
	}
	if fe := budgetAmountRule(input.Amount); fe != nil {
		return nil, domain.ValidationErrors{*fe}
	}

	budget := &domain.Budget{
		UserID:     userID,
		CategoryID: input.CategoryID,
		Month:      input.Month,
		Amount:     input.Amount,
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, userID, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		budget.CategoryName = &category.Name
	}

	saved, err := s.budgetRepo.UpsertChecked(ctx, budget, func(existing []*domain.Budget) error {
		var replacingID *int32
		for _, b := range existing {
			if sameCategory(b.CategoryID, input.CategoryID) {
				id := b.ID
				replacingID = &id
				break
			}
		}
		return CheckBudgetConsistency(existing, input.CategoryID, input.Amount, replacingID)
	})
	if err != nil {
		var cerr *domain.BudgetConsistencyError
		if errors.As(err, &cerr) {
			log.Info().
				Str("user_id", userID.String()).
				Str("month", input.Month.Format(domain.DateLayout)).
				Str("total", cerr.TotalBudget.StringFixed(2)).
				Str("category_sum", cerr.CategorySum.StringFixed(2)).
				Str("proposed", cerr.Proposed.StringFixed(2)).
				Msg("Budget write rejected")
		}
		return nil, err
	}

	s.publishEvent(userID, websocket.BudgetUpdated(saved))
	return saved, nil
}

// DeleteBudget removes a budget; removing either side never breaks consistency
func (s *BudgetService) DeleteBudget(ctx context.Context, userID uuid.UUID, id int32) error {
	if err := s.budgetRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.BudgetDeleted(map[string]interface{}{"id": id}))
	return nil
}

func budgetAmountRule(amount decimal.Decimal) *domain.FieldError {
	in := domain.EntryInput{Amount: &amount}
	return amountRule(&in, time.Time{})
}

func sameCategory(a, b *int32) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
