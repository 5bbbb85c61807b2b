package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/pennywise/pennywise-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles monthly budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest sets the total budget when CategoryID is omitted
type SetBudgetRequest struct {
	CategoryID *int32          `json:"categoryId"`
	Amount     json.RawMessage `json:"amount"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID           int32   `json:"id"`
	Month        string  `json:"month"`
	CategoryID   *int32  `json:"categoryId"`
	CategoryName *string `json:"categoryName"`
	IsTotal      bool    `json:"isTotal"`
	Amount       string  `json:"amount"`
	UpdatedAt    string  `json:"updatedAt"`
}

// budgetError maps budget failures to responses; action names the operation in logs
func budgetError(c echo.Context, err error, userID uuid.UUID, action string) error {
	var verrs domain.ValidationErrors
	var cerr *domain.BudgetConsistencyError
	switch {
	case errors.As(err, &verrs):
		return NewFieldValidationError(c, verrs)
	case errors.As(err, &cerr):
		return NewConflictError(c, cerr.Error())
	case errors.Is(err, domain.ErrInvalidMonth):
		return NewValidationError(c, "Invalid month", nil)
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Select a valid category."},
		})
	case errors.Is(err, domain.ErrBudgetNotFound):
		return NewNotFoundError(c, "Budget not found")
	case errors.Is(err, domain.ErrStoreConflict):
		return NewConflictError(c, err.Error())
	}
	log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}

// parseYearMonth reads the :year and :month path parameters
func parseYearMonth(c echo.Context) (time.Time, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return time.Time{}, domain.ErrInvalidMonth
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return time.Time{}, domain.ErrInvalidMonth
	}
	monthStart, err := util.YearMonth(year, month)
	if err != nil {
		return time.Time{}, domain.ErrInvalidMonth
	}
	return monthStart, nil
}

// GetBudgets handles GET /api/v1/budgets/:year/:month
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	budgets, err := h.budgetService.GetBudgets(c.Request().Context(), userID, month)
	if err != nil {
		return budgetError(c, err, userID, "get budgets")
	}

	response := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		response[i] = toBudgetResponse(b)
	}
	return c.JSON(http.StatusOK, response)
}

// SetBudget handles PUT /api/v1/budgets/:year/:month
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	raw := strings.Trim(strings.TrimSpace(string(req.Amount)), `"`)
	if raw == "" || raw == "null" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: service.FieldAmount, Message: "This field is required."},
		})
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: service.FieldAmount, Message: "Enter a valid amount."},
		})
	}

	budget, err := h.budgetService.SetBudget(c.Request().Context(), userID, service.SetBudgetInput{
		Month:      month,
		CategoryID: req.CategoryID,
		Amount:     amount,
	})
	if err != nil {
		return budgetError(c, err, userID, "set budget")
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("month", month.Format(domain.DateLayout)).
		Bool("total", budget.IsTotal()).
		Str("amount", budget.Amount.StringFixed(2)).
		Msg("Budget set")
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(c.Request().Context(), userID, int32(id)); err != nil {
		return budgetError(c, err, userID, "delete budget")
	}
	return c.NoContent(http.StatusNoContent)
}

func toBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:           b.ID,
		Month:        b.Month.Format(domain.DateLayout),
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		IsTotal:      b.IsTotal(),
		Amount:       b.Amount.StringFixed(2),
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339),
	}
}
