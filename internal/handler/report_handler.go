package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/pennywise/pennywise-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReportHandler handles aggregated report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CategorySummaryResponse is one category row of the monthly report
type CategorySummaryResponse struct {
	CategoryID *int32  `json:"categoryId"`
	Name       string  `json:"name"`
	Income     string  `json:"income"`
	Expense    string  `json:"expense"`
	Budget     *string `json:"budget"`
	Remaining  *string `json:"remaining"`
	Over       bool    `json:"over"`
}

// MonthlySummaryResponse represents the monthly report
type MonthlySummaryResponse struct {
	MonthStart       string                    `json:"monthStart"`
	WindowEnd        string                    `json:"windowEnd"`
	IncomeTotal      string                    `json:"incomeTotal"`
	ExpenseTotal     string                    `json:"expenseTotal"`
	NetBalance       string                    `json:"netBalance"`
	TransactionCount int64                     `json:"transactionCount"`
	TotalBudget      *string                   `json:"totalBudget"`
	TotalRemaining   *string                   `json:"totalRemaining"`
	Over             bool                      `json:"over"`
	PerCategory      []CategorySummaryResponse `json:"perCategory"`
}

// GetMonthly handles GET /api/v1/reports/monthly.
// Without year and month query parameters the current month is reported.
func (h *ReportHandler) GetMonthly(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var (
		summary *domain.MonthlySummary
		err     error
	)
	yearParam, monthParam := c.QueryParam("year"), c.QueryParam("month")
	if yearParam == "" && monthParam == "" {
		summary, err = h.reportService.CurrentMonth(c.Request().Context(), userID)
	} else {
		year, yerr := strconv.Atoi(yearParam)
		month, merr := strconv.Atoi(monthParam)
		if yerr != nil || merr != nil {
			return NewValidationError(c, "Invalid year or month", nil)
		}
		monthStart, perr := util.YearMonth(year, month)
		if perr != nil {
			return NewValidationError(c, "Invalid year or month", nil)
		}
		summary, err = h.reportService.AggregateMonth(c.Request().Context(), userID, monthStart)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Invalid month", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to aggregate month")
		return NewInternalError(c, "Failed to build report")
	}

	return c.JSON(http.StatusOK, toMonthlySummaryResponse(summary))
}

func fixed(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

func toMonthlySummaryResponse(s *domain.MonthlySummary) MonthlySummaryResponse {
	rows := make([]CategorySummaryResponse, len(s.PerCategory))
	for i, r := range s.PerCategory {
		rows[i] = CategorySummaryResponse{
			CategoryID: r.CategoryID,
			Name:       r.Name,
			Income:     r.Income.StringFixed(2),
			Expense:    r.Expense.StringFixed(2),
			Budget:     fixed(r.Budget),
			Remaining:  fixed(r.Remaining),
			Over:       r.Over,
		}
	}
	return MonthlySummaryResponse{
		MonthStart:       s.MonthStart.Format(domain.DateLayout),
		WindowEnd:        s.WindowEnd.Format(domain.DateLayout),
		IncomeTotal:      s.IncomeTotal.StringFixed(2),
		ExpenseTotal:     s.ExpenseTotal.StringFixed(2),
		NetBalance:       s.NetBalance.StringFixed(2),
		TransactionCount: s.TransactionCount,
		TotalBudget:      fixed(s.TotalBudget),
		TotalRemaining:   fixed(s.TotalRemaining),
		Over:             s.Over,
		PerCategory:      rows,
	}
}
