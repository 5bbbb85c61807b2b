package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/pennywise/pennywise-backend/internal/testutil"
)

type budgetHandlerFixture struct {
	handler *BudgetHandler
	budgets *testutil.MockBudgetRepository
	userID  uuid.UUID
}

func newBudgetHandlerFixture() *budgetHandlerFixture {
	budgets := testutil.NewMockBudgetRepository()
	categories := testutil.NewMockCategoryRepository()
	userID := uuid.New()
	categories.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Food"})
	categories.AddCategory(&domain.Category{ID: 2, UserID: userID, Name: "Transport"})
	return &budgetHandlerFixture{
		handler: NewBudgetHandler(service.NewBudgetService(budgets, categories)),
		budgets: budgets,
		userID:  userID,
	}
}

func (f *budgetHandlerFixture) set(t *testing.T, year, month, body string) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := newRequest(echo.New(), http.MethodPut, "/api/v1/budgets/"+year+"/"+month, body, f.userID)
	c.SetParamNames("year", "month")
	c.SetParamValues(year, month)
	if err := f.handler.SetBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

func TestSetBudget_CategoryExceedsTotal(t *testing.T) {
	f := newBudgetHandlerFixture()

	if rec := f.set(t, "2024", "5", `{"amount":"1000.00"}`); rec.Code != http.StatusOK {
		t.Fatalf("Expected total to be set, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := f.set(t, "2024", "5", `{"categoryId":1,"amount":500}`); rec.Code != http.StatusOK {
		t.Fatalf("Expected Food budget to be set, got %d", rec.Code)
	}

	rec := f.set(t, "2024", "5", `{"categoryId":2,"amount":"600.00"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d", rec.Code)
	}
	problem := decodeProblem(t, rec)
	if !strings.Contains(problem.Detail, "cannot exceed your total budget") {
		t.Errorf("Expected consistency message, got %q", problem.Detail)
	}
}

func TestSetBudget_Validation(t *testing.T) {
	f := newBudgetHandlerFixture()

	tests := []struct {
		name        string
		year, month string
		body        string
	}{
		{"month out of range", "2024", "13", `{"amount":"10"}`},
		{"missing amount", "2024", "5", `{}`},
		{"bad amount", "2024", "5", `{"amount":"ten"}`},
		{"zero amount", "2024", "5", `{"amount":"0.00"}`},
		{"tiny exponent", "2024", "5", `{"amount":"1e-5000000"}`},
		{"huge exponent", "2024", "5", `{"amount":1e5000000}`},
		{"foreign category", "2024", "5", `{"categoryId":99,"amount":"10"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := f.set(t, tt.year, tt.month, tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetBudgets(t *testing.T) {
	f := newBudgetHandlerFixture()
	f.set(t, "2024", "5", `{"amount":"1000"}`)
	f.set(t, "2024", "5", `{"categoryId":1,"amount":"250.5"}`)

	c, rec := newRequest(echo.New(), http.MethodGet, "/api/v1/budgets/2024/5", "", f.userID)
	c.SetParamNames("year", "month")
	c.SetParamValues("2024", "5")
	if err := f.handler.GetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 budgets, got %d", len(response))
	}
	if !response[0].IsTotal || response[0].Amount != "1000.00" {
		t.Errorf("Expected total first, got %+v", response[0])
	}
	if response[1].Amount != "250.50" || response[1].Month != "2024-05-01" {
		t.Errorf("Unexpected category budget %+v", response[1])
	}
}

func TestDeleteBudget_Unknown(t *testing.T) {
	f := newBudgetHandlerFixture()

	c, rec := newRequest(echo.New(), http.MethodDelete, "/api/v1/budgets/42", "", f.userID)
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := f.handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
