package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/pennywise/pennywise-backend/internal/testutil"
)

func newCategoryHandler() (*CategoryHandler, *testutil.MockCategoryRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	return NewCategoryHandler(service.NewCategoryService(categoryRepo, testutil.NewMockEntryRepository(), nil)), categoryRepo
}

func TestCreateCategory_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newCategoryHandler()

	c, rec := newRequest(e, http.MethodPost, "/api/v1/categories", `{"name":" Groceries "}`, uuid.New())
	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name != "Groceries" {
		t.Errorf("Expected name 'Groceries', got %q", response.Name)
	}
}

func TestCreateCategory_Errors(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"empty name", `{"name":"  "}`, http.StatusBadRequest},
		{"too long", `{"name":"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}`, http.StatusBadRequest},
		{"duplicate ignoring case", `{"name":"FOOD"}`, http.StatusConflict},
		{"malformed body", `{"name":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler, categoryRepo := newCategoryHandler()
			categoryRepo.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Food"})

			c, rec := newRequest(e, http.MethodPost, "/api/v1/categories", tt.body, userID)
			if err := handler.CreateCategory(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateCategory_ForeignIsNotFound(t *testing.T) {
	e := echo.New()
	handler, categoryRepo := newCategoryHandler()
	categoryRepo.AddCategory(&domain.Category{ID: 1, UserID: uuid.New(), Name: "Food"})

	c, rec := newRequest(e, http.MethodPut, "/api/v1/categories/1", `{"name":"Meals"}`, uuid.New())
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.UpdateCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteCategory(t *testing.T) {
	e := echo.New()
	handler, categoryRepo := newCategoryHandler()
	userID := uuid.New()
	categoryRepo.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Food"})

	c, rec := newRequest(e, http.MethodDelete, "/api/v1/categories/1", "", userID)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.DeleteCategory(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}

	c, rec = newRequest(e, http.MethodDelete, "/api/v1/categories/abc", "", userID)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	_ = handler.DeleteCategory(c)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad id, got %d", rec.Code)
	}
}

func TestGetCategories_OnlyOwn(t *testing.T) {
	e := echo.New()
	handler, categoryRepo := newCategoryHandler()
	userID := uuid.New()
	categoryRepo.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Food"})
	categoryRepo.AddCategory(&domain.Category{ID: 2, UserID: uuid.New(), Name: "Other"})

	c, rec := newRequest(e, http.MethodGet, "/api/v1/categories", "", userID)
	if err := handler.GetCategories(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 || response[0].Name != "Food" {
		t.Errorf("Expected only Food, got %+v", response)
	}
}
