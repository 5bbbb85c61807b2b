package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/pennywise/pennywise-backend/internal/testutil"
	"github.com/pennywise/pennywise-backend/internal/util"
)

type entryHandlerFixture struct {
	handler *EntryHandler
	entries *testutil.MockEntryRepository
	userID  uuid.UUID
	today   string
}

func newEntryHandlerFixture() *entryHandlerFixture {
	entries := testutil.NewMockEntryRepository()
	categories := testutil.NewMockCategoryRepository()
	userID := uuid.New()
	categories.AddCategory(&domain.Category{ID: 1, UserID: userID, Name: "Food"})
	categories.AddCategory(&domain.Category{ID: 2, UserID: userID, Name: "Transport"})

	validator := service.NewEntryValidator(entries, categories, time.UTC)
	return &entryHandlerFixture{
		handler: NewEntryHandler(service.NewEntryService(entries, validator, nil)),
		entries: entries,
		userID:  userID,
		today:   util.Today(time.Now(), time.UTC).Format(domain.DateLayout),
	}
}

func (f *entryHandlerFixture) create(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := newRequest(echo.New(), http.MethodPost, "/api/v1/entries", body, f.userID)
	if err := f.handler.CreateEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

func entryBody(title, amount, date string, categoryID int) string {
	return fmt.Sprintf(`{"title":%q,"amount":%s,"date":%q,"type":"expense","categoryId":%d}`, title, amount, date, categoryID)
}

func TestCreateEntry_Success(t *testing.T) {
	f := newEntryHandlerFixture()

	rec := f.create(t, entryBody("Groceries", `"42.5"`, f.today, 1))
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "42.50" {
		t.Errorf("Expected amount 42.50, got %s", response.Amount)
	}
	if response.CategoryName == nil || *response.CategoryName != "Food" {
		t.Errorf("Expected category Food, got %v", response.CategoryName)
	}
}

func TestCreateEntry_ValidationCollectsFields(t *testing.T) {
	f := newEntryHandlerFixture()

	rec := f.create(t, `{"title":"","amount":"abc","date":"2024-13-01","type":"gift"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}

	problem := decodeProblem(t, rec)
	messages := map[string]string{}
	for _, fe := range problem.Errors {
		messages[fe.Field] = fe.Message
	}
	for _, field := range []string{"title", "amount", "date", "type", "category"} {
		if _, ok := messages[field]; !ok {
			t.Errorf("Expected an error for %s, got %+v", field, problem.Errors)
		}
	}
	if messages["amount"] != "Enter a valid amount." {
		t.Errorf("Expected parse message for amount, got %q", messages["amount"])
	}
	if len(f.entries.Entries) != 0 {
		t.Error("Expected nothing stored")
	}
}

func TestCreateEntry_DuplicateIsConflict(t *testing.T) {
	f := newEntryHandlerFixture()

	if rec := f.create(t, entryBody("Groceries", "10", f.today, 1)); rec.Code != http.StatusCreated {
		t.Fatalf("Expected first create to succeed, got %d", rec.Code)
	}
	rec := f.create(t, entryBody("groceries", "12", f.today, 1))
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
	if rec := f.create(t, entryBody("Groceries", "10", f.today, 2)); rec.Code != http.StatusCreated {
		t.Errorf("Expected other category to succeed, got %d", rec.Code)
	}
}

func TestCreateEntry_FutureDateRejected(t *testing.T) {
	f := newEntryHandlerFixture()
	tomorrow := util.Today(time.Now(), time.UTC).AddDate(0, 0, 1).Format(domain.DateLayout)

	rec := f.create(t, entryBody("Later", "10", tomorrow, 1))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateEntry_ForeignIsNotFound(t *testing.T) {
	f := newEntryHandlerFixture()
	f.create(t, entryBody("Groceries", "10", f.today, 1))

	c, rec := newRequest(echo.New(), http.MethodPut, "/api/v1/entries/1", entryBody("Changed", "10", f.today, 1), uuid.New())
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := f.handler.UpdateEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestListEntries_Filters(t *testing.T) {
	f := newEntryHandlerFixture()
	f.create(t, entryBody("Groceries", "10", f.today, 1))
	f.create(t, entryBody("Bus", "3", f.today, 2))

	c, rec := newRequest(echo.New(), http.MethodGet, "/api/v1/entries?category=2&pageSize=5", "", f.userID)
	if err := f.handler.ListEntries(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var page PaginatedEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].Title != "Bus" {
		t.Errorf("Expected only Bus, got %+v", page.Data)
	}
	if page.PageSize != 5 {
		t.Errorf("Expected page size 5, got %d", page.PageSize)
	}
}

func TestListEntries_BadQuery(t *testing.T) {
	f := newEntryHandlerFixture()

	tests := []string{
		"/api/v1/entries?from=yesterday",
		"/api/v1/entries?type=gift",
		"/api/v1/entries?from=2024-05-10&to=2024-05-01",
		"/api/v1/entries?page=x",
	}
	for _, target := range tests {
		c, rec := newRequest(echo.New(), http.MethodGet, target, "", f.userID)
		if err := f.handler.ListEntries(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", target, rec.Code)
		}
	}
}

func TestDeleteEntry(t *testing.T) {
	f := newEntryHandlerFixture()
	f.create(t, entryBody("Groceries", "10", f.today, 1))

	c, rec := newRequest(echo.New(), http.MethodDelete, "/api/v1/entries/1", "", f.userID)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := f.handler.DeleteEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(f.entries.Entries) != 0 {
		t.Error("Expected entry removed")
	}
}
