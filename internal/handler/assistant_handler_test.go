package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/llm"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/pennywise/pennywise-backend/internal/testutil"
)

type stubCompleter struct {
	answer string
	err    error
	calls  int
}

func (s *stubCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.answer, s.err
}

func newAssistantHandler(completer llm.Completer) *AssistantHandler {
	entries := testutil.NewMockEntryRepository()
	categories := testutil.NewMockCategoryRepository()
	budgets := testutil.NewMockBudgetRepository()
	validator := service.NewEntryValidator(entries, categories, time.UTC)
	svc := service.NewAssistantService(
		service.NewReportService(entries, budgets, time.UTC),
		service.NewEntryService(entries, validator, nil),
		completer,
		time.UTC,
	)
	return NewAssistantHandler(svc)
}

func queryAssistant(t *testing.T, h *AssistantHandler, body string) (int, AssistantErrorResponse, AssistantQueryResponse) {
	t.Helper()
	c, rec := newRequest(echo.New(), http.MethodPost, "/api/v1/assistant/query", body, uuid.New())
	if err := h.Query(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var errBody AssistantErrorResponse
	var okBody AssistantQueryResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &okBody); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
	} else if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("Failed to unmarshal error: %v", err)
	}
	return rec.Code, errBody, okBody
}

func TestAssistantQuery_Success(t *testing.T) {
	completer := &stubCompleter{answer: "You spent 12.50 on food."}
	h := newAssistantHandler(completer)

	code, _, body := queryAssistant(t, h, `{"question":"How much did I spend on food?"}`)
	if code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", code)
	}
	if body.Response != "You spent 12.50 on food." {
		t.Errorf("Unexpected response %q", body.Response)
	}
	if completer.calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", completer.calls)
	}
}

func TestAssistantQuery_Errors(t *testing.T) {
	tests := []struct {
		name      string
		completer llm.Completer
		body      string
		status    int
	}{
		{"empty question", &stubCompleter{answer: "x"}, `{"question":"   "}`, http.StatusBadRequest},
		{"too long", &stubCompleter{answer: "x"}, `{"question":"` + strings.Repeat("a", 1001) + `"}`, http.StatusBadRequest},
		{"malformed json", &stubCompleter{answer: "x"}, `{"question":`, http.StatusBadRequest},
		{"upstream failure", &stubCompleter{err: errors.New("boom")}, `{"question":"hi"}`, http.StatusInternalServerError},
		{"not configured", nil, `{"question":"hi"}`, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, errBody, _ := queryAssistant(t, newAssistantHandler(tt.completer), tt.body)
			if code != tt.status {
				t.Fatalf("Expected status %d, got %d", tt.status, code)
			}
			if errBody.Error == "" {
				t.Error("Expected an error message")
			}
		})
	}
}

func TestAssistantQuery_EmptyQuestionSkipsUpstream(t *testing.T) {
	completer := &stubCompleter{answer: "x"}
	queryAssistant(t, newAssistantHandler(completer), `{"question":""}`)
	if completer.calls != 0 {
		t.Errorf("Expected no upstream call, got %d", completer.calls)
	}
}
