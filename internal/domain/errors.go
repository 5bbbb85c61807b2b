package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUserNotFound  = errors.New("user not found")
	ErrNameRequired  = errors.New("name is required")
	ErrNameTooLong   = errors.New("name exceeds maximum length")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrStoreConflict = errors.New("conflicting concurrent write, please retry")

	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")

	ErrEntryNotFound  = errors.New("entry not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	ErrBudgetNotFound       = errors.New("budget not found")
	ErrBudgetExceedsTotal   = errors.New("the sum of all category budgets cannot exceed your total budget")
	ErrTotalBelowCategories = errors.New("total budget cannot be less than the sum of category budgets")

	ErrReceiptNotFound = errors.New("receipt not found")

	ErrAssistantDisabled = errors.New("assistant is not configured")
	ErrAssistantFailed   = errors.New("assistant could not answer the question")
)

// Validation constants
const (
	MaxCategoryNameLength = 50
	MaxEntryTitleLength   = 100
	MaxEntryNotesLength   = 1000
	MaxQuestionLength     = 1000
)

// MaxAmount is the largest value a numeric(10,2) column can hold
var MaxAmount = decimal.RequireFromString("99999999.99")

// FieldError is a validation failure tied to a single input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects per-field failures; it is returned as a single error
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match ValidationErrors with errors.Is(err, ErrInvalidInput)
func (v ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}

// Has reports whether a failure was recorded for field
func (v ValidationErrors) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// DuplicateEntryError is the form-level failure for a repeated (title, date, category)
type DuplicateEntryError struct {
	Title    string
	Date     time.Time
	Category string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("an entry titled %q already exists for %s in %s",
		e.Title, e.Date.Format(DateLayout), e.Category)
}

func (e *DuplicateEntryError) Unwrap() error {
	return ErrDuplicateEntry
}

// BudgetConsistencyError reports a breach of the category-sum vs total budget invariant
type BudgetConsistencyError struct {
	Kind        error
	TotalBudget decimal.Decimal
	CategorySum decimal.Decimal
	Proposed    decimal.Decimal
}

func (e *BudgetConsistencyError) Error() string {
	return fmt.Sprintf("%s (total budget %s, category budgets %s, requested %s)",
		e.Kind.Error(), e.TotalBudget.StringFixed(2), e.CategorySum.StringFixed(2), e.Proposed.StringFixed(2))
}

func (e *BudgetConsistencyError) Unwrap() error {
	return e.Kind
}
