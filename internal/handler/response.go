package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
)

// ProblemDetails is the RFC 7807 body of every API error
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError is one field-level failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const errorTypeBase = "https://pennywise.app/errors/"

// Problem types
const (
	ErrorTypeValidation         = errorTypeBase + "validation"
	ErrorTypeNotFound           = errorTypeBase + "not-found"
	ErrorTypeUnauthorized       = errorTypeBase + "unauthorized"
	ErrorTypeConflict           = errorTypeBase + "conflict"
	ErrorTypeInternal           = errorTypeBase + "internal"
	ErrorTypeServiceUnavailable = errorTypeBase + "service-unavailable"
)

var problemTypes = map[int]string{
	http.StatusBadRequest:          ErrorTypeValidation,
	http.StatusNotFound:            ErrorTypeNotFound,
	http.StatusUnauthorized:        ErrorTypeUnauthorized,
	http.StatusConflict:            ErrorTypeConflict,
	http.StatusInternalServerError: ErrorTypeInternal,
	http.StatusServiceUnavailable:  ErrorTypeServiceUnavailable,
}

func problem(c echo.Context, status int, detail string, errs []ValidationError) error {
	title := http.StatusText(status)
	if status == http.StatusBadRequest {
		title = "Validation Error"
	}
	return c.JSON(status, ProblemDetails{
		Type:     problemTypes[status],
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errs,
	})
}

// NewValidationError answers 400 with optional per-field errors
func NewValidationError(c echo.Context, detail string, errs []ValidationError) error {
	return problem(c, http.StatusBadRequest, detail, errs)
}

// NewFieldValidationError renders per-field failures from the service layer
func NewFieldValidationError(c echo.Context, verrs domain.ValidationErrors) error {
	errs := make([]ValidationError, len(verrs))
	for i, fe := range verrs {
		errs[i] = ValidationError{Field: fe.Field, Message: fe.Message}
	}
	return problem(c, http.StatusBadRequest, "Validation failed", errs)
}

func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, detail, nil)
}

func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, detail, nil)
}

// NewConflictError reports a form-level failure such as a duplicate entry or
// a budget that would break the total
func NewConflictError(c echo.Context, detail string) error {
	return problem(c, http.StatusConflict, detail, nil)
}

func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, detail, nil)
}

func NewServiceUnavailableError(c echo.Context, detail string) error {
	return problem(c, http.StatusServiceUnavailable, detail, nil)
}
