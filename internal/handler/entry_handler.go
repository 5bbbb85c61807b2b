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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// EntryHandler handles entry HTTP requests
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// EntryRequest represents the create and update entry request body.
// Amount accepts a JSON number or a numeric string.
type EntryRequest struct {
	Title      string          `json:"title"`
	Amount     json.RawMessage `json:"amount"`
	Date       string          `json:"date"`
	Type       string          `json:"type"`
	CategoryID *int32          `json:"categoryId"`
	Notes      string          `json:"notes"`
}

// EntryResponse represents an entry in API responses
type EntryResponse struct {
	ID           int32   `json:"id"`
	Title        string  `json:"title"`
	Amount       string  `json:"amount"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	CategoryID   *int32  `json:"categoryId"`
	CategoryName *string `json:"categoryName"`
	Notes        string  `json:"notes"`
	HasReceipt   bool    `json:"hasReceipt"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// PaginatedEntriesResponse represents a page of entries
type PaginatedEntriesResponse struct {
	Data       []EntryResponse `json:"data"`
	Page       int32           `json:"page"`
	PageSize   int32           `json:"pageSize"`
	TotalItems int64           `json:"totalItems"`
	TotalPages int32           `json:"totalPages"`
}

// toInput converts the body to a validator input. Unparseable values are left nil
// and reported through the returned field errors.
func (r *EntryRequest) toInput() (domain.EntryInput, domain.ValidationErrors) {
	input := domain.EntryInput{
		Title:      r.Title,
		Type:       domain.EntryType(strings.ToLower(strings.TrimSpace(r.Type))),
		CategoryID: r.CategoryID,
		Notes:      r.Notes,
	}
	var parseErrs domain.ValidationErrors

	raw := strings.Trim(strings.TrimSpace(string(r.Amount)), `"`)
	if raw != "" && raw != "null" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			parseErrs = append(parseErrs, domain.FieldError{Field: service.FieldAmount, Message: "Enter a valid amount."})
		} else {
			input.Amount = &amount
		}
	}

	if d := strings.TrimSpace(r.Date); d != "" {
		date, err := time.Parse(domain.DateLayout, d)
		if err != nil {
			parseErrs = append(parseErrs, domain.FieldError{Field: service.FieldDate, Message: "Enter a valid date (YYYY-MM-DD)."})
		} else {
			input.Date = &date
		}
	}

	return input, parseErrs
}

// mergeParseErrors replaces the generic message for fields that failed to parse
func mergeParseErrors(verrs, parseErrs domain.ValidationErrors) domain.ValidationErrors {
	if len(parseErrs) == 0 {
		return verrs
	}
	merged := make(domain.ValidationErrors, 0, len(verrs)+len(parseErrs))
	merged = append(merged, parseErrs...)
	for _, fe := range verrs {
		if !parseErrs.Has(fe.Field) {
			merged = append(merged, fe)
		}
	}
	return merged
}

// entryError maps entry failures to responses; action names the operation in logs
func entryError(c echo.Context, err error, parseErrs domain.ValidationErrors, userID uuid.UUID, action string) error {
	var verrs domain.ValidationErrors
	var dupErr *domain.DuplicateEntryError
	switch {
	case errors.As(err, &verrs):
		return NewFieldValidationError(c, mergeParseErrors(verrs, parseErrs))
	case errors.As(err, &dupErr):
		return NewConflictError(c, dupErr.Error())
	case errors.Is(err, domain.ErrEntryNotFound):
		return NewNotFoundError(c, "Entry not found")
	case errors.Is(err, domain.ErrStoreConflict):
		return NewConflictError(c, err.Error())
	}
	log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}

// CreateEntry handles POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, parseErrs := req.toInput()

	entry, err := h.entryService.CreateEntry(c.Request().Context(), userID, input)
	if err != nil {
		return entryError(c, err, parseErrs, userID, "create entry")
	}

	log.Info().Str("user_id", userID.String()).Int32("entry_id", entry.ID).Msg("Entry created")
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// GetEntry handles GET /api/v1/entries/:id
func (h *EntryHandler) GetEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	entry, err := h.entryService.GetEntry(c.Request().Context(), userID, int32(id))
	if err != nil {
		return entryError(c, err, nil, userID, "get entry")
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// ListEntries handles GET /api/v1/entries
func (h *EntryHandler) ListEntries(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, parseErrs := parseEntryFilters(c)
	if len(parseErrs) > 0 {
		return NewFieldValidationError(c, parseErrs)
	}

	page, err := h.entryService.ListEntries(c.Request().Context(), userID, filters)
	if err != nil {
		return entryError(c, err, nil, userID, "list entries")
	}

	data := make([]EntryResponse, len(page.Data))
	for i, e := range page.Data {
		data[i] = toEntryResponse(e)
	}
	return c.JSON(http.StatusOK, PaginatedEntriesResponse{
		Data:       data,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// UpdateEntry handles PUT /api/v1/entries/:id
func (h *EntryHandler) UpdateEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, parseErrs := req.toInput()

	entry, err := h.entryService.UpdateEntry(c.Request().Context(), userID, int32(id), input)
	if err != nil {
		return entryError(c, err, parseErrs, userID, "update entry")
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry handles DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	if err := h.entryService.DeleteEntry(c.Request().Context(), userID, int32(id)); err != nil {
		return entryError(c, err, nil, userID, "delete entry")
	}

	log.Info().Str("user_id", userID.String()).Int("entry_id", id).Msg("Entry deleted")
	return c.NoContent(http.StatusNoContent)
}

// parseEntryFilters reads from, to, type, category, q, page and pageSize query parameters
func parseEntryFilters(c echo.Context) (domain.EntryFilters, domain.ValidationErrors) {
	var filters domain.EntryFilters
	var errs domain.ValidationErrors

	parseDate := func(name string) *time.Time {
		v := c.QueryParam(name)
		if v == "" {
			return nil
		}
		d, err := time.Parse(domain.DateLayout, v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: name, Message: "Enter a valid date (YYYY-MM-DD)."})
			return nil
		}
		return &d
	}
	parseInt := func(name string) *int32 {
		v := c.QueryParam(name)
		if v == "" {
			return nil
		}
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: name, Message: "Must be a whole number."})
			return nil
		}
		n32 := int32(n)
		return &n32
	}

	filters.From = parseDate("from")
	filters.To = parseDate("to")
	if v := c.QueryParam("type"); v != "" {
		t := domain.EntryType(strings.ToLower(v))
		filters.Type = &t
	}
	filters.CategoryID = parseInt("category")
	filters.Search = strings.TrimSpace(c.QueryParam("q"))
	if p := parseInt("page"); p != nil {
		filters.Page = *p
	}
	if ps := parseInt("pageSize"); ps != nil {
		filters.PageSize = *ps
	}

	return filters, errs
}

func toEntryResponse(entry *domain.Entry) EntryResponse {
	return EntryResponse{
		ID:           entry.ID,
		Title:        entry.Title,
		Amount:       entry.Amount.StringFixed(2),
		Date:         entry.Date.Format(domain.DateLayout),
		Type:         string(entry.Type),
		CategoryID:   entry.CategoryID,
		CategoryName: entry.CategoryName,
		Notes:        entry.Notes,
		HasReceipt:   entry.ReceiptKey != nil,
		CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    entry.UpdatedAt.Format(time.RFC3339),
	}
}
