package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ReceiptHandler handles receipt image HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// receiptError maps receipt failures to responses; action names the operation in logs
func receiptError(c echo.Context, err error, userID uuid.UUID, action string) error {
	switch {
	case errors.Is(err, service.ErrReceiptStorageNotConfigured):
		return NewServiceUnavailableError(c, "Receipts are disabled (storage not configured)")
	case errors.Is(err, domain.ErrEntryNotFound):
		return NewNotFoundError(c, "Entry not found")
	case errors.Is(err, domain.ErrReceiptNotFound):
		return NewNotFoundError(c, "Receipt not found")
	case errors.Is(err, service.ErrReceiptTooLarge),
		errors.Is(err, service.ErrInvalidReceiptFormat),
		errors.Is(err, service.ErrReceiptTooSmall),
		errors.Is(err, service.ErrInvalidReceiptData):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: err.Error()},
		})
	}
	log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}

// UploadReceipt handles POST /api/v1/entries/:id/receipt
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	// If storage isn't configured, don't read the upload at all
	if !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipts are disabled (storage not configured)")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	// One byte past the limit is enough to reject oversized files
	data, err := io.ReadAll(io.LimitReader(src, service.MaxReceiptSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	urls, err := h.receiptService.Upload(c.Request().Context(), userID, int32(id), data, file.Filename)
	if err != nil {
		return receiptError(c, err, userID, "upload receipt")
	}

	log.Info().Str("user_id", userID.String()).Int("entry_id", id).Msg("Receipt uploaded")
	return c.JSON(http.StatusCreated, urls)
}

// GetReceipt handles GET /api/v1/entries/:id/receipt
func (h *ReceiptHandler) GetReceipt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	urls, err := h.receiptService.Get(c.Request().Context(), userID, int32(id))
	if err != nil {
		return receiptError(c, err, userID, "get receipt")
	}
	return c.JSON(http.StatusOK, urls)
}

// DeleteReceipt handles DELETE /api/v1/entries/:id/receipt
func (h *ReceiptHandler) DeleteReceipt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	if err := h.receiptService.Delete(c.Request().Context(), userID, int32(id)); err != nil {
		return receiptError(c, err, userID, "delete receipt")
	}
	return c.NoContent(http.StatusNoContent)
}
