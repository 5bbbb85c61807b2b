package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler serves entry exports as file downloads
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type exportFunc func(ctx context.Context, w io.Writer, userID uuid.UUID, filters domain.EntryFilters) error

// ExportCSV handles GET /api/v1/exports/entries.csv
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	return h.export(c, h.exportService.ExportCSV, contentTypeCSV, "report.csv")
}

// ExportXLSX handles GET /api/v1/exports/entries.xlsx
func (h *ExportHandler) ExportXLSX(c echo.Context) error {
	return h.export(c, h.exportService.ExportXLSX, contentTypeXLSX, "report.xlsx")
}

// export renders into a buffer first so failures still produce a problem response
func (h *ExportHandler) export(c echo.Context, render exportFunc, contentType, filename string) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, parseErrs := parseEntryFilters(c)
	if len(parseErrs) > 0 {
		return NewFieldValidationError(c, parseErrs)
	}

	var buf bytes.Buffer
	if err := render(c.Request().Context(), &buf, userID, filters); err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			return NewFieldValidationError(c, verrs)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("file", filename).Msg("Failed to export entries")
		return NewInternalError(c, "Failed to export entries")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
