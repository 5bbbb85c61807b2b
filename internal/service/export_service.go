package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Entries"

// ExportHeader is the column row shared by every export format
var ExportHeader = []string{"Date", "Title", "Category", "Type", "Amount"}

// ExportService renders filtered entries as downloadable files
type ExportService struct {
	entries *EntryService
}

// NewExportService creates a new ExportService
func NewExportService(entries *EntryService) *ExportService {
	return &ExportService{entries: entries}
}

// ExportCSV writes the user's entries matching filters to w, newest first
func (s *ExportService) ExportCSV(ctx context.Context, w io.Writer, userID uuid.UUID, filters domain.EntryFilters) error {
	rows, err := s.entries.ExportRows(ctx, userID, filters)
	if err != nil {
		return err
	}
	return WriteEntriesCSV(w, rows)
}

// ExportXLSX writes the same rows as ExportCSV as a single-sheet workbook
func (s *ExportService) ExportXLSX(ctx context.Context, w io.Writer, userID uuid.UUID, filters domain.EntryFilters) error {
	rows, err := s.entries.ExportRows(ctx, userID, filters)
	if err != nil {
		return err
	}
	return WriteEntriesXLSX(w, rows)
}

func exportRecord(e *domain.Entry) []string {
	category := ""
	if e.CategoryName != nil {
		category = *e.CategoryName
	}
	return []string{
		e.Date.Format(domain.DateLayout),
		e.Title,
		category,
		e.Type.Label(),
		e.Amount.StringFixed(2),
	}
}

// WriteEntriesCSV writes the header and one record per entry in the given order
func WriteEntriesCSV(w io.Writer, entries []*domain.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(exportRecord(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEntriesXLSX writes the entries as a workbook with a numeric Amount column
func WriteEntriesXLSX(w io.Writer, entries []*domain.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheetName, "A1", &ExportHeader); err != nil {
		return err
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}

	for i, e := range entries {
		record := exportRecord(e)
		row := []interface{}{record[0], record[1], record[2], record[3], e.Amount.Round(2).InexactFloat64()}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return err
		}
	}

	if len(entries) > 0 {
		last := fmt.Sprintf("E%d", len(entries)+1)
		if err := f.SetCellStyle(exportSheetName, "E2", last, amountStyle); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(exportSheetName, "B", "C", 24); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
