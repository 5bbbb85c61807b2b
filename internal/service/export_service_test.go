package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func exportFixture(t *testing.T) (*ExportService, uuid.UUID) {
	t.Helper()
	entries := testutil.NewMockEntryRepository()
	userID := uuid.New()
	food := int32(1)
	foodName := "Food, Drinks"

	entries.AddEntry(&domain.Entry{
		UserID: userID, Title: "Salary", Amount: decimal.NewFromInt(3000),
		Date: *date(2024, 5, 1), Type: domain.EntryTypeIncome,
	})
	entries.AddEntry(&domain.Entry{
		UserID: userID, CategoryID: &food, CategoryName: &foodName, Title: "Lunch",
		Amount: decimal.RequireFromString("12.5"), Date: *date(2024, 5, 10), Type: domain.EntryTypeExpense,
	})
	entries.AddEntry(&domain.Entry{
		UserID: uuid.New(), Title: "Not mine", Amount: decimal.NewFromInt(1),
		Date: *date(2024, 5, 11), Type: domain.EntryTypeExpense,
	})

	validator := NewEntryValidator(entries, testutil.NewMockCategoryRepository(), nil)
	return NewExportService(NewEntryService(entries, validator, nil)), userID
}

func TestExportCSV(t *testing.T) {
	service, userID := exportFixture(t)
	var buf bytes.Buffer

	if err := service.ExportCSV(context.Background(), &buf, userID, domain.EntryFilters{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := "Date,Title,Category,Type,Amount\n" +
		"2024-05-10,Lunch,\"Food, Drinks\",Expense,12.50\n" +
		"2024-05-01,Salary,,Income,3000.00\n"
	if buf.String() != expected {
		t.Errorf("Unexpected CSV:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestExportCSV_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEntriesCSV(&buf, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if buf.String() != "Date,Title,Category,Type,Amount\n" {
		t.Errorf("Expected header only, got %q", buf.String())
	}
}

func TestExportCSV_InvalidFilters(t *testing.T) {
	service, userID := exportFixture(t)
	from, to := date(2024, 5, 10), date(2024, 5, 1)

	err := service.ExportCSV(context.Background(), &bytes.Buffer{}, userID, domain.EntryFilters{From: from, To: to})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestExportXLSX(t *testing.T) {
	service, userID := exportFixture(t)
	var buf bytes.Buffer

	if err := service.ExportXLSX(context.Background(), &buf, userID, domain.EntryFilters{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Expected readable workbook, got %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	if err != nil {
		t.Fatalf("Expected sheet %s, got %v", exportSheetName, err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[1][1] != "Lunch" || rows[1][2] != "Food, Drinks" || rows[1][3] != "Expense" {
		t.Errorf("Unexpected first data row: %v", rows[1])
	}
	if rows[2][0] != "2024-05-01" {
		t.Errorf("Expected ISO date, got %s", rows[2][0])
	}
}
