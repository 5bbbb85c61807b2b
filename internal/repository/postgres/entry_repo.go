package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise/pennywise-backend/db/sqlc"
	"github.com/pennywise/pennywise-backend/internal/domain"
)

// EntryRepository implements domain.EntryRepository using PostgreSQL
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create inserts a validated entry
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	amount, err := decimalToPgNumeric(entry.Amount)
	if err != nil {
		return nil, err
	}

	created, err := r.queries.CreateEntry(ctx, sqlc.CreateEntryParams{
		UserID:     uuidToPg(entry.UserID),
		CategoryID: int32PtrToPgInt4(entry.CategoryID),
		Title:      entry.Title,
		Amount:     amount,
		Date:       timeToPgDate(entry.Date),
		Type:       string(entry.Type),
		Notes:      entry.Notes,
	})
	if err != nil {
		return nil, mapEntryWriteError(err)
	}
	result := sqlcEntryToDomain(created)
	result.CategoryName = entry.CategoryName
	return result, nil
}

// GetByID retrieves an entry owned by userID
func (r *EntryRepository) GetByID(ctx context.Context, userID uuid.UUID, id int32) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, sqlc.GetEntryByIDParams{
		UserID: uuidToPg(userID),
		ID:     id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	entry := sqlcEntryToDomain(sqlc.Entry{
		ID:         row.ID,
		UserID:     row.UserID,
		CategoryID: row.CategoryID,
		Title:      row.Title,
		Amount:     row.Amount,
		Date:       row.Date,
		Type:       row.Type,
		Notes:      row.Notes,
		ReceiptKey: row.ReceiptKey,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	})
	entry.CategoryName = pgTextToStringPtr(row.CategoryName)
	return entry, nil
}

// List retrieves entries matching filters, newest first
func (r *EntryRepository) List(ctx context.Context, userID uuid.UUID, filters *domain.EntryFilters) (*domain.PaginatedEntries, error) {
	if filters == nil {
		filters = &domain.EntryFilters{}
	}

	var entryType pgtype.Text
	if filters.Type != nil {
		entryType = pgtype.Text{String: string(*filters.Type), Valid: true}
	}
	var search pgtype.Text
	if filters.Search != "" {
		search = pgtype.Text{String: filters.Search, Valid: true}
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	var limit pgtype.Int4
	var offset int32
	if filters.PageSize > 0 {
		limit = pgtype.Int4{Int32: filters.PageSize, Valid: true}
		offset = (page - 1) * filters.PageSize
	}

	total, err := r.queries.CountEntries(ctx, sqlc.CountEntriesParams{
		UserID:     uuidToPg(userID),
		FromDate:   timePtrToPgDate(filters.From),
		ToDate:     timePtrToPgDate(filters.To),
		EntryType:  entryType,
		CategoryID: int32PtrToPgInt4(filters.CategoryID),
		Search:     search,
	})
	if err != nil {
		return nil, err
	}

	rows, err := r.queries.ListEntries(ctx, sqlc.ListEntriesParams{
		UserID:     uuidToPg(userID),
		FromDate:   timePtrToPgDate(filters.From),
		ToDate:     timePtrToPgDate(filters.To),
		EntryType:  entryType,
		CategoryID: int32PtrToPgInt4(filters.CategoryID),
		Search:     search,
		RowLimit:   limit,
		RowOffset:  offset,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, len(rows))
	for i, row := range rows {
		entry := sqlcEntryToDomain(sqlc.Entry{
			ID:         row.ID,
			UserID:     row.UserID,
			CategoryID: row.CategoryID,
			Title:      row.Title,
			Amount:     row.Amount,
			Date:       row.Date,
			Type:       row.Type,
			Notes:      row.Notes,
			ReceiptKey: row.ReceiptKey,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		})
		entry.CategoryName = pgTextToStringPtr(row.CategoryName)
		entries[i] = entry
	}

	pageSize := filters.PageSize
	totalPages := int32(1)
	if pageSize > 0 {
		totalPages = int32((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return &domain.PaginatedEntries{
		Data:       entries,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Update overwrites the editable fields of an entry
func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	amount, err := decimalToPgNumeric(entry.Amount)
	if err != nil {
		return nil, err
	}

	updated, err := r.queries.UpdateEntry(ctx, sqlc.UpdateEntryParams{
		UserID:     uuidToPg(entry.UserID),
		ID:         entry.ID,
		CategoryID: int32PtrToPgInt4(entry.CategoryID),
		Title:      entry.Title,
		Amount:     amount,
		Date:       timeToPgDate(entry.Date),
		Type:       string(entry.Type),
		Notes:      entry.Notes,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, mapEntryWriteError(err)
	}
	result := sqlcEntryToDomain(updated)
	result.CategoryName = entry.CategoryName
	return result, nil
}

// Delete removes an entry owned by userID
func (r *EntryRepository) Delete(ctx context.Context, userID uuid.UUID, id int32) error {
	rows, err := r.queries.DeleteEntry(ctx, sqlc.DeleteEntryParams{
		UserID: uuidToPg(userID),
		ID:     id,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// FindDuplicateIDs returns ids of entries with the same case-insensitive title, date and category
func (r *EntryRepository) FindDuplicateIDs(ctx context.Context, userID uuid.UUID, title string, date time.Time, categoryID *int32) ([]int32, error) {
	return r.queries.FindDuplicateEntryIDs(ctx, sqlc.FindDuplicateEntryIDsParams{
		UserID:     uuidToPg(userID),
		Title:      title,
		EntryDate:  timeToPgDate(date),
		CategoryID: int32PtrToPgInt4(categoryID),
	})
}

// SetReceiptKey attaches (or with nil clears) the receipt object key of an entry
func (r *EntryRepository) SetReceiptKey(ctx context.Context, userID uuid.UUID, id int32, key *string) error {
	return r.queries.SetEntryReceipt(ctx, sqlc.SetEntryReceiptParams{
		UserID:     uuidToPg(userID),
		ID:         id,
		ReceiptKey: stringPtrToPgText(key),
	})
}

// SumByCategory totals entries per (category, type) between from and to inclusive
func (r *EntryRepository) SumByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.CategoryTypeTotal, error) {
	rows, err := r.queries.SumEntriesByCategory(ctx, sqlc.SumEntriesByCategoryParams{
		UserID:   uuidToPg(userID),
		FromDate: timeToPgDate(from),
		ToDate:   timeToPgDate(to),
	})
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CategoryTypeTotal, len(rows))
	for i, row := range rows {
		name := domain.UncategorizedLabel
		if row.CategoryName.Valid {
			name = row.CategoryName.String
		}
		result[i] = &domain.CategoryTypeTotal{
			CategoryID:   pgInt4ToInt32Ptr(row.CategoryID),
			CategoryName: name,
			Type:         domain.EntryType(row.Type),
			Total:        pgNumericToDecimal(row.Total),
			Count:        row.EntryCount,
		}
	}
	return result, nil
}

// mapEntryWriteError translates constraint violations that slipped past validation
func mapEntryWriteError(err error) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation, pgCheckViolation:
		return domain.ErrStoreConflict
	case pgFKViolation:
		return domain.ErrCategoryNotFound
	}
	return err
}

func sqlcEntryToDomain(e sqlc.Entry) *domain.Entry {
	return &domain.Entry{
		ID:         e.ID,
		UserID:     pgToUUID(e.UserID),
		CategoryID: pgInt4ToInt32Ptr(e.CategoryID),
		Title:      e.Title,
		Amount:     pgNumericToDecimal(e.Amount),
		Date:       pgDateToTime(e.Date),
		Type:       domain.EntryType(e.Type),
		Notes:      e.Notes,
		ReceiptKey: pgTextToStringPtr(e.ReceiptKey),
		CreatedAt:  e.CreatedAt.Time,
		UpdatedAt:  e.UpdatedAt.Time,
	}
}
