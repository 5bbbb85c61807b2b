package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO-8601 calendar date format used on the wire
const DateLayout = "2006-01-02"

type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// IsValid reports whether t is one of the two defined entry types
func (t EntryType) IsValid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// Label returns the human readable name used in exports
func (t EntryType) Label() string {
	switch t {
	case EntryTypeIncome:
		return "Income"
	case EntryTypeExpense:
		return "Expense"
	default:
		return string(t)
	}
}

type Entry struct {
	ID           int32           `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	CategoryID   *int32          `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Type         EntryType       `json:"type"`
	Notes        string          `json:"notes"`
	ReceiptKey   *string         `json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// EntryInput is the raw candidate entry before validation
type EntryInput struct {
	Title      string
	Amount     *decimal.Decimal
	Date       *time.Time
	Type       EntryType
	CategoryID *int32
	Notes      string
}

type EntryFilters struct {
	From       *time.Time
	To         *time.Time
	Type       *EntryType
	CategoryID *int32
	Search     string
	Page       int32
	// PageSize of zero means no limit
	PageSize int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedEntries struct {
	Data       []*Entry `json:"data"`
	Page       int32    `json:"page"`
	PageSize   int32    `json:"pageSize"`
	TotalItems int64    `json:"totalItems"`
	TotalPages int32    `json:"totalPages"`
}

// CategoryTypeTotal is a month-window sum for one (category, type) pair
type CategoryTypeTotal struct {
	CategoryID   *int32
	CategoryName string
	Type         EntryType
	Total        decimal.Decimal
	Count        int64
}

type EntryRepository interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int32) (*Entry, error)
	List(ctx context.Context, userID uuid.UUID, filters *EntryFilters) (*PaginatedEntries, error)
	Update(ctx context.Context, entry *Entry) (*Entry, error)
	Delete(ctx context.Context, userID uuid.UUID, id int32) error
	// FindDuplicateIDs returns ids of entries matching title (case-insensitive), date and category
	FindDuplicateIDs(ctx context.Context, userID uuid.UUID, title string, date time.Time, categoryID *int32) ([]int32, error)
	SetReceiptKey(ctx context.Context, userID uuid.UUID, id int32, key *string) error
	SumByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*CategoryTypeTotal, error)
}
