package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/util"
)

// Field names reported in validation errors
const (
	FieldTitle    = "title"
	FieldAmount   = "amount"
	FieldDate     = "date"
	FieldType     = "type"
	FieldCategory = "category"
	FieldNotes    = "notes"
)

const msgRequired = "This field is required."

// entryRule checks one field of a normalized candidate entry
type entryRule func(in *domain.EntryInput, today time.Time) *domain.FieldError

// entryRules run in order; every rule runs so all field errors are reported together
var entryRules = []entryRule{
	titleRule,
	amountRule,
	dateRule,
	typeRule,
	categoryRule,
	notesRule,
}

func titleRule(in *domain.EntryInput, _ time.Time) *domain.FieldError {
	if in.Title == "" {
		return &domain.FieldError{Field: FieldTitle, Message: msgRequired}
	}
	if utf8.RuneCountInString(in.Title) > domain.MaxEntryTitleLength {
		return &domain.FieldError{Field: FieldTitle, Message: "Title must be at most 100 characters."}
	}
	return nil
}

// Amounts outside this exponent range are rejected before any comparison
// rescales them.
const (
	minAmountExponent = -20
	maxAmountExponent = 8
)

func amountRule(in *domain.EntryInput, _ time.Time) *domain.FieldError {
	const (
		msgTooLarge  = "Amount must not exceed 99999999.99."
		msgPrecision = "Amount must have at most two decimal places."
	)
	switch {
	case in.Amount == nil:
		return &domain.FieldError{Field: FieldAmount, Message: msgRequired}
	case !in.Amount.IsPositive():
		return &domain.FieldError{Field: FieldAmount, Message: "Amount must be greater than zero."}
	case in.Amount.Exponent() > maxAmountExponent:
		return &domain.FieldError{Field: FieldAmount, Message: msgTooLarge}
	case in.Amount.Exponent() < minAmountExponent:
		return &domain.FieldError{Field: FieldAmount, Message: msgPrecision}
	case in.Amount.GreaterThan(domain.MaxAmount):
		return &domain.FieldError{Field: FieldAmount, Message: msgTooLarge}
	case !in.Amount.Equal(in.Amount.Truncate(2)):
		return &domain.FieldError{Field: FieldAmount, Message: msgPrecision}
	}
	return nil
}

func dateRule(in *domain.EntryInput, today time.Time) *domain.FieldError {
	if in.Date == nil {
		return &domain.FieldError{Field: FieldDate, Message: msgRequired}
	}
	if in.Date.After(today) {
		return &domain.FieldError{Field: FieldDate, Message: "Date cannot be in the future."}
	}
	return nil
}

func typeRule(in *domain.EntryInput, _ time.Time) *domain.FieldError {
	if in.Type == "" {
		return &domain.FieldError{Field: FieldType, Message: msgRequired}
	}
	if !in.Type.IsValid() {
		return &domain.FieldError{Field: FieldType, Message: "Type must be income or expense."}
	}
	return nil
}

func categoryRule(in *domain.EntryInput, _ time.Time) *domain.FieldError {
	if in.CategoryID == nil {
		return &domain.FieldError{Field: FieldCategory, Message: msgRequired}
	}
	return nil
}

func notesRule(in *domain.EntryInput, _ time.Time) *domain.FieldError {
	if utf8.RuneCountInString(in.Notes) > domain.MaxEntryNotesLength {
		return &domain.FieldError{Field: FieldNotes, Message: "Notes must be at most 1000 characters."}
	}
	return nil
}

// EntryValidator turns raw entry input into a storable entry or reports why it cannot be stored
type EntryValidator struct {
	entryRepo    domain.EntryRepository
	categoryRepo domain.CategoryRepository
	loc          *time.Location
	now          func() time.Time
}

// NewEntryValidator creates a validator that judges "today" in loc
func NewEntryValidator(entryRepo domain.EntryRepository, categoryRepo domain.CategoryRepository, loc *time.Location) *EntryValidator {
	return &EntryValidator{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// Validate checks input for userID. existingID is the entry being edited, if any,
// and is excluded from the duplicate lookup.
// Errors are domain.ValidationErrors for field problems or *domain.DuplicateEntryError.
func (v *EntryValidator) Validate(ctx context.Context, userID uuid.UUID, input domain.EntryInput, existingID *int32) (*domain.Entry, error) {
	in := input
	in.Title = strings.TrimSpace(in.Title)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Date != nil {
		d := util.DateOf(*in.Date, time.UTC)
		in.Date = &d
	}

	today := util.Today(v.now(), v.loc)

	var errs domain.ValidationErrors
	for _, rule := range entryRules {
		if fe := rule(&in, today); fe != nil {
			errs = append(errs, *fe)
		}
	}

	var category *domain.Category
	if !errs.Has(FieldCategory) {
		c, err := v.categoryRepo.GetByID(ctx, userID, *in.CategoryID)
		if err != nil {
			if !errors.Is(err, domain.ErrCategoryNotFound) {
				return nil, err
			}
			errs = append(errs, domain.FieldError{Field: FieldCategory, Message: "Select a valid category."})
		}
		category = c
	}

	if len(errs) > 0 {
		return nil, errs
	}

	ids, err := v.entryRepo.FindDuplicateIDs(ctx, userID, in.Title, *in.Date, in.CategoryID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if existingID != nil && id == *existingID {
			continue
		}
		return nil, &domain.DuplicateEntryError{
			Title:    in.Title,
			Date:     *in.Date,
			Category: category.Name,
		}
	}

	entry := &domain.Entry{
		UserID:       userID,
		CategoryID:   in.CategoryID,
		CategoryName: &category.Name,
		Title:        in.Title,
		Amount:       in.Amount.Round(2),
		Date:         *in.Date,
		Type:         in.Type,
		Notes:        in.Notes,
	}
	if existingID != nil {
		entry.ID = *existingID
	}
	return entry, nil
}

