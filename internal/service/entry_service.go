package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/websocket"
)

// EntryService handles income and expense entries
type EntryService struct {
	entryRepo      domain.EntryRepository
	validator      *EntryValidator
	receipts       *ReceiptService
	eventPublisher websocket.EventPublisher
}

// NewEntryService creates a new EntryService; receipts may be nil
func NewEntryService(entryRepo domain.EntryRepository, validator *EntryValidator, receipts *ReceiptService) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
		validator: validator,
		receipts:  receipts,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *EntryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *EntryService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateEntry validates and stores a new entry
func (s *EntryService) CreateEntry(ctx context.Context, userID uuid.UUID, input domain.EntryInput) (*domain.Entry, error) {
	entry, err := s.validator.Validate(ctx, userID, input, nil)
	if err != nil {
		return nil, err
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.EntryCreated(created))
	return created, nil
}

// GetEntry retrieves one entry; entries of other users are reported as not found
func (s *EntryService) GetEntry(ctx context.Context, userID uuid.UUID, id int32) (*domain.Entry, error) {
	return s.entryRepo.GetByID(ctx, userID, id)
}

// ListEntries retrieves a page of entries, newest first
func (s *EntryService) ListEntries(ctx context.Context, userID uuid.UUID, filters domain.EntryFilters) (*domain.PaginatedEntries, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = domain.DefaultPageSize
	}
	if filters.PageSize > domain.MaxPageSize {
		filters.PageSize = domain.MaxPageSize
	}
	if err := validateFilters(&filters); err != nil {
		return nil, err
	}
	return s.entryRepo.List(ctx, userID, &filters)
}

func validateFilters(filters *domain.EntryFilters) error {
	if filters.Type != nil && !filters.Type.IsValid() {
		return domain.ValidationErrors{{Field: FieldType, Message: "Type must be income or expense."}}
	}
	if filters.From != nil && filters.To != nil && filters.From.After(*filters.To) {
		return domain.ValidationErrors{{Field: "from", Message: "From must not be after to."}}
	}
	return nil
}

// UpdateEntry re-validates and overwrites an existing entry
func (s *EntryService) UpdateEntry(ctx context.Context, userID uuid.UUID, id int32, input domain.EntryInput) (*domain.Entry, error) {
	// Ownership first so foreign ids never reach validation
	if _, err := s.entryRepo.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}

	entry, err := s.validator.Validate(ctx, userID, input, &id)
	if err != nil {
		return nil, err
	}

	updated, err := s.entryRepo.Update(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.EntryUpdated(updated))
	return updated, nil
}

// DeleteEntry removes an entry and its receipt
func (s *EntryService) DeleteEntry(ctx context.Context, userID uuid.UUID, id int32) error {
	entry, err := s.entryRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	if entry.ReceiptKey != nil {
		s.receipts.DeleteVariants(ctx, *entry.ReceiptKey)
	}

	s.publishEvent(userID, websocket.EntryDeleted(map[string]interface{}{"id": id}))
	return nil
}

// ExportRows returns every entry matching filters, newest first, for file exports
func (s *EntryService) ExportRows(ctx context.Context, userID uuid.UUID, filters domain.EntryFilters) ([]*domain.Entry, error) {
	if err := validateFilters(&filters); err != nil {
		return nil, err
	}
	filters.Page = 1
	filters.PageSize = 0
	page, err := s.entryRepo.List(ctx, userID, &filters)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// RecentEntries returns up to limit entries dated on or after since, newest first
func (s *EntryService) RecentEntries(ctx context.Context, userID uuid.UUID, since time.Time, limit int32) ([]*domain.Entry, error) {
	page, err := s.entryRepo.List(ctx, userID, &domain.EntryFilters{From: &since, Page: 1, PageSize: limit})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}
