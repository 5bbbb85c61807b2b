package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo   domain.CategoryRepository
	entryRepo      domain.EntryRepository
	receipts       *ReceiptService
	eventPublisher websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService; receipts may be nil
func NewCategoryService(categoryRepo domain.CategoryRepository, entryRepo domain.EntryRepository, receipts *ReceiptService) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		entryRepo:    entryRepo,
		receipts:     receipts,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CategoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *CategoryService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > domain.MaxCategoryNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(ctx, &domain.Category{UserID: userID, Name: name})
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.CategoryCreated(created))
	return created, nil
}

// EnsureDefaults creates the default categories a new user starts with
func (s *CategoryService) EnsureDefaults(ctx context.Context, userID uuid.UUID) error {
	for _, name := range domain.DefaultCategoryNames {
		_, err := s.categoryRepo.Create(ctx, &domain.Category{UserID: userID, Name: name})
		if err != nil && !errors.Is(err, domain.ErrCategoryAlreadyExists) {
			return err
		}
	}
	return nil
}

// GetCategories retrieves all categories of a user
func (s *CategoryService) GetCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryRepo.GetAllByUser(ctx, userID)
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(ctx context.Context, userID uuid.UUID, id int32, name string) (*domain.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	updated, err := s.categoryRepo.Update(ctx, userID, id, name)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.CategoryUpdated(updated))
	return updated, nil
}

// DeleteCategory deletes a category together with its entries and budgets
func (s *CategoryService) DeleteCategory(ctx context.Context, userID uuid.UUID, id int32) error {
	if _, err := s.categoryRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	// Receipt objects live outside the database and do not cascade
	var receiptKeys []string
	if s.receipts.IsEnabled() {
		page, err := s.entryRepo.List(ctx, userID, &domain.EntryFilters{CategoryID: &id})
		if err != nil {
			return err
		}
		for _, e := range page.Data {
			if e.ReceiptKey != nil {
				receiptKeys = append(receiptKeys, *e.ReceiptKey)
			}
		}
	}

	if err := s.categoryRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	for _, key := range receiptKeys {
		s.receipts.DeleteVariants(ctx, key)
	}
	if len(receiptKeys) > 0 {
		log.Debug().Int32("category_id", id).Int("receipts", len(receiptKeys)).Msg("Removed receipts of deleted category")
	}

	s.publishEvent(userID, websocket.CategoryDeleted(map[string]interface{}{"id": id}))
	return nil
}
