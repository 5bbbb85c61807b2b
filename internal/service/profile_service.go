package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// ProfileService handles profile-related business logic
type ProfileService struct {
	userRepo  domain.UserRepository
	entryRepo domain.EntryRepository
	receipts  *ReceiptService
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo domain.UserRepository, entryRepo domain.EntryRepository, receipts *ReceiptService) *ProfileService {
	return &ProfileService{userRepo: userRepo, entryRepo: entryRepo, receipts: receipts}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// DeleteAccount removes the user and everything they own
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	var receiptKeys []string
	if s.receipts.IsEnabled() {
		page, err := s.entryRepo.List(ctx, userID, &domain.EntryFilters{})
		if err != nil {
			return err
		}
		for _, e := range page.Data {
			if e.ReceiptKey != nil {
				receiptKeys = append(receiptKeys, *e.ReceiptKey)
			}
		}
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	for _, key := range receiptKeys {
		s.receipts.DeleteVariants(ctx, key)
	}
	log.Info().Str("user_id", userID.String()).Int("receipts", len(receiptKeys)).Msg("Account deleted")
	return nil
}
