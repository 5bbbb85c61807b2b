package service

import (
	"context"
	"time"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// UnactivatedUserTTL is how long a never-activated account is kept
const UnactivatedUserTTL = 48 * time.Hour

// PurgeService removes accounts that were never activated
type PurgeService struct {
	userRepo domain.UserRepository
}

// NewPurgeService creates a new PurgeService
func NewPurgeService(userRepo domain.UserRepository) *PurgeService {
	return &PurgeService{userRepo: userRepo}
}

// PurgeUnactivatedUsers deletes inactive users created more than 48h before now
func (s *PurgeService) PurgeUnactivatedUsers(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-UnactivatedUserTTL)
	count, err := s.userRepo.DeleteUnactivatedBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Time("cutoff", cutoff).Msg("Failed to purge unactivated users")
		return 0, err
	}
	log.Info().Int64("count", count).Time("cutoff", cutoff).Msg("Purged unactivated users")
	return count, nil
}
