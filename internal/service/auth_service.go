package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo   domain.UserRepository
	categories *CategoryService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, categories *CategoryService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		categories: categories,
	}
}

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	User      *domain.User
	IsNewUser bool
}

// AuthenticateUser handles the authentication flow after Auth0 callback.
// New users get the default category set.
func (s *AuthService) AuthenticateUser(ctx context.Context, profile domain.UserProfile) (*AuthResult, error) {
	user, created, err := s.userRepo.Upsert(ctx, profile)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", profile.Auth0ID).Msg("Failed to create or get user")
		return nil, err
	}

	if created {
		if err := s.categories.EnsureDefaults(ctx, user.ID); err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to create default categories")
			return nil, err
		}
		log.Info().Str("user_id", user.ID.String()).Msg("Created new user with default categories")
		return &AuthResult{User: user, IsNewUser: true}, nil
	}

	log.Info().Str("user_id", user.ID.String()).Msg("Existing user authenticated")
	return &AuthResult{User: user}, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByAuth0ID retrieves a user by their Auth0 ID
func (s *AuthService) GetUserByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(ctx, auth0ID)
}

// GetUserIDByAuth0ID resolves a token subject to the internal user ID
func (s *AuthService) GetUserIDByAuth0ID(ctx context.Context, auth0ID string) (uuid.UUID, error) {
	user, err := s.userRepo.GetByAuth0ID(ctx, auth0ID)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}
