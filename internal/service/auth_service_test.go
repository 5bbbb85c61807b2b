package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/testutil"
)

func newAuthService() (*AuthService, *testutil.MockUserRepository, *testutil.MockCategoryRepository) {
	userRepo := testutil.NewMockUserRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	categories := NewCategoryService(categoryRepo, testutil.NewMockEntryRepository(), nil)
	return NewAuthService(userRepo, categories), userRepo, categoryRepo
}

func TestAuthenticateUser_NewUser(t *testing.T) {
	service, _, categoryRepo := newAuthService()
	name := "Test User"

	result, err := service.AuthenticateUser(context.Background(), domain.UserProfile{
		Auth0ID:       "auth0|12345",
		Email:         "test@example.com",
		Name:          &name,
		EmailVerified: true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.IsNewUser {
		t.Error("Expected IsNewUser to be true for new user")
	}
	if result.User.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", result.User.Email)
	}
	if !result.User.IsActive {
		t.Error("Expected verified user to be active")
	}

	categories, _ := categoryRepo.GetAllByUser(context.Background(), result.User.ID)
	if len(categories) != len(domain.DefaultCategoryNames) {
		t.Errorf("Expected %d default categories, got %d", len(domain.DefaultCategoryNames), len(categories))
	}
}

func TestAuthenticateUser_ExistingUser(t *testing.T) {
	service, userRepo, categoryRepo := newAuthService()
	existing := &domain.User{ID: uuid.New(), Auth0ID: "auth0|existing", Email: "old@example.com"}
	userRepo.AddUser(existing)

	result, err := service.AuthenticateUser(context.Background(), domain.UserProfile{
		Auth0ID: "auth0|existing",
		Email:   "new@example.com",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.IsNewUser {
		t.Error("Expected IsNewUser to be false for existing user")
	}
	if result.User.ID != existing.ID {
		t.Errorf("Expected user %s, got %s", existing.ID, result.User.ID)
	}
	if len(categoryRepo.Categories) != 0 {
		t.Errorf("Expected no categories for returning user, got %d", len(categoryRepo.Categories))
	}
}

func TestAuthenticateUser_RepositoryError(t *testing.T) {
	service, userRepo, _ := newAuthService()
	userRepo.UpsertFn = func(profile domain.UserProfile) (*domain.User, bool, error) {
		return nil, false, errors.New("db down")
	}

	if _, err := service.AuthenticateUser(context.Background(), domain.UserProfile{Auth0ID: "auth0|x"}); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestGetUserIDByAuth0ID(t *testing.T) {
	service, userRepo, _ := newAuthService()
	user := &domain.User{ID: uuid.New(), Auth0ID: "auth0|lookup"}
	userRepo.AddUser(user)

	id, err := service.GetUserIDByAuth0ID(context.Background(), "auth0|lookup")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != user.ID {
		t.Errorf("Expected %s, got %s", user.ID, id)
	}

	if _, err := service.GetUserIDByAuth0ID(context.Background(), "auth0|missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
