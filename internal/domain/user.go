package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID         uuid.UUID `json:"id"`
	Auth0ID    string    `json:"auth0Id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name"`
	PictureURL *string   `json:"pictureUrl"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserProfile is the identity information carried by an authenticated token
type UserProfile struct {
	Auth0ID       string
	Email         string
	Name          *string
	PictureURL    *string
	EmailVerified bool
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByAuth0ID(ctx context.Context, auth0ID string) (*User, error)
	// Upsert creates the user on first sight; created reports whether a row was inserted
	Upsert(ctx context.Context, profile UserProfile) (user *User, created bool, err error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteUnactivatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
