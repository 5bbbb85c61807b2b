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

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := r.queries.GetUserByID(ctx, uuidToPg(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(user), nil
}

// GetByAuth0ID retrieves a user by their Auth0 ID
func (r *UserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	user, err := r.queries.GetUserByAuth0ID(ctx, auth0ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(user), nil
}

// Upsert creates the user on first login or refreshes their profile afterwards.
// Activation is sticky: once active a user never goes back to inactive.
func (r *UserRepository) Upsert(ctx context.Context, profile domain.UserProfile) (*domain.User, bool, error) {
	row, err := r.queries.UpsertUserByAuth0ID(ctx, sqlc.UpsertUserByAuth0IDParams{
		Auth0ID:    profile.Auth0ID,
		Email:      profile.Email,
		Name:       stringPtrToPgText(profile.Name),
		PictureUrl: stringPtrToPgText(profile.PictureURL),
		IsActive:   profile.EmailVerified,
	})
	if err != nil {
		return nil, false, err
	}
	user := sqlcUserToDomain(sqlc.User{
		ID:         row.ID,
		Auth0ID:    row.Auth0ID,
		Email:      row.Email,
		Name:       row.Name,
		PictureUrl: row.PictureUrl,
		IsActive:   row.IsActive,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	})
	return user, row.Inserted, nil
}

// Delete removes the user; owned rows go with it through ON DELETE CASCADE
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := r.queries.DeleteUser(ctx, uuidToPg(id))
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteUnactivatedBefore removes never-activated users created before cutoff
func (r *UserRepository) DeleteUnactivatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.queries.DeleteUnactivatedUsersBefore(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true})
}

func sqlcUserToDomain(u sqlc.User) *domain.User {
	return &domain.User{
		ID:         pgToUUID(u.ID),
		Auth0ID:    u.Auth0ID,
		Email:      u.Email,
		Name:       pgTextToStringPtr(u.Name),
		PictureURL: pgTextToStringPtr(u.PictureUrl),
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt.Time,
		UpdatedAt:  u.UpdatedAt.Time,
	}
}
