package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise/pennywise-backend/db/sqlc"
	"github.com/pennywise/pennywise-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created, err := r.queries.CreateCategory(ctx, sqlc.CreateCategoryParams{
		UserID: uuidToPg(category.UserID),
		Name:   category.Name,
	})
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, err
	}
	return sqlcCategoryToDomain(created), nil
}

// GetByID retrieves a category owned by userID
func (r *CategoryRepository) GetByID(ctx context.Context, userID uuid.UUID, id int32) (*domain.Category, error) {
	category, err := r.queries.GetCategoryByID(ctx, sqlc.GetCategoryByIDParams{
		UserID: uuidToPg(userID),
		ID:     id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return sqlcCategoryToDomain(category), nil
}

// GetAllByUser retrieves all categories for a user ordered by name
func (r *CategoryRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	categories, err := r.queries.ListCategories(ctx, uuidToPg(userID))
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Category, len(categories))
	for i, c := range categories {
		result[i] = sqlcCategoryToDomain(c)
	}
	return result, nil
}

// Update renames a category
func (r *CategoryRepository) Update(ctx context.Context, userID uuid.UUID, id int32, name string) (*domain.Category, error) {
	updated, err := r.queries.UpdateCategory(ctx, sqlc.UpdateCategoryParams{
		UserID: uuidToPg(userID),
		ID:     id,
		Name:   name,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, err
	}
	return sqlcCategoryToDomain(updated), nil
}

// Delete removes a category; its entries and budgets cascade
func (r *CategoryRepository) Delete(ctx context.Context, userID uuid.UUID, id int32) error {
	rows, err := r.queries.DeleteCategory(ctx, sqlc.DeleteCategoryParams{
		UserID: uuidToPg(userID),
		ID:     id,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func sqlcCategoryToDomain(c sqlc.Category) *domain.Category {
	return &domain.Category{
		ID:        c.ID,
		UserID:    pgToUUID(c.UserID),
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
	}
}
