package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UncategorizedLabel names the bucket for entries without a category
const UncategorizedLabel = "—"

// DefaultCategoryNames are created for every new user
var DefaultCategoryNames = []string{"Food", "Transport", "Entertainment", "Utilities", "Other"}

type Category struct {
	ID        int32     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int32) (*Category, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	Update(ctx context.Context, userID uuid.UUID, id int32, name string) (*Category, error)
	// Delete removes the category together with its entries and budgets
	Delete(ctx context.Context, userID uuid.UUID, id int32) error
}
