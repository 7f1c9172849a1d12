package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context, filter shared.Filter) ([]*Product, int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the persistence operations for categories
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]*Category, error)
	List(ctx context.Context, filter shared.Filter) ([]*Category, int64, error)
	CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
