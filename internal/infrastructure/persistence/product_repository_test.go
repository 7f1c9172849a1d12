package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

func seedCategory(t *testing.T, repo *GormCategoryRepository, name string) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(name, "", "", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), category))
	return category
}

func seedProduct(t *testing.T, repo *GormProductRepository, name string, categoryID uuid.UUID, price float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "desc", decimal.NewFromFloat(price), categoryID, name+".jpg", stock)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), product))
	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	categories := NewGormCategoryRepository(db)
	ctx := context.Background()

	category := seedCategory(t, categories, "Electronics")
	product := seedProduct(t, products, "Laptop", category.ID, 999.99, 4)

	found, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", found.Name)
	assert.Equal(t, catalog.ProductStatusLowStock, found.Status)
	assert.True(t, found.Price.Equal(decimal.NewFromFloat(999.99)))

	bySKU, err := products.FindBySKU(ctx, product.SKU)
	require.NoError(t, err)
	assert.Equal(t, product.ID, bySKU.ID)

	_, err = products.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_List(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	categories := NewGormCategoryRepository(db)
	ctx := context.Background()

	electronics := seedCategory(t, categories, "Electronics")
	books := seedCategory(t, categories, "Books")
	seedProduct(t, products, "Laptop", electronics.ID, 999.99, 4)
	seedProduct(t, products, "Phone", electronics.ID, 599, 50)
	seedProduct(t, products, "Novel", books.ID, 12.50, 0)

	t.Run("by category", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["category_id"] = electronics.ID
		rows, total, err := products.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, rows, 2)
	})

	t.Run("by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = "out_of_stock"
		rows, total, err := products.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Novel", rows[0].Name)
	})

	t.Run("price range", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["min_price"] = 100.0
		filter.Filters["max_price"] = 700.0
		rows, total, err := products.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Phone", rows[0].Name)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "lap"
		rows, total, err := products.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Laptop", rows[0].Name)
	})

	t.Run("sorted by price ascending", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "price"
		filter.OrderDir = "asc"
		rows, _, err := products.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Novel", rows[0].Name)
		assert.Equal(t, "Laptop", rows[2].Name)
	})

	t.Run("sort field without direction is ascending", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "price"
		filter.OrderDir = ""
		rows, _, err := products.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Novel", rows[0].Name)
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "price; DROP TABLE products"
		_, _, err := products.List(ctx, filter)
		require.NoError(t, err)
	})

	t.Run("pagination", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 2
		rows, total, err := products.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, rows, 2)

		filter.Page = 2
		rows, _, err = products.List(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestGormProductRepository_CountByCategoryAndDelete(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	categories := NewGormCategoryRepository(db)
	ctx := context.Background()

	category := seedCategory(t, categories, "Books")
	product := seedProduct(t, products, "Novel", category.ID, 10, 5)

	count, err := products.CountByCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, products.Delete(ctx, product.ID))
	count, err = products.CountByCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, products.Delete(ctx, product.ID), shared.ErrNotFound)
}

func TestGormProductRepository_StockUpdatePersists(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	categories := NewGormCategoryRepository(db)
	ctx := context.Background()

	category := seedCategory(t, categories, "Books")
	product := seedProduct(t, products, "Novel", category.ID, 10, 5)

	require.NoError(t, product.Reserve(5))
	require.NoError(t, products.Save(ctx, product))

	found, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, found.Stock)
	assert.Equal(t, catalog.ProductStatusOutOfStock, found.Status)
}
