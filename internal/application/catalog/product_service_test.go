package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

func newTestCategory(t *testing.T, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, "", "", nil)
	require.NoError(t, err)
	return c
}

func newTestProduct(t *testing.T, name string, categoryID uuid.UUID, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "desc", decimal.NewFromInt(20), categoryID, name+".jpg", stock)
	require.NoError(t, err)
	return p
}

func TestProductService_CreateProduct(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := NewProductService(products, categories)

	category := newTestCategory(t, "Electronics")
	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	dto, err := service.CreateProduct(context.Background(), CreateProductRequest{
		Name:        "Laptop",
		Description: "A fast laptop",
		Price:       999.99,
		Category:    category.ID.String(),
		Image:       "laptop.jpg",
		Stock:       5,
		Tags:        []string{"tech"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Laptop", dto.Name)
	assert.Equal(t, "low_stock", dto.Status)
	assert.Equal(t, "Electronics", dto.Category.Name)
	products.AssertExpectations(t)
}

func TestProductService_CreateProduct_CategoryNotFound(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := NewProductService(products, categories)

	missing := uuid.New()
	categories.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	_, err := service.CreateProduct(context.Background(), CreateProductRequest{
		Name:        "Laptop",
		Description: "desc",
		Price:       10,
		Category:    missing.String(),
		Image:       "laptop.jpg",
		Stock:       5,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Category not found")
	products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_ListProducts_CategoryByName(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := NewProductService(products, categories)

	category := newTestCategory(t, "Books")
	product := newTestProduct(t, "Novel", category.ID, 50)

	categories.On("FindByName", mock.Anything, "Books").Return(category, nil)
	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	products.On("List", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["category_id"] == category.ID
	})).Return([]*catalog.Product{product}, int64(1), nil)

	dtos, total, err := service.ListProducts(context.Background(), ListProductsQuery{Category: "Books"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Books", dtos[0].Category.Name)
}

func TestProductService_ListProducts_UnknownCategoryName(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := NewProductService(products, categories)

	categories.On("FindByName", mock.Anything, "Nope").Return(nil, shared.ErrNotFound)

	dtos, total, err := service.ListProducts(context.Background(), ListProductsQuery{Category: "Nope"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, dtos)
	products.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestProductService_ListProducts_AllSentinel(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := NewProductService(products, categories)

	products.On("List", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		_, hasCategory := f.Filters["category_id"]
		_, hasStatus := f.Filters["status"]
		return !hasCategory && !hasStatus
	})).Return([]*catalog.Product{}, int64(0), nil)

	_, _, err := service.ListProducts(context.Background(), ListProductsQuery{Category: "all", Status: "all"})
	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestProductService_UpdateProduct_PartialAndStatus(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := NewProductService(products, categories)

	category := newTestCategory(t, "Electronics")
	product := newTestProduct(t, "Laptop", category.ID, 50)

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	products.On("Save", mock.Anything, product).Return(nil)

	stock := 0
	dto, err := service.UpdateProduct(context.Background(), product.ID, UpdateProductRequest{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, "out_of_stock", dto.Status)
	assert.Equal(t, "Laptop", dto.Name)
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := NewProductService(products, categories)

	id := uuid.New()
	products.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := service.GetProduct(context.Background(), id)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
}

func TestProductService_DeleteProduct(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := NewProductService(products, categories)

	product := newTestProduct(t, "Laptop", uuid.New(), 5)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("Delete", mock.Anything, product.ID).Return(nil)

	require.NoError(t, service.DeleteProduct(context.Background(), product.ID))
	products.AssertExpectations(t)
}
