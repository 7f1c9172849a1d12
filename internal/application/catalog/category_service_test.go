package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	service := NewCategoryService(categories, products)

	categories.On("FindByName", mock.Anything, "Home & Garden").Return(nil, shared.ErrNotFound)
	categories.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

	dto, err := service.CreateCategory(context.Background(), CreateCategoryRequest{
		Name:        "Home & Garden",
		Description: "Things for the home",
	})
	require.NoError(t, err)
	assert.Equal(t, "home-garden", dto.Slug)
	assert.True(t, dto.IsActive)
	assert.Zero(t, dto.ProductCount)
}

func TestCategoryService_CreateCategory_InactiveWithMetadata(t *testing.T) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	service := NewCategoryService(categories, products)

	categories.On("FindByName", mock.Anything, "Archive").Return(nil, shared.ErrNotFound)
	categories.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

	inactive := false
	dto, err := service.CreateCategory(context.Background(), CreateCategoryRequest{
		Name:      "Archive",
		IsActive:  &inactive,
		MetaTitle: "Archived products",
		Keywords:  []string{"archive", "legacy"},
	})
	require.NoError(t, err)
	assert.False(t, dto.IsActive)
	assert.Equal(t, "Archived products", dto.Metadata.SEOTitle)
	assert.Equal(t, []string{"archive", "legacy"}, dto.Metadata.Keywords)

	_, err = service.CreateCategory(context.Background(), CreateCategoryRequest{
		Name:      "Archive",
		MetaTitle: strings.Repeat("x", 61),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Meta title")
}

func TestCategoryService_CreateCategory_DuplicateName(t *testing.T) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	service := NewCategoryService(categories, products)

	existing := newTestCategory(t, "Books")
	categories.On("FindByName", mock.Anything, "Books").Return(existing, nil)

	_, err := service.CreateCategory(context.Background(), CreateCategoryRequest{Name: "Books"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	categories.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCategoryService_CreateCategory_NullParentSentinel(t *testing.T) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	service := NewCategoryService(categories, products)

	categories.On("FindByName", mock.Anything, "Books").Return(nil, shared.ErrNotFound)
	categories.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

	parent := "null"
	dto, err := service.CreateCategory(context.Background(), CreateCategoryRequest{Name: "Books", Parent: &parent})
	require.NoError(t, err)
	assert.Nil(t, dto.Parent)
}

func TestCategoryService_DeleteCategory_Blocked(t *testing.T) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	service := NewCategoryService(categories, products)

	category := newTestCategory(t, "Books")
	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)

	products.On("CountByCategory", mock.Anything, category.ID).Return(int64(3), nil).Once()
	err := service.DeleteCategory(context.Background(), category.ID)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete category. It has 3 products associated with it.", err.Error())

	products.On("CountByCategory", mock.Anything, category.ID).Return(int64(0), nil).Once()
	categories.On("CountChildren", mock.Anything, category.ID).Return(int64(2), nil).Once()
	err = service.DeleteCategory(context.Background(), category.ID)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete category. It has 2 subcategories.", err.Error())

	categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	service := NewCategoryService(categories, products)

	category := newTestCategory(t, "Books")
	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	products.On("CountByCategory", mock.Anything, category.ID).Return(int64(0), nil)
	categories.On("CountChildren", mock.Anything, category.ID).Return(int64(0), nil)
	categories.On("Delete", mock.Anything, category.ID).Return(nil)

	require.NoError(t, service.DeleteCategory(context.Background(), category.ID))
	categories.AssertExpectations(t)
}

func TestCategoryService_GetCategory_WithSubcategories(t *testing.T) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	service := NewCategoryService(categories, products)

	parent := newTestCategory(t, "Electronics")
	child := newTestCategory(t, "Phones")
	parentID := parent.ID
	child.ParentID = &parentID

	categories.On("FindByID", mock.Anything, parent.ID).Return(parent, nil)
	categories.On("FindAll", mock.Anything).Return([]*catalog.Category{parent, child}, nil)
	products.On("CountByCategory", mock.Anything, parent.ID).Return(int64(4), nil)
	products.On("CountByCategory", mock.Anything, child.ID).Return(int64(1), nil)

	dto, err := service.GetCategory(context.Background(), parent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), dto.ProductCount)
	require.Len(t, dto.Subcategories, 1)
	assert.Equal(t, "Phones", dto.Subcategories[0].Name)
}

func TestBuildCategoryTree(t *testing.T) {
	root1 := newTestCategory(t, "Electronics")
	root1.SortOrder = 1
	root2 := newTestCategory(t, "Books")
	root2.SortOrder = 2
	child := newTestCategory(t, "Phones")
	rootID := root1.ID
	child.ParentID = &rootID
	grandchild := newTestCategory(t, "Smartphones")
	childID := child.ID
	grandchild.ParentID = &childID

	// Input arrives pre-sorted by (sortOrder, name)
	tree := buildCategoryTree([]*catalog.Category{root1, root2, child, grandchild})

	require.Len(t, tree, 2)
	assert.Equal(t, "Electronics", tree[0].Name)
	assert.Equal(t, "Books", tree[1].Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Phones", tree[0].Children[0].Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Smartphones", tree[0].Children[0].Children[0].Name)
	assert.Empty(t, tree[1].Children)
}

func TestBuildCategoryTree_OrphanDroppedSilently(t *testing.T) {
	root := newTestCategory(t, "Electronics")
	orphan := newTestCategory(t, "Phones")
	missing := uuid.New()
	orphan.ParentID = &missing

	tree := buildCategoryTree([]*catalog.Category{root, orphan})

	require.Len(t, tree, 1)
	assert.Equal(t, "Electronics", tree[0].Name)
	assert.Empty(t, tree[0].Children)
}

func TestCategoryService_GetCategoryTree_FiltersInactive(t *testing.T) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	service := NewCategoryService(categories, products)

	active := newTestCategory(t, "Electronics")
	inactive := newTestCategory(t, "Legacy")
	inactive.IsActive = false

	categories.On("FindAll", mock.Anything).Return([]*catalog.Category{active, inactive}, nil)

	tree, err := service.GetCategoryTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Electronics", tree[0].Name)
}
