package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ListCategoriesQuery carries the supported category list parameters
type ListCategoriesQuery struct {
	Page      int
	Limit     int
	Search    string
	IsActive  *bool
	Parent    *string
	SortBy    string
	SortOrder string
}

// CategoryService implements the category use cases
type CategoryService struct {
	categories catalog.CategoryRepository
	products   catalog.ProductRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categories catalog.CategoryRepository, products catalog.ProductRepository) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

// ListCategories returns a page of categories with their product counts
func (s *CategoryService) ListCategories(ctx context.Context, query ListCategoriesQuery) ([]*CategoryDTO, int64, error) {
	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.Limit,
		Search:   query.Search,
		OrderBy:  query.SortBy,
		OrderDir: query.SortOrder,
		Filters:  map[string]interface{}{},
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	if query.IsActive != nil {
		filter.Filters["is_active"] = *query.IsActive
	}
	// parent accepts a category id or the "null" sentinel for top-level
	if query.Parent != nil {
		if *query.Parent == "null" || *query.Parent == "" {
			filter.Filters["parent_null"] = true
		} else if id, err := uuid.Parse(*query.Parent); err == nil {
			filter.Filters["parent_id"] = id
		} else {
			return []*CategoryDTO{}, 0, nil
		}
	}

	categories, total, err := s.categories.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*CategoryDTO, 0, len(categories))
	for _, c := range categories {
		count, err := s.products.CountByCategory(ctx, c.ID)
		if err != nil {
			return nil, 0, err
		}
		dtos = append(dtos, toCategoryDTO(c, count))
	}
	return dtos, total, nil
}

// GetCategory returns a category with its product count and direct subcategories
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toCategoryDTO(category, count)

	all, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.ParentID != nil && *c.ParentID == id {
			childCount, err := s.products.CountByCategory(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			dto.Subcategories = append(dto.Subcategories, *toCategoryDTO(c, childCount))
		}
	}
	return dto, nil
}

// CreateCategory creates a category. Names are unique.
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryDTO, error) {
	if _, err := s.categories.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("CATEGORY_EXISTS", "Category with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	parentID, err := s.resolveParent(ctx, req.Parent)
	if err != nil {
		return nil, err
	}
	category, err := catalog.NewCategory(req.Name, req.Description, req.Image, parentID)
	if err != nil {
		return nil, err
	}
	category.SortOrder = req.SortOrder
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.MetaTitle != "" || req.MetaDesc != "" || len(req.Keywords) > 0 {
		if err := category.SetSEO(req.MetaTitle, req.MetaDesc, req.Keywords); err != nil {
			return nil, err
		}
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryDTO(category, 0), nil
}

// UpdateCategory applies a partial update. Renaming regenerates the slug.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryDTO, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}

	name := category.Name
	if req.Name != nil {
		name = *req.Name
		if name != category.Name {
			if existing, err := s.categories.FindByName(ctx, name); err == nil && existing.ID != id {
				return nil, shared.NewDomainError("CATEGORY_EXISTS", "Category with this name already exists")
			} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
		}
	}
	description := category.Description
	if req.Description != nil {
		description = *req.Description
	}
	image := category.Image
	if req.Image != nil {
		image = *req.Image
	}
	parentID := category.ParentID
	if req.Parent != nil {
		parentID, err = s.resolveParent(ctx, req.Parent)
		if err != nil {
			return nil, err
		}
	}
	isActive := category.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	sortOrder := category.SortOrder
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	if err := category.Update(name, description, image, parentID, isActive, sortOrder); err != nil {
		return nil, err
	}
	if req.MetaTitle != nil || req.MetaDesc != nil || req.Keywords != nil {
		metaTitle := category.MetaTitle
		if req.MetaTitle != nil {
			metaTitle = *req.MetaTitle
		}
		metaDesc := category.MetaDesc
		if req.MetaDesc != nil {
			metaDesc = *req.MetaDesc
		}
		keywords := category.Keywords
		if req.Keywords != nil {
			keywords = req.Keywords
		}
		if err := category.SetSEO(metaTitle, metaDesc, keywords); err != nil {
			return nil, err
		}
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryDTO(category, count), nil
}

// ToggleActive flips a category's isActive flag
func (s *CategoryService) ToggleActive(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	category.IsActive = !category.IsActive
	category.Touch()
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryDTO(category, count), nil
}

// DeleteCategory removes a category. Deletion is blocked while products or
// subcategories still reference it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return err
	}

	productCount, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return shared.NewDomainError("CATEGORY_HAS_PRODUCTS",
			fmt.Sprintf("Cannot delete category. It has %d products associated with it.", productCount))
	}
	childCount, err := s.categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return shared.NewDomainError("CATEGORY_HAS_CHILDREN",
			fmt.Sprintf("Cannot delete category. It has %d subcategories.", childCount))
	}
	return s.categories.Delete(ctx, id)
}

// GetCategoryTree returns the nested tree of active categories ordered by
// sortOrder then name.
func (s *CategoryService) GetCategoryTree(ctx context.Context) ([]*CategoryTreeNodeDTO, error) {
	all, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*catalog.Category, 0, len(all))
	for _, c := range all {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return buildCategoryTree(active), nil
}

// buildCategoryTree nests categories in two passes. Children of a parent
// that is missing from the input are dropped silently.
func buildCategoryTree(categories []*catalog.Category) []*CategoryTreeNodeDTO {
	nodes := make(map[uuid.UUID]*CategoryTreeNodeDTO, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryTreeNodeDTO{
			ID:        c.ID.String(),
			Name:      c.Name,
			Slug:      c.Slug,
			Image:     c.Image,
			SortOrder: c.SortOrder,
			Children:  []*CategoryTreeNodeDTO{},
		}
	}

	roots := []*CategoryTreeNodeDTO{}
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	return roots
}

func (s *CategoryService) resolveParent(ctx context.Context, parent *string) (*uuid.UUID, error) {
	// "null" and the empty string are sentinels for a top-level category
	if parent == nil || *parent == "" || *parent == "null" {
		return nil, nil
	}
	id, err := uuid.Parse(*parent)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Invalid parent category")
	}
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent category not found")
		}
		return nil, err
	}
	return &id, nil
}
