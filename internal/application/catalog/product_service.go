package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ListProductsQuery carries the supported product list parameters
type ListProductsQuery struct {
	Page      int
	Limit     int
	Search    string
	Category  string
	Status    string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
}

// ProductService implements the product use cases
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(products catalog.ProductRepository, categories catalog.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// ListProducts returns a page of products with populated category references
func (s *ProductService) ListProducts(ctx context.Context, query ListProductsQuery) ([]*ProductDTO, int64, error) {
	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.Limit,
		Search:   query.Search,
		OrderBy:  query.SortBy,
		OrderDir: query.SortOrder,
		Filters:  map[string]interface{}{},
	}
	if query.Status != "" && query.Status != "all" {
		filter.Filters["status"] = query.Status
	}
	if query.MinPrice != nil {
		filter.Filters["min_price"] = *query.MinPrice
	}
	if query.MaxPrice != nil {
		filter.Filters["max_price"] = *query.MaxPrice
	}

	// The category parameter accepts either an id or a category name.
	// An unknown name yields an empty page rather than an error.
	if query.Category != "" && query.Category != "all" {
		if id, err := uuid.Parse(query.Category); err == nil {
			filter.Filters["category_id"] = id
		} else {
			cat, err := s.categories.FindByName(ctx, query.Category)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return []*ProductDTO{}, 0, nil
				}
				return nil, 0, err
			}
			filter.Filters["category_id"] = cat.ID
		}
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	refs, err := s.categoryRefs(ctx, products)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p, refs[p.CategoryID]))
	}
	return dtos, total, nil
}

// GetProduct returns a single product by id
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	ref, err := s.resolveCategoryRef(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return toProductDTO(product, ref), nil
}

// CreateProduct creates a product after checking the category exists
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	categoryID, err := uuid.Parse(req.Category)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Product category is required")
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description,
		decimal.NewFromFloat(req.Price), categoryID, req.Image, req.Stock)
	if err != nil {
		return nil, err
	}
	if req.Featured {
		product.SetFeatured(true)
	}
	if len(req.Tags) > 0 {
		product.Tags = req.Tags
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductDTO(product, toCategoryRef(category)), nil
}

// UpdateProduct applies a partial update. Status is re-derived from stock.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	price := product.Price
	if req.Price != nil {
		price = decimal.NewFromFloat(*req.Price)
	}
	categoryID := product.CategoryID
	if req.Category != nil {
		parsed, err := uuid.Parse(*req.Category)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Product category is required")
		}
		if _, err := s.categories.FindByID(ctx, parsed); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
			}
			return nil, err
		}
		categoryID = parsed
	}
	image := product.Image
	if req.Image != nil {
		image = *req.Image
	}
	stock := product.Stock
	if req.Stock != nil {
		stock = *req.Stock
	}
	tags := product.Tags
	if req.Tags != nil {
		tags = req.Tags
	}

	if err := product.Update(name, description, price, categoryID, image, stock, tags); err != nil {
		return nil, err
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	ref, err := s.resolveCategoryRef(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return toProductDTO(product, ref), nil
}

// UpdateStock replaces a product's stock level and re-derives its status
func (s *ProductService) UpdateStock(ctx context.Context, id uuid.UUID, stock int) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	if err := product.SetStock(stock); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	ref, err := s.resolveCategoryRef(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return toProductDTO(product, ref), nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *ProductService) resolveCategoryRef(ctx context.Context, id uuid.UUID) (*CategoryRefDTO, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Dangling references render with a nil category
			return nil, nil
		}
		return nil, err
	}
	return toCategoryRef(category), nil
}

func (s *ProductService) categoryRefs(ctx context.Context, products []*catalog.Product) (map[uuid.UUID]*CategoryRefDTO, error) {
	refs := make(map[uuid.UUID]*CategoryRefDTO)
	for _, p := range products {
		if _, ok := refs[p.CategoryID]; ok {
			continue
		}
		ref, err := s.resolveCategoryRef(ctx, p.CategoryID)
		if err != nil {
			return nil, err
		}
		refs[p.CategoryID] = ref
	}
	return refs, nil
}
