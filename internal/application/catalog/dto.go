package catalog

import (
	"time"

	"github.com/shopadmin/backend/internal/domain/catalog"
)

// CreateProductRequest carries the fields accepted when creating a product
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Stock       int      `json:"stock"`
	Featured    bool     `json:"featured"`
	Tags        []string `json:"tags"`
}

// UpdateProductRequest carries the fields accepted when updating a product.
// Pointer fields distinguish "absent" from zero values.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
	Featured    *bool    `json:"featured"`
	Tags        []string `json:"tags"`
}

// RatingsDTO is the aggregate rating block on a product response
type RatingsDTO struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// CategoryRefDTO is the populated category reference on a product response
type CategoryRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductDTO is the product response shape
type ProductDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Category    *CategoryRefDTO `json:"category"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status"`
	SKU         string          `json:"sku"`
	Featured    bool            `json:"featured"`
	Tags        []string        `json:"tags"`
	Ratings     RatingsDTO      `json:"ratings"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateCategoryRequest carries the fields accepted when creating a category
type CreateCategoryRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Parent      *string  `json:"parent"`
	IsActive    *bool    `json:"isActive"`
	SortOrder   int      `json:"sortOrder"`
	MetaTitle   string   `json:"metaTitle"`
	MetaDesc    string   `json:"metaDescription"`
	Keywords    []string `json:"keywords"`
}

// UpdateCategoryRequest carries the fields accepted when updating a category
type UpdateCategoryRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Parent      *string  `json:"parent"`
	IsActive    *bool    `json:"isActive"`
	SortOrder   *int     `json:"sortOrder"`
	MetaTitle   *string  `json:"metaTitle"`
	MetaDesc    *string  `json:"metaDescription"`
	Keywords    []string `json:"keywords"`
}

// CategoryMetadataDTO is the search metadata block on a category response
type CategoryMetadataDTO struct {
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDescription"`
	Keywords       []string `json:"keywords"`
}

// CategoryDTO is the category response shape. ProductCount and Subcategories
// are derived relations, not stored fields.
type CategoryDTO struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Description   string              `json:"description"`
	Image         string              `json:"image"`
	Parent        *string             `json:"parent"`
	IsActive      bool                `json:"isActive"`
	SortOrder     int                 `json:"sortOrder"`
	Metadata      CategoryMetadataDTO `json:"metadata"`
	ProductCount  int64               `json:"productCount"`
	Subcategories []CategoryDTO       `json:"subcategories,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// CategoryTreeNodeDTO is one node of the nested category tree
type CategoryTreeNodeDTO struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Slug      string                 `json:"slug"`
	Image     string                 `json:"image"`
	SortOrder int                    `json:"sortOrder"`
	Children  []*CategoryTreeNodeDTO `json:"children"`
}

func toProductDTO(p *catalog.Product, ref *CategoryRefDTO) *ProductDTO {
	price, _ := p.Price.Float64()
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &ProductDTO{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Category:    ref,
		Image:       p.Image,
		Stock:       p.Stock,
		Status:      string(p.Status),
		SKU:         p.SKU,
		Featured:    p.Featured,
		Tags:        tags,
		Ratings:     RatingsDTO{Average: p.RatingAverage, Count: p.RatingCount},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toCategoryRef(c *catalog.Category) *CategoryRefDTO {
	if c == nil {
		return nil
	}
	return &CategoryRefDTO{ID: c.ID.String(), Name: c.Name, Slug: c.Slug}
}

func toCategoryDTO(c *catalog.Category, productCount int64) *CategoryDTO {
	var parent *string
	if c.ParentID != nil {
		s := c.ParentID.String()
		parent = &s
	}
	keywords := c.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return &CategoryDTO{
		ID:          c.ID.String(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		Parent:      parent,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		Metadata: CategoryMetadataDTO{
			SEOTitle:       c.MetaTitle,
			SEODescription: c.MetaDesc,
			Keywords:       keywords,
		},
		ProductCount: productCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
