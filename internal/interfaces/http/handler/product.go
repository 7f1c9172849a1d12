package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes mounts the product routes on rg
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		// gin cannot mix a static /category segment with the :id wildcard,
		// so /products/category/:categoryId is matched via a second wildcard
		products.GET("/:id/:categoryId", h.ListByCategory)
		products.POST("", h.Create)
		products.PUT("/:id", h.Update)
		products.PATCH("/:id/stock", h.UpdateStock)
		products.DELETE("/:id", h.Delete)
	}
}

// ListProductsRequest represents the product list query parameters
type ListProductsRequest struct {
	Page      int      `form:"page" binding:"omitempty,min=1"`
	Limit     int      `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string   `form:"search"`
	Category  string   `form:"category"`
	Status    string   `form:"status"`
	MinPrice  *float64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice  *float64 `form:"maxPrice" binding:"omitempty,min=0"`
	SortBy    string   `form:"sortBy"`
	SortOrder string   `form:"sortOrder"`
}

// List godoc
// @Summary  List products
// @Tags     products
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.list(c, catalogapp.ListProductsQuery{
		Page:      req.Page,
		Limit:     req.Limit,
		Search:    req.Search,
		Category:  req.Category,
		Status:    req.Status,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
}

// ListByCategory godoc
// @Summary  List products in a category
// @Tags     products
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /products/category/{categoryId} [get]
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	if c.Param("id") != "category" {
		h.NotFound(c, "Resource not found")
		return
	}

	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.list(c, catalogapp.ListProductsQuery{
		Page:      req.Page,
		Limit:     req.Limit,
		Category:  c.Param("categoryId"),
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
}

func (h *ProductHandler) list(c *gin.Context, query catalogapp.ListProductsQuery) {
	products, total, err := h.products.ListProducts(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, limit := query.Page, query.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	h.Paginated(c, products, total, page, limit)
}

// Get godoc
// @Summary  Get a product by ID
// @Tags     products
// @Produce  json
// @Success  200 {object} dto.Response
// @Failure  404 {object} dto.Response
// @Router   /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Create godoc
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Success  201 {object} dto.Response
// @Failure  400 {object} dto.Response
// @Router   /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// Update godoc
// @Summary  Update a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Success  200 {object} dto.Response
// @Failure  404 {object} dto.Response
// @Router   /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// UpdateStockRequest represents a stock adjustment
type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required,min=0"`
}

// UpdateStock godoc
// @Summary  Set the stock level of a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Success  200 {object} dto.Response
// @Failure  404 {object} dto.Response
// @Router   /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.UpdateStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete godoc
// @Summary  Delete a product
// @Tags     products
// @Produce  json
// @Success  200 {object} dto.Response
// @Failure  404 {object} dto.Response
// @Router   /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Message(c, "Product deleted successfully")
}
