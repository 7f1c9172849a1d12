package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categories *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// RegisterRoutes mounts the category routes on rg
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		// /categories/tree shares the :id wildcard, Get dispatches on it
		categories.GET("/:id", h.Get)
		categories.POST("", h.Create)
		categories.PUT("/:id", h.Update)
		categories.PATCH("/:id/toggle", h.ToggleActive)
		categories.DELETE("/:id", h.Delete)
	}
}

// ListCategoriesRequest represents the category list query parameters
type ListCategoriesRequest struct {
	Page      int     `form:"page" binding:"omitempty,min=1"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string  `form:"search"`
	IsActive  *bool   `form:"isActive"`
	Parent    *string `form:"parent"`
	SortBy    string  `form:"sortBy"`
	SortOrder string  `form:"sortOrder"`
}

// List godoc
// @Summary  List categories
// @Tags     categories
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var req ListCategoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 50
	}

	categories, total, err := h.categories.ListCategories(c.Request.Context(), catalogapp.ListCategoriesQuery{
		Page:      page,
		Limit:     limit,
		Search:    req.Search,
		IsActive:  req.IsActive,
		Parent:    req.Parent,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Paginated(c, categories, total, page, limit)
}

// Get godoc
// @Summary  Get a category by ID
// @Tags     categories
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	if c.Param("id") == "tree" {
		h.Tree(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// Tree godoc
// @Summary  Get the active category tree
// @Tags     categories
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /categories/tree [get]
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.categories.GetCategoryTree(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tree)
}

// Create godoc
// @Summary  Create a category
// @Tags     categories
// @Accept   json
// @Produce  json
// @Success  201 {object} dto.Response
// @Router   /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, category)
}

// Update godoc
// @Summary  Update a category
// @Tags     categories
// @Accept   json
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// ToggleActive godoc
// @Summary  Toggle a category's active flag
// @Tags     categories
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /categories/{id}/toggle [patch]
func (h *CategoryHandler) ToggleActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categories.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete godoc
// @Summary  Delete a category
// @Tags     categories
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Message(c, "Category deleted successfully")
}
