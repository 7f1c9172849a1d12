package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appordering "github.com/shopadmin/backend/internal/application/ordering"
)

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	BaseHandler
	orders *appordering.OrderService
	stats  *appordering.OrderStatsService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *appordering.OrderService, stats *appordering.OrderStatsService) *OrderHandler {
	return &OrderHandler{orders: orders, stats: stats}
}

// RegisterRoutes mounts the order routes on rg
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		// /orders/stats shares the :id wildcard, Get dispatches on it
		orders.GET("/:id", h.Get)
		orders.POST("", h.Create)
		orders.PUT("/:id", h.Update)
		orders.PATCH("/:id/status", h.UpdateStatus)
		orders.DELETE("/:id", h.Delete)
	}
}

// ListOrdersRequest represents the order list query parameters
type ListOrdersRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// List godoc
// @Summary  List orders
// @Tags     orders
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req ListOrdersRequest
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
		limit = 10
	}

	query := appordering.ListOrdersQuery{
		Page:      page,
		Limit:     limit,
		Search:    req.Search,
		Status:    req.Status,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid startDate")
			return
		}
		query.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			h.BadRequest(c, "Invalid endDate")
			return
		}
		query.EndDate = &end
	}

	orders, total, err := h.orders.ListOrders(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Paginated(c, orders, total, page, limit)
}

// Get godoc
// @Summary  Get an order by ID
// @Tags     orders
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	if c.Param("id") == "stats" {
		h.Stats(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Stats godoc
// @Summary  Get order book summary counts
// @Tags     orders
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /orders/stats [get]
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.stats.GetOrderStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// Create godoc
// @Summary  Place an order
// @Tags     orders
// @Accept   json
// @Accept   mpfd
// @Produce  json
// @Success  201 {object} dto.Response
// @Router   /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req appordering.PlaceOrderRequest
	multipart := strings.HasPrefix(c.ContentType(), "multipart/form-data")

	if multipart {
		parsed, err := placeOrderFromForm(c)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		req = parsed
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if multipart {
		if file, err := c.FormFile("paymentSlip"); err == nil && file != nil {
			order, err = h.attachSlip(c, order.ID, file.Filename, file)
			if err != nil {
				h.HandleDomainError(c, err)
				return
			}
		}
	}

	h.Created(c, order)
}

// Update godoc
// @Summary  Update an order's customer, addresses, payment, and notes
// @Tags     orders
// @Accept   json
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req appordering.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.UpdateOrder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateStatusBody is the request body for a status transition
type UpdateStatusBody struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateStatus godoc
// @Summary  Change an order's status
// @Tags     orders
// @Accept   json
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, appordering.UpdateStatusRequest{
		Status: body.Status,
		Note:   body.Note,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete godoc
// @Summary  Delete an order
// @Tags     orders
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Message(c, "Order deleted successfully")
}

var errInvalidItems = errors.New("items must be a JSON array of {product, quantity}")

func (h *OrderHandler) attachSlip(c *gin.Context, orderID, filename string, file *multipart.FileHeader) (*appordering.OrderDTO, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, err
	}
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	contentType := file.Header.Get("Content-Type")
	return h.orders.AttachPaymentSlip(c.Request.Context(), id, filename, src, file.Size, contentType)
}

// placeOrderFromForm normalizes the flattened multipart encoding
// (customer[name], shippingAddress[street], items as a JSON string)
// into the same request shape as the JSON body.
func placeOrderFromForm(c *gin.Context) (appordering.PlaceOrderRequest, error) {
	req := appordering.PlaceOrderRequest{
		Customer: appordering.CustomerDTO{
			Name:  c.PostForm("customer[name]"),
			Email: c.PostForm("customer[email]"),
			Phone: c.PostForm("customer[phone]"),
		},
		ShippingAddress: formAddress(c, "shippingAddress"),
		PaymentMethod:   c.PostForm("paymentMethod"),
		Notes:           c.PostForm("notes"),
	}

	if itemsJSON := c.PostForm("items"); itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &req.Items); err != nil {
			return req, errInvalidItems
		}
	}

	if billing := formAddress(c, "billingAddress"); billing != (appordering.AddressDTO{}) {
		req.BillingAddress = &billing
	}

	return req, nil
}

func formAddress(c *gin.Context, field string) appordering.AddressDTO {
	return appordering.AddressDTO{
		Street:  c.PostForm(field + "[street]"),
		City:    c.PostForm(field + "[city]"),
		State:   c.PostForm(field + "[state]"),
		ZipCode: c.PostForm(field + "[zipCode]"),
		Country: c.PostForm(field + "[country]"),
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
