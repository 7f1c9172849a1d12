package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopadmin/backend/internal/application/dashboard"
)

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	BaseHandler
	dashboard *dashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: service}
}

// RegisterRoutes mounts the dashboard routes on rg
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dash := rg.Group("/dashboard")
	{
		dash.GET("/stats", h.Stats)
		dash.GET("/recent-orders", h.RecentOrders)
		dash.GET("/analytics", h.Analytics)
	}
}

// Stats godoc
// @Summary  Get storefront headline counters
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.GetStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// RecentOrders godoc
// @Summary  Get the most recently placed orders
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /dashboard/recent-orders [get]
func (h *DashboardHandler) RecentOrders(c *gin.Context) {
	limit, err := positiveIntQuery(c, "limit")
	if err != nil {
		h.BadRequest(c, "Invalid limit")
		return
	}

	orders, err := h.dashboard.GetRecentOrders(c.Request.Context(), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orders)
}

// Analytics godoc
// @Summary  Get sales analytics over a trailing window
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   /dashboard/analytics [get]
func (h *DashboardHandler) Analytics(c *gin.Context) {
	period, err := positiveIntQuery(c, "period")
	if err != nil {
		h.BadRequest(c, "Invalid period")
		return
	}

	analytics, err := h.dashboard.GetAnalytics(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, analytics)
}

// positiveIntQuery reads an optional positive integer query parameter.
// Zero means the parameter was absent and the service default applies.
func positiveIntQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}
