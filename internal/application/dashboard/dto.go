package dashboard

import "time"

// StatusBreakdown is one row of the orders-by-status aggregation
type StatusBreakdown struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"totalAmount"`
}

// CategoryBreakdown groups product counts and inventory value by category name
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Count      int64   `json:"count"`
	TotalValue float64 `json:"totalValue"`
}

// LowStockProduct is a product at or below the low stock threshold
type LowStockProduct struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	SKU    string `json:"sku"`
	Stock  int    `json:"stock"`
	Status string `json:"status"`
}

// RecentOrder is the trimmed order shape shown on the dashboard
type RecentOrder struct {
	ID           string    `json:"id"`
	OrderNumber  string    `json:"orderNumber"`
	CustomerName string    `json:"customerName"`
	Total        float64   `json:"total"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DailyRevenue is one point of a per-day revenue series
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// CategorySales is one row of the per-category sales aggregation
type CategorySales struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Quantity int64   `json:"quantity"`
}

// TopProduct is one row of the best-sellers aggregation
type TopProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	TotalSold int64   `json:"totalSold"`
	Revenue   float64 `json:"revenue"`
}

// StatsDTO is the response of the dashboard stats endpoint
type StatsDTO struct {
	TotalProducts      int64               `json:"totalProducts"`
	TotalOrders        int64               `json:"totalOrders"`
	TotalCategories    int64               `json:"totalCategories"`
	MonthlyRevenue     float64             `json:"monthlyRevenue"`
	RevenueChange      float64             `json:"revenueChange"`
	OrdersByStatus     []StatusBreakdown   `json:"ordersByStatus"`
	ProductsByCategory []CategoryBreakdown `json:"productsByCategory"`
	LowStockProducts   []LowStockProduct   `json:"lowStockProducts"`
	RecentOrders       []RecentOrder       `json:"recentOrders"`
	WeeklyTrend        []DailyRevenue      `json:"weeklyTrend"`
	TopProducts        []TopProduct        `json:"topProducts"`
}

// AnalyticsDTO is the response of the dashboard analytics endpoint
type AnalyticsDTO struct {
	Period          int             `json:"period"`
	RevenueByDay    []DailyRevenue  `json:"revenueByDay"`
	SalesByCategory []CategorySales `json:"salesByCategory"`
	TopProducts     []TopProduct    `json:"topProducts"`
}
