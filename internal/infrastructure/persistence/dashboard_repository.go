package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shopadmin/backend/internal/application/dashboard"
	appordering "github.com/shopadmin/backend/internal/application/ordering"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/ordering"
)

// GormDashboardRepository implements the dashboard read-side aggregations
// using GORM's query builder. Revenue queries exclude cancelled orders.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// CountProducts counts all products
func (r *GormDashboardRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error
	return count, err
}

// CountOrders counts all orders
func (r *GormDashboardRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ordering.Order{}).Count(&count).Error
	return count, err
}

// CountCategories counts all categories
func (r *GormDashboardRepository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Category{}).Count(&count).Error
	return count, err
}

// RevenueBetween sums order totals in [from, to), cancelled orders excluded
func (r *GormDashboardRepository) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("status <> ?", ordering.OrderStatusCancelled).
		Scan(&revenue).Error
	return revenue, err
}

// OrdersByStatus groups order counts and amounts by status
func (r *GormDashboardRepository) OrdersByStatus(ctx context.Context) ([]dashboard.StatusBreakdown, error) {
	var rows []dashboard.StatusBreakdown
	err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(total), 0) as amount").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

// ProductsByCategory groups product counts and inventory value by category name
func (r *GormDashboardRepository) ProductsByCategory(ctx context.Context) ([]dashboard.CategoryBreakdown, error) {
	var rows []dashboard.CategoryBreakdown
	err := r.db.WithContext(ctx).
		Table("products p").
		Select("c.name as category, COUNT(*) as count, COALESCE(SUM(p.price * p.stock), 0) as total_value").
		Joins("JOIN categories c ON c.id = p.category_id").
		Group("c.name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// LowStockProducts returns products at or below the low stock threshold,
// lowest stock first
func (r *GormDashboardRepository) LowStockProducts(ctx context.Context, limit int) ([]dashboard.LowStockProduct, error) {
	var rows []dashboard.LowStockProduct
	err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Select("id, name, sku, stock, status").
		Where("stock <= ?", catalog.LowStockThreshold).
		Order("stock ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// RecentOrders returns the most recent orders, newest first
func (r *GormDashboardRepository) RecentOrders(ctx context.Context, limit int) ([]dashboard.RecentOrder, error) {
	var rows []dashboard.RecentOrder
	err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("id, order_number, customer_name, total, status, created_at").
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// RevenueByDay returns the per-day revenue and order counts in [from, to),
// date ascending, cancelled orders excluded
func (r *GormDashboardRepository) RevenueByDay(ctx context.Context, from, to time.Time) ([]dashboard.DailyRevenue, error) {
	var rows []dashboard.DailyRevenue
	err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("CAST(DATE(created_at) AS TEXT) as date, COALESCE(SUM(total), 0) as revenue, COUNT(*) as orders").
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("status <> ?", ordering.OrderStatusCancelled).
		Group("CAST(DATE(created_at) AS TEXT)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

// SalesByCategory groups revenue and units sold by category name in
// [from, to), highest revenue first, cancelled orders excluded
func (r *GormDashboardRepository) SalesByCategory(ctx context.Context, from, to time.Time) ([]dashboard.CategorySales, error) {
	var rows []dashboard.CategorySales
	err := r.db.WithContext(ctx).
		Table("order_items oi").
		Select("c.name as category, COALESCE(SUM(oi.total), 0) as revenue, SUM(oi.quantity) as quantity").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Joins("JOIN categories c ON c.id = p.category_id").
		Where("o.created_at >= ? AND o.created_at < ?", from, to).
		Where("o.status <> ?", ordering.OrderStatusCancelled).
		Group("c.name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

// TopProducts returns the best-selling products by units sold in [from, to),
// cancelled orders excluded. A zero from makes the query all-time.
func (r *GormDashboardRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]dashboard.TopProduct, error) {
	var rows []dashboard.TopProduct
	q := r.db.WithContext(ctx).
		Table("order_items oi").
		Select("oi.product_id as product_id, oi.name as name, SUM(oi.quantity) as total_sold, COALESCE(SUM(oi.total), 0) as revenue").
		Joins("JOIN orders o ON o.id = oi.order_id")
	if !from.IsZero() {
		q = q.Where("o.created_at >= ? AND o.created_at < ?", from, to)
	}
	err := q.Where("o.status <> ?", ordering.OrderStatusCancelled).
		Group("oi.product_id, oi.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// CountOrdersByStatus groups order counts and amounts by status for the
// order stats endpoint
func (r *GormDashboardRepository) CountOrdersByStatus(ctx context.Context) ([]appordering.StatusCount, error) {
	var rows []appordering.StatusCount
	err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(total), 0) as amount").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

// TotalOrderRevenue sums all order totals, cancelled orders excluded
func (r *GormDashboardRepository) TotalOrderRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status <> ?", ordering.OrderStatusCancelled).
		Scan(&revenue).Error
	return revenue, err
}

var (
	_ dashboard.Repository         = (*GormDashboardRepository)(nil)
	_ appordering.OrderStatsReader = (*GormDashboardRepository)(nil)
)
