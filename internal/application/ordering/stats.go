package ordering

import "context"

// StatusCount is one row of the orders-by-status aggregation
type StatusCount struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"totalAmount"`
}

// OrderStatsDTO summarizes the order book. Revenue excludes cancelled orders.
type OrderStatsDTO struct {
	TotalOrders  int64         `json:"totalOrders"`
	TotalRevenue float64       `json:"totalRevenue"`
	ByStatus     []StatusCount `json:"byStatus"`
}

// OrderStatsReader exposes the aggregate queries behind GET /orders/stats
type OrderStatsReader interface {
	CountOrdersByStatus(ctx context.Context) ([]StatusCount, error)
	TotalOrderRevenue(ctx context.Context) (float64, error)
}

// OrderStatsService computes order book summaries
type OrderStatsService struct {
	reader OrderStatsReader
}

// NewOrderStatsService creates a new order stats service
func NewOrderStatsService(reader OrderStatsReader) *OrderStatsService {
	return &OrderStatsService{reader: reader}
}

// GetOrderStats returns order counts grouped by status and overall revenue
func (s *OrderStatsService) GetOrderStats(ctx context.Context) (*OrderStatsDTO, error) {
	byStatus, err := s.reader.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.reader.TotalOrderRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats := &OrderStatsDTO{ByStatus: byStatus, TotalRevenue: revenue}
	for _, row := range byStatus {
		stats.TotalOrders += row.Count
	}
	return stats, nil
}
