package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/shopadmin/backend/internal/domain/shared"
)

const (
	// DefaultAnalyticsPeriod is the trailing window, in days, when none is given
	DefaultAnalyticsPeriod = 30
	trendDays              = 7
	lowStockLimit          = 10
	recentOrderLimit       = 5
	topProductLimit        = 5

	statsCacheKey = "dashboard:stats"
)

// Repository exposes the read-side aggregations behind the dashboard.
// Every revenue aggregate excludes cancelled orders.
type Repository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (float64, error)
	OrdersByStatus(ctx context.Context) ([]StatusBreakdown, error)
	ProductsByCategory(ctx context.Context) ([]CategoryBreakdown, error)
	LowStockProducts(ctx context.Context, limit int) ([]LowStockProduct, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
	RevenueByDay(ctx context.Context, from, to time.Time) ([]DailyRevenue, error)
	SalesByCategory(ctx context.Context, from, to time.Time) ([]CategorySales, error)
	// TopProducts returns best sellers by units sold. A zero from drops
	// the window's lower bound.
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
}

// Cache stores computed dashboard payloads for a short period. Get returns
// shared.ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Service computes the dashboard aggregates
type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService creates a new dashboard service. cache may be nil to disable
// caching.
func NewService(repo Repository, cache Cache, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, now: time.Now}
}

// GetStats assembles the dashboard overview. Results are cached briefly
// because the endpoint is polled by the admin UI.
func (s *Service) GetStats(ctx context.Context) (*StatsDTO, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey); err == nil {
			var cached StatsDTO
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			// A failed cache write never fails the request
			_ = s.cache.Set(ctx, statsCacheKey, raw, s.cacheTTL)
		}
	}
	return stats, nil
}

func (s *Service) computeStats(ctx context.Context) (*StatsDTO, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	stats := &StatsDTO{}
	var err error
	if stats.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.repo.CountOrders(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.repo.CountCategories(ctx); err != nil {
		return nil, err
	}
	if stats.MonthlyRevenue, err = s.repo.RevenueBetween(ctx, monthStart, now); err != nil {
		return nil, err
	}
	prevRevenue, err := s.repo.RevenueBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return nil, err
	}
	stats.RevenueChange = revenueChange(stats.MonthlyRevenue, prevRevenue)

	if stats.OrdersByStatus, err = s.repo.OrdersByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.ProductsByCategory, err = s.repo.ProductsByCategory(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockProducts, err = s.repo.LowStockProducts(ctx, lowStockLimit); err != nil {
		return nil, err
	}
	if stats.RecentOrders, err = s.repo.RecentOrders(ctx, recentOrderLimit); err != nil {
		return nil, err
	}
	if stats.WeeklyTrend, err = s.repo.RevenueByDay(ctx, now.AddDate(0, 0, -trendDays), now); err != nil {
		return nil, err
	}
	// best sellers on the overview are all-time, not windowed
	if stats.TopProducts, err = s.repo.TopProducts(ctx, time.Time{}, now, topProductLimit); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetRecentOrders returns the latest orders, newest first
func (s *Service) GetRecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	if limit < 1 {
		limit = 10
	}
	return s.repo.RecentOrders(ctx, limit)
}

// GetAnalytics returns the revenue series and best sellers for a trailing
// window of periodDays
func (s *Service) GetAnalytics(ctx context.Context, periodDays int) (*AnalyticsDTO, error) {
	if periodDays < 1 {
		periodDays = DefaultAnalyticsPeriod
	}
	now := s.now()
	from := now.AddDate(0, 0, -periodDays)

	revenueByDay, err := s.repo.RevenueByDay(ctx, from, now)
	if err != nil {
		return nil, err
	}
	salesByCategory, err := s.repo.SalesByCategory(ctx, from, now)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.repo.TopProducts(ctx, from, now, topProductLimit)
	if err != nil {
		return nil, err
	}
	return &AnalyticsDTO{
		Period:          periodDays,
		RevenueByDay:    revenueByDay,
		SalesByCategory: salesByCategory,
		TopProducts:     topProducts,
	}, nil
}

// revenueChange is the month-over-month percentage, 0 when there was no
// prior-month revenue, rounded to 2 decimal places.
func revenueChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round((current-previous)/previous*100*100) / 100
}
