package services

import (
	"context"
	"fmt"
	"time"

	"medivision/internal/caching"
	"medivision/internal/models"
	"medivision/internal/repositories"

	"github.com/rs/zerolog/log"
)

const dashboardCacheTTL = 2 * time.Minute

// DashboardStats summarizes a date range for the landing screen.
type DashboardStats struct {
	TotalSales      float64 `json:"total_sales"`
	OrderCount      int     `json:"order_count"`
	LowStockCount   int     `json:"low_stock_count"`
	NearExpiryCount int     `json:"near_expiry_count"`
}

type DashboardService interface {
	Stats(ctx context.Context, from, to string) (*DashboardStats, error)
	RecentOrders(ctx context.Context, limit int) ([]*models.SalesInvoice, error)
}

type dashboardService struct {
	db        repositories.Database
	salesRepo repositories.SalesRepository
	cache     caching.CacheService
}

func NewDashboardService(db repositories.Database, cache caching.CacheService) DashboardService {
	return &dashboardService{
		db:        db,
		salesRepo: repositories.NewSalesRepository(db),
		cache:     cache,
	}
}

func (s *dashboardService) Stats(ctx context.Context, from, to string) (*DashboardStats, error) {
	cacheKey := fmt.Sprintf("stats:%s:%s", from, to)
	if cached, err := s.cache.GetDashboard(ctx, cacheKey); err == nil && cached != nil {
		return statsFromCache(cached), nil
	}

	stats := &DashboardStats{}
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(grand_total), 0), COUNT(*) FROM sales_invoices
		 WHERE invoice_date BETWEEN $1 AND $2`, from, to).
		Scan(&stats.TotalSales, &stats.OrderCount)
	if err != nil {
		return nil, err
	}
	err = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE current_stock < 10`).
		Scan(&stats.LowStockCount)
	if err != nil {
		return nil, err
	}
	err = s.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT product_name) FROM purchase_entries
		 WHERE exp_date IS NOT NULL AND exp_date <> '' AND exp_date <= $1`,
		time.Now().AddDate(0, 3, 0).Format("2006-01-02")).
		Scan(&stats.NearExpiryCount)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetDashboard(ctx, cacheKey, map[string]interface{}{
		"total_sales":       stats.TotalSales,
		"order_count":       stats.OrderCount,
		"low_stock_count":   stats.LowStockCount,
		"near_expiry_count": stats.NearExpiryCount,
	}, dashboardCacheTTL); err != nil {
		log.Debug().Err(err).Msg("dashboard cache write failed")
	}
	return stats, nil
}

func statsFromCache(cached map[string]interface{}) *DashboardStats {
	stats := &DashboardStats{}
	if v, ok := cached["total_sales"].(float64); ok {
		stats.TotalSales = v
	}
	if v, ok := cached["order_count"].(float64); ok {
		stats.OrderCount = int(v)
	}
	if v, ok := cached["low_stock_count"].(float64); ok {
		stats.LowStockCount = int(v)
	}
	if v, ok := cached["near_expiry_count"].(float64); ok {
		stats.NearExpiryCount = int(v)
	}
	return stats
}

func (s *dashboardService) RecentOrders(ctx context.Context, limit int) ([]*models.SalesInvoice, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.salesRepo.ListHeaders(ctx, limit)
}
