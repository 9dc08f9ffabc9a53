package persistence

import (
	"context"
	"time"

	"github.com/craftshop/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalesReportRepository implements SalesReportRepository using GORM
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// GetSalesSummary returns aggregated sales summary for the period
func (r *GormSalesReportRepository) GetSalesSummary(ctx context.Context, filter report.Filter) (*report.SalesSummary, error) {
	type summaryResult struct {
		TotalOrders  int64
		TotalRevenue decimal.Decimal
		ItemsSold    int64
	}

	var result summaryResult

	// revenue comes from the lines: an order's amount is the sum of its
	// line totals, and summing lines stays correct under the join fan-out
	err := r.db.WithContext(ctx).Table("orders o").
		Select(`
			COUNT(DISTINCT o.id) as total_orders,
			COALESCE(SUM(oi.price * oi.quantity), 0) as total_revenue,
			COALESCE(SUM(oi.quantity), 0) as items_sold
		`).
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	var avgOrderValue decimal.Decimal
	if result.TotalOrders > 0 {
		avgOrderValue = result.TotalRevenue.Div(decimal.NewFromInt(result.TotalOrders)).Round(2)
	}

	return &report.SalesSummary{
		PeriodStart:   filter.StartDate,
		PeriodEnd:     filter.EndDate,
		TotalOrders:   result.TotalOrders,
		TotalRevenue:  result.TotalRevenue,
		ItemsSold:     result.ItemsSold,
		AvgOrderValue: avgOrderValue,
	}, nil
}

// GetStatusBreakdown returns order counts grouped by status
func (r *GormSalesReportRepository) GetStatusBreakdown(ctx context.Context, filter report.Filter) ([]report.StatusBreakdown, error) {
	var results []report.StatusBreakdown

	err := r.db.WithContext(ctx).Table("orders").
		Select(`
			status,
			COUNT(*) as order_count,
			COALESCE(SUM(amount), 0) as revenue
		`).
		Where("created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Group("status").
		Order("order_count DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

// GetDailySalesTrend returns daily sales trend data
func (r *GormSalesReportRepository) GetDailySalesTrend(ctx context.Context, filter report.Filter) ([]report.DailySalesTrend, error) {
	type dailyResult struct {
		Date       time.Time
		OrderCount int64
		Revenue    decimal.Decimal
		ItemsSold  int64
	}

	var results []dailyResult

	err := r.db.WithContext(ctx).Table("orders o").
		Select(`
			DATE(o.created_at) as date,
			COUNT(DISTINCT o.id) as order_count,
			COALESCE(SUM(oi.price * oi.quantity), 0) as revenue,
			COALESCE(SUM(oi.quantity), 0) as items_sold
		`).
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Group("DATE(o.created_at)").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	trends := make([]report.DailySalesTrend, len(results))
	for i, row := range results {
		trends[i] = report.DailySalesTrend{
			Date:       row.Date,
			OrderCount: row.OrderCount,
			Revenue:    row.Revenue,
			ItemsSold:  row.ItemsSold,
		}
	}

	return trends, nil
}

// GetProductSalesRanking returns top N products by units sold
func (r *GormSalesReportRepository) GetProductSalesRanking(ctx context.Context, filter report.Filter) ([]report.ProductSalesRanking, error) {
	type rankingResult struct {
		ProductID   uuid.UUID
		ProductName string
		Category    string
		UnitsSold   int64
		Revenue     decimal.Decimal
	}

	var results []rankingResult

	topN := filter.TopN
	if topN <= 0 {
		topN = 10
	}

	err := r.db.WithContext(ctx).Table("order_items oi").
		Select(`
			oi.product_id,
			oi.name as product_name,
			COALESCE(p.category, '') as category,
			COALESCE(SUM(oi.quantity), 0) as units_sold,
			COALESCE(SUM(oi.price * oi.quantity), 0) as revenue
		`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Group("oi.product_id, oi.name, p.category").
		Order("units_sold DESC").
		Limit(topN).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	rankings := make([]report.ProductSalesRanking, len(results))
	for i, row := range results {
		rankings[i] = report.ProductSalesRanking{
			Rank:        i + 1,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Category:    row.Category,
			UnitsSold:   row.UnitsSold,
			Revenue:     row.Revenue,
		}
	}

	return rankings, nil
}

// Ensure GormSalesReportRepository implements SalesReportRepository
var _ report.SalesReportRepository = (*GormSalesReportRepository)(nil)
