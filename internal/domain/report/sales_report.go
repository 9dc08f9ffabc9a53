package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary provides aggregated store statistics for the period
// This is a CQRS read model optimized for querying
type SalesSummary struct {
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	TotalOrders   int64           `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	ItemsSold     int64           `json:"items_sold"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// StatusBreakdown counts orders per lifecycle status
type StatusBreakdown struct {
	Status     string          `json:"status"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// DailySalesTrend represents daily sales trend data
type DailySalesTrend struct {
	Date       time.Time       `json:"date"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
	ItemsSold  int64           `json:"items_sold"`
}

// ProductSalesRanking represents product sales ranking by units sold
type ProductSalesRanking struct {
	Rank        int             `json:"rank"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category,omitempty"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Filter defines filtering options for sales reports
type Filter struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TopN      int       `json:"top_n,omitempty"`
}

// SalesReportRepository defines the interface for sales report queries
type SalesReportRepository interface {
	// GetSalesSummary returns aggregated sales summary for the period
	GetSalesSummary(ctx context.Context, filter Filter) (*SalesSummary, error)

	// GetStatusBreakdown returns order counts grouped by status
	GetStatusBreakdown(ctx context.Context, filter Filter) ([]StatusBreakdown, error)

	// GetDailySalesTrend returns daily sales trend data
	GetDailySalesTrend(ctx context.Context, filter Filter) ([]DailySalesTrend, error)

	// GetProductSalesRanking returns top N products by units sold
	GetProductSalesRanking(ctx context.Context, filter Filter) ([]ProductSalesRanking, error)
}
