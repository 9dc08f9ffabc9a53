package report

import (
	"context"
	"time"

	"github.com/craftshop/backend/internal/domain/report"
	"github.com/craftshop/backend/internal/domain/shared"
)

// defaultPeriod is used when the caller gives no date range
const defaultPeriod = 30 * 24 * time.Hour

// ReportService provides the admin sales dashboard queries
type ReportService struct {
	salesRepo report.SalesReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(salesRepo report.SalesReportRepository) *ReportService {
	return &ReportService{salesRepo: salesRepo}
}

// SalesReportFilter defines the request filter for sales reports.
// An omitted range defaults to the last 30 days.
type SalesReportFilter struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02"`
	TopN      int       `form:"top_n" binding:"omitempty,gt=0,lte=100"`
}

// SalesDashboardResponse bundles everything the admin dashboard renders
type SalesDashboardResponse struct {
	Summary  *report.SalesSummary         `json:"summary"`
	ByStatus []report.StatusBreakdown     `json:"by_status"`
	Trend    []report.DailySalesTrend     `json:"trend"`
	Ranking  []report.ProductSalesRanking `json:"top_products"`
}

// GetSalesSummary returns the aggregated sales summary for the period
func (s *ReportService) GetSalesSummary(ctx context.Context, filter SalesReportFilter) (*report.SalesSummary, error) {
	domainFilter, err := s.toDomainFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.salesRepo.GetSalesSummary(ctx, domainFilter)
}

// GetStatusBreakdown returns order counts grouped by lifecycle status
func (s *ReportService) GetStatusBreakdown(ctx context.Context, filter SalesReportFilter) ([]report.StatusBreakdown, error) {
	domainFilter, err := s.toDomainFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.salesRepo.GetStatusBreakdown(ctx, domainFilter)
}

// GetDailySalesTrend returns per-day order counts and revenue
func (s *ReportService) GetDailySalesTrend(ctx context.Context, filter SalesReportFilter) ([]report.DailySalesTrend, error) {
	domainFilter, err := s.toDomainFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.salesRepo.GetDailySalesTrend(ctx, domainFilter)
}

// GetProductSalesRanking returns the top products by units sold
func (s *ReportService) GetProductSalesRanking(ctx context.Context, filter SalesReportFilter) ([]report.ProductSalesRanking, error) {
	domainFilter, err := s.toDomainFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.salesRepo.GetProductSalesRanking(ctx, domainFilter)
}

// GetDashboard fetches every dashboard section in one call
func (s *ReportService) GetDashboard(ctx context.Context, filter SalesReportFilter) (*SalesDashboardResponse, error) {
	domainFilter, err := s.toDomainFilter(filter)
	if err != nil {
		return nil, err
	}

	summary, err := s.salesRepo.GetSalesSummary(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.salesRepo.GetStatusBreakdown(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	trend, err := s.salesRepo.GetDailySalesTrend(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	ranking, err := s.salesRepo.GetProductSalesRanking(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return &SalesDashboardResponse{
		Summary:  summary,
		ByStatus: byStatus,
		Trend:    trend,
		Ranking:  ranking,
	}, nil
}

func (s *ReportService) toDomainFilter(filter SalesReportFilter) (report.Filter, error) {
	end := filter.EndDate
	if end.IsZero() {
		end = time.Now()
	}
	start := filter.StartDate
	if start.IsZero() {
		start = end.Add(-defaultPeriod)
	}
	if end.Before(start) {
		return report.Filter{}, shared.NewDomainError("INVALID_PERIOD", "End date cannot be before start date")
	}

	topN := filter.TopN
	if topN <= 0 {
		topN = 10
	}

	return report.Filter{
		StartDate: start,
		EndDate:   end,
		TopN:      topN,
	}, nil
}
