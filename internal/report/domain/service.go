package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	GenerateSalesReport(ctx context.Context, start, end time.Time, reportType ReportType, pharmacistID string) (Report, error)
	GenerateInventoryReport(ctx context.Context, pharmacistID string) (Report, error)
	GenerateLowStockReport(ctx context.Context, pharmacistID string) (Report, error)
	GenerateExpiringStockReport(ctx context.Context, daysAhead int, pharmacistID string) (Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
	ListAll(ctx context.Context) ([]Report, error)

	// Dashboard serves the landing tiles, from cache when fresh.
	Dashboard(ctx context.Context) (DashboardStats, error)
}

// StatsCache holds the dashboard tiles between recomputations. A miss is
// (zero, false, nil); cache errors are soft and never fail a dashboard read.
type StatsCache interface {
	Get(ctx context.Context) (DashboardStats, bool, error)
	Set(ctx context.Context, stats DashboardStats) error
}

var (
	ErrNotFound     = errors.New("report_not_found")
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidRange = errors.New("invalid_date_range")
	ErrInvalidType  = errors.New("invalid_report_type")
)
