package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type ReportType string

const (
	TypeDailySales    ReportType = "DAILY_SALES"
	TypeWeeklySales   ReportType = "WEEKLY_SALES"
	TypeMonthlySales  ReportType = "MONTHLY_SALES"
	TypeInventory     ReportType = "INVENTORY"
	TypeLowStock      ReportType = "LOW_STOCK"
	TypeExpiringStock ReportType = "EXPIRING_STOCK"
)

// Report is a stored snapshot of an aggregate run, kept for the records
// screen. Amounts are minor currency units.
type Report struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ReportType  ReportType   `gorm:"not null;size:50" json:"report_type"`
	StartDate   time.Time    `gorm:"not null" json:"start_date"`
	EndDate     time.Time    `gorm:"not null" json:"end_date"`
	TotalSales  int64        `gorm:"not null" json:"total_sales"`
	TotalOrders int          `gorm:"not null" json:"total_orders"`
	Summary     string       `gorm:"type:text" json:"summary"`
	GeneratedBy snowflake.ID `gorm:"index" json:"generated_by"`
	GeneratedAt time.Time    `gorm:"not null" json:"generated_at"`
}

// TableName sets the database table name.
func (Report) TableName() string { return "reports" }

// DashboardStats is the point-in-time tile set for the landing screen.
type DashboardStats struct {
	TodaySales      int64 `json:"today_sales"`
	WeekSales       int64 `json:"week_sales"`
	MonthSales      int64 `json:"month_sales"`
	TodayOrders     int64 `json:"today_orders"`
	LowStockCount   int64 `json:"low_stock_count"`
	ExpiringBatches int   `json:"expiring_batches_count"`
}
