package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	batchrepository "github.com/amancodes12/pharmaease/internal/batch/repository"
	"github.com/amancodes12/pharmaease/internal/clock"
	"github.com/amancodes12/pharmaease/internal/config"
	inventoryrepository "github.com/amancodes12/pharmaease/internal/inventory/repository"
	"github.com/amancodes12/pharmaease/internal/migration"
	orderdomain "github.com/amancodes12/pharmaease/internal/order/domain"
	"github.com/amancodes12/pharmaease/internal/report/cache"
	"github.com/amancodes12/pharmaease/internal/report/domain"
	reportrepository "github.com/amancodes12/pharmaease/internal/report/repository"
)

type fixture struct {
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
	svc   domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, migration.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))
	cfg := config.Config{ExpiryAlertDays: 30, StatsCacheTTL: 5 * time.Minute}

	svc := New(Params{
		DB:            db,
		Log:           zap.NewNop(),
		GenID:         node,
		Clock:         fake,
		Config:        cfg,
		Repo:          reportrepository.Provide(),
		InventoryRepo: inventoryrepository.Provide(),
		BatchRepo:     batchrepository.Provide(),
		Cache:         cache.New(cache.Params{Config: cfg, Log: zap.NewNop(), Clock: fake}),
	})
	return &fixture{db: db, node: node, clock: fake, svc: svc}
}

func (f *fixture) seedOrder(t *testing.T, status orderdomain.OrderStatus, total int64, createdAt time.Time) {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Exec(
		"INSERT INTO orders (id, order_number, pharmacist_id, subtotal, tax, discount, total_amount, status, payment_method, paid, stock_deducted, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, fmt.Sprintf("ORD-%d", id), f.node.Generate(), total, 0, 0, total, string(status), "CASH",
		status == orderdomain.StatusCompleted, status == orderdomain.StatusCompleted, createdAt,
	).Error)
}

func TestSalesReportSumsCompletedOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := f.clock.Now()

	f.seedOrder(t, orderdomain.StatusCompleted, 1000, now.Add(-2*time.Hour))
	f.seedOrder(t, orderdomain.StatusCompleted, 2500, now.Add(-1*time.Hour))
	f.seedOrder(t, orderdomain.StatusPending, 9000, now.Add(-1*time.Hour))
	f.seedOrder(t, orderdomain.StatusCancelled, 7000, now.Add(-30*time.Minute))
	f.seedOrder(t, orderdomain.StatusCompleted, 4000, now.AddDate(0, 0, -10))

	report, err := f.svc.GenerateSalesReport(ctx, now.AddDate(0, 0, -1), now, domain.TypeDailySales, f.node.Generate().String())
	require.NoError(t, err)

	assert.Equal(t, int64(3500), report.TotalSales)
	assert.Equal(t, 2, report.TotalOrders)
	assert.Contains(t, report.Summary, "Total orders: 2")

	stored, err := f.svc.GetByID(ctx, report.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.TypeDailySales, stored.ReportType)
}

func TestSalesReportValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := f.clock.Now()
	pharmacistID := f.node.Generate().String()

	_, err := f.svc.GenerateSalesReport(ctx, now, now.AddDate(0, 0, -1), domain.TypeDailySales, pharmacistID)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = f.svc.GenerateSalesReport(ctx, now.AddDate(0, 0, -1), now, domain.TypeInventory, pharmacistID)
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = f.svc.GenerateSalesReport(ctx, now.AddDate(0, 0, -1), now, domain.TypeDailySales, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestDashboardComputesAndCaches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := f.clock.Now()

	f.seedOrder(t, orderdomain.StatusCompleted, 1200, now.Add(-1*time.Hour))
	f.seedOrder(t, orderdomain.StatusCompleted, 800, now.AddDate(0, 0, -3))

	stats, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), stats.TodaySales)
	assert.Equal(t, int64(2000), stats.WeekSales)
	assert.Equal(t, int64(2000), stats.MonthSales)
	assert.Equal(t, int64(1), stats.TodayOrders)

	// A second read within the TTL serves the cached tiles even though the
	// underlying data changed.
	f.seedOrder(t, orderdomain.StatusCompleted, 5000, now.Add(-10*time.Minute))
	cached, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats, cached)

	f.clock.Advance(10 * time.Minute)
	refreshed, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6200), refreshed.TodaySales)
}

func TestExpiringStockReportUsesConfiguredWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.svc.GenerateExpiringStockReport(ctx, 0, f.node.Generate().String())
	require.NoError(t, err)

	assert.Equal(t, domain.TypeExpiringStock, report.ReportType)
	assert.Contains(t, report.Summary, "within 30 days")
	assert.Equal(t, f.clock.Now().AddDate(0, 0, 30), report.EndDate)
}
