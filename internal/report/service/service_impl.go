package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	"github.com/amancodes12/pharmaease/internal/clock"
	"github.com/amancodes12/pharmaease/internal/config"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	"github.com/amancodes12/pharmaease/internal/report/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Config        config.Config
	Repo          domain.Repository
	InventoryRepo inventorydomain.Repository
	BatchRepo     batchdomain.Repository
	Cache         domain.StatsCache
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	cfg           config.Config
	repo          domain.Repository
	inventoryRepo inventorydomain.Repository
	batchRepo     batchdomain.Repository
	cache         domain.StatsCache
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("report.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		cfg:           p.Config,
		repo:          p.Repo,
		inventoryRepo: p.InventoryRepo,
		batchRepo:     p.BatchRepo,
		cache:         p.Cache,
	}
}

func (s *Service) GenerateSalesReport(ctx context.Context, start, end time.Time, reportType domain.ReportType, pharmacistID string) (domain.Report, error) {
	if end.Before(start) {
		return domain.Report{}, domain.ErrInvalidRange
	}
	switch reportType {
	case domain.TypeDailySales, domain.TypeWeeklySales, domain.TypeMonthlySales:
	default:
		return domain.Report{}, domain.ErrInvalidType
	}

	generatedBy, err := parseID(pharmacistID)
	if err != nil {
		return domain.Report{}, err
	}

	totalSales, err := s.repo.SumCompletedSalesBetween(ctx, s.db, start, end)
	if err != nil {
		return domain.Report{}, err
	}
	totalOrders, err := s.repo.CountCompletedOrdersBetween(ctx, s.db, start, end)
	if err != nil {
		return domain.Report{}, err
	}

	report := domain.Report{
		ID:          s.genID.Generate(),
		ReportType:  reportType,
		StartDate:   start,
		EndDate:     end,
		TotalSales:  totalSales,
		TotalOrders: int(totalOrders),
		Summary: fmt.Sprintf("Sales report from %s to %s. Total orders: %d, total sales: %d",
			start.Format("2006-01-02"), end.Format("2006-01-02"), totalOrders, totalSales),
		GeneratedBy: generatedBy,
		GeneratedAt: s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &report); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}

func (s *Service) GenerateInventoryReport(ctx context.Context, pharmacistID string) (domain.Report, error) {
	generatedBy, err := parseID(pharmacistID)
	if err != nil {
		return domain.Report{}, err
	}

	inventories, err := s.inventoryRepo.List(ctx, s.db)
	if err != nil {
		return domain.Report{}, err
	}

	var lowStock, outOfStock int
	for _, inv := range inventories {
		if inv.LowStock {
			lowStock++
		}
		if inv.AvailableQuantity == 0 {
			outOfStock++
		}
	}

	now := s.clock.Now()
	report := domain.Report{
		ID:         s.genID.Generate(),
		ReportType: domain.TypeInventory,
		StartDate:  now,
		EndDate:    now,
		Summary: fmt.Sprintf("Inventory report. Total items: %d, low stock: %d, out of stock: %d",
			len(inventories), lowStock, outOfStock),
		GeneratedBy: generatedBy,
		GeneratedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &report); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}

func (s *Service) GenerateLowStockReport(ctx context.Context, pharmacistID string) (domain.Report, error) {
	generatedBy, err := parseID(pharmacistID)
	if err != nil {
		return domain.Report{}, err
	}

	lowStock, err := s.inventoryRepo.ListLowStock(ctx, s.db)
	if err != nil {
		return domain.Report{}, err
	}

	now := s.clock.Now()
	report := domain.Report{
		ID:          s.genID.Generate(),
		ReportType:  domain.TypeLowStock,
		StartDate:   now,
		EndDate:     now,
		Summary:     fmt.Sprintf("Low stock report. %d items need reordering", len(lowStock)),
		GeneratedBy: generatedBy,
		GeneratedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &report); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}

func (s *Service) GenerateExpiringStockReport(ctx context.Context, daysAhead int, pharmacistID string) (domain.Report, error) {
	if daysAhead <= 0 {
		daysAhead = s.cfg.ExpiryAlertDays
	}

	generatedBy, err := parseID(pharmacistID)
	if err != nil {
		return domain.Report{}, err
	}

	now := s.clock.Now()
	until := now.AddDate(0, 0, daysAhead)
	expiring, err := s.batchRepo.ListExpiringBetween(ctx, s.db, now, until)
	if err != nil {
		return domain.Report{}, err
	}

	report := domain.Report{
		ID:          s.genID.Generate(),
		ReportType:  domain.TypeExpiringStock,
		StartDate:   now,
		EndDate:     until,
		Summary:     fmt.Sprintf("Expiring stock report. %d batches expiring within %d days", len(expiring), daysAhead),
		GeneratedBy: generatedBy,
		GeneratedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &report); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Report, error) {
	reportID, err := parseID(id)
	if err != nil {
		return domain.Report{}, err
	}

	report, err := s.repo.FindByID(ctx, s.db, reportID)
	if err != nil {
		return domain.Report{}, err
	}
	if report == nil {
		return domain.Report{}, domain.ErrNotFound
	}
	return *report, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Report, error) {
	return s.repo.ListAll(ctx, s.db)
}

// Dashboard recomputes the tile aggregates on a cache miss. Cache failures
// degrade to a direct read.
func (s *Service) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	if stats, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn("stats cache read failed", zap.Error(err))
	} else if ok {
		return stats, nil
	}

	now := s.clock.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var stats domain.DashboardStats
	var err error

	if stats.TodaySales, err = s.repo.SumCompletedSalesBetween(ctx, s.db, todayStart, now); err != nil {
		return domain.DashboardStats{}, err
	}
	if stats.WeekSales, err = s.repo.SumCompletedSalesBetween(ctx, s.db, weekStart, now); err != nil {
		return domain.DashboardStats{}, err
	}
	if stats.MonthSales, err = s.repo.SumCompletedSalesBetween(ctx, s.db, monthStart, now); err != nil {
		return domain.DashboardStats{}, err
	}
	if stats.TodayOrders, err = s.repo.CountCompletedOrdersBetween(ctx, s.db, todayStart, now); err != nil {
		return domain.DashboardStats{}, err
	}
	if stats.LowStockCount, err = s.inventoryRepo.CountLowStock(ctx, s.db); err != nil {
		return domain.DashboardStats{}, err
	}

	expiring, err := s.batchRepo.ListExpiringBetween(ctx, s.db, now, now.AddDate(0, 0, s.cfg.ExpiryAlertDays))
	if err != nil {
		return domain.DashboardStats{}, err
	}
	stats.ExpiringBatches = len(expiring)

	if err := s.cache.Set(ctx, stats); err != nil {
		s.log.Warn("stats cache write failed", zap.Error(err))
	}
	return stats, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
