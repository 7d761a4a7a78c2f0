// Package scheduler runs the periodic stock housekeeping jobs.
package scheduler

import (
	"context"
	"time"

	auditdomain "github.com/amancodes12/pharmaease/internal/audit/domain"
	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	"github.com/amancodes12/pharmaease/internal/clock"
	"github.com/amancodes12/pharmaease/internal/config"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	obsmetrics "github.com/amancodes12/pharmaease/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Clock         clock.Clock
	Config        config.Config
	BatchRepo     batchdomain.Repository
	InventoryRepo inventorydomain.Repository
	AuditSvc      auditdomain.Service
}

type Scheduler struct {
	db            *gorm.DB
	log           *zap.Logger
	clock         clock.Clock
	interval      time.Duration
	batchRepo     batchdomain.Repository
	inventoryRepo inventorydomain.Repository
	auditSvc      auditdomain.Service
}

func New(p Params) *Scheduler {
	interval := p.Config.SchedulerInterval
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		db:            p.DB,
		log:           p.Log.Named("scheduler"),
		clock:         p.Clock,
		interval:      interval,
		batchRepo:     p.BatchRepo,
		inventoryRepo: p.InventoryRepo,
		auditSvc:      p.AuditSvc,
	}
}

// RunForever ticks until ctx is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes every housekeeping job a single time.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.runJob(ctx, "deactivate_expired_batches", s.deactivateExpiredBatches)
	s.runJob(ctx, "low_stock_gauge", s.refreshLowStockGauge)
}

func (s *Scheduler) runJob(ctx context.Context, name string, fn func(ctx context.Context) error) {
	metrics := obsmetrics.Scheduler()
	metrics.JobRuns.WithLabelValues(name).Inc()

	if err := fn(ctx); err != nil {
		metrics.JobErrors.WithLabelValues(name).Inc()
		s.log.Error("job failed", zap.String("job", name), zap.Error(err))
		return
	}
	s.log.Debug("job finished", zap.String("job", name))
}

// deactivateExpiredBatches pulls every active batch past its expiry, marks
// it inactive, and debits the remaining units from the ledger so expired
// stock can no longer be sold.
func (s *Scheduler) deactivateExpiredBatches(ctx context.Context) error {
	expired, err := s.batchRepo.ListExpiredBefore(ctx, s.db, s.clock.Now())
	if err != nil {
		return err
	}

	for i := range expired {
		batch := &expired[i]

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			remaining := batch.RemainingQuantity
			batch.Active = false
			if err := s.batchRepo.Save(ctx, tx, batch); err != nil {
				return err
			}
			if remaining > 0 {
				return s.inventoryRepo.Adjust(ctx, tx, batch.MedicineID, -remaining)
			}
			return nil
		})
		if err != nil {
			s.log.Error("expired batch deactivation failed",
				zap.String("batch_number", batch.BatchNumber),
				zap.Error(err),
			)
			continue
		}

		obsmetrics.Scheduler().ExpiredDeactivated.Inc()
		targetID := batch.ID.String()
		_ = s.auditSvc.Record(ctx, auditdomain.ActorTypeSystem, nil,
			"batch.expired_deactivated", "stock_batch", &targetID,
			map[string]any{
				"batch_number": batch.BatchNumber,
				"medicine_id":  batch.MedicineID.String(),
				"remaining":    batch.RemainingQuantity,
				"expiry_date":  batch.ExpiryDate,
			})
	}
	return nil
}

func (s *Scheduler) refreshLowStockGauge(ctx context.Context) error {
	count, err := s.inventoryRepo.CountLowStock(ctx, s.db)
	if err != nil {
		return err
	}
	obsmetrics.Scheduler().LowStockMedicines.Set(float64(count))
	if count > 0 {
		s.log.Warn("medicines at or below reorder level", zap.Int64("count", count))
	}
	return nil
}
