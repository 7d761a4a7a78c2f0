package service

import (
	"context"
	"strings"

	"github.com/amancodes12/pharmaease/internal/batch/domain"
	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	"github.com/amancodes12/pharmaease/internal/clock"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
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
	Repo          domain.Repository
	MedicineRepo  catalogdomain.Repository
	InventoryRepo inventorydomain.Repository
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	medicineRepo  catalogdomain.Repository
	inventoryRepo inventorydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("batch.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		medicineRepo:  p.MedicineRepo,
		inventoryRepo: p.InventoryRepo,
	}
}

// Create registers a received lot and credits its full quantity to the
// medicine's ledger row in the same transaction.
func (s *Service) Create(ctx context.Context, req domain.CreateBatchRequest) (domain.StockBatch, error) {
	batchNumber := strings.TrimSpace(req.BatchNumber)
	if batchNumber == "" {
		return domain.StockBatch{}, domain.ErrInvalidBatchNo
	}
	if req.Quantity <= 0 {
		return domain.StockBatch{}, domain.ErrInvalidQuantity
	}
	if req.ExpiryDate.IsZero() || !req.ExpiryDate.After(s.clock.Now()) {
		return domain.StockBatch{}, domain.ErrInvalidExpiry
	}

	medicineID, err := parseID(req.MedicineID)
	if err != nil {
		return domain.StockBatch{}, err
	}

	batch := domain.StockBatch{
		ID:                s.genID.Generate(),
		BatchNumber:       batchNumber,
		MedicineID:        medicineID,
		Quantity:          req.Quantity,
		RemainingQuantity: req.Quantity,
		CostPrice:         req.CostPrice,
		ManufacturingDate: req.ManufacturingDate,
		ExpiryDate:        req.ExpiryDate,
		Active:            true,
		CreatedAt:         s.clock.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		medicine, err := s.medicineRepo.FindMedicineByID(ctx, tx, medicineID)
		if err != nil {
			return err
		}
		if medicine == nil {
			return domain.ErrMedicineNotFound
		}

		existing, err := s.repo.FindByNumber(ctx, tx, batchNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateBatchNo
		}

		if err := s.repo.Insert(ctx, tx, &batch); err != nil {
			return err
		}

		return s.inventoryRepo.Adjust(ctx, tx, medicineID, req.Quantity)
	})
	if err != nil {
		return domain.StockBatch{}, err
	}

	s.log.Info("batch received",
		zap.String("batch_number", batch.BatchNumber),
		zap.Int64("medicine_id", int64(batch.MedicineID)),
		zap.Int("quantity", batch.Quantity),
	)
	return batch, nil
}

// Update rewrites a lot's details. The quantity may shrink only down to what
// has already been consumed, and the ledger absorbs the difference in
// remaining stock, including activation flips.
func (s *Service) Update(ctx context.Context, id string, req domain.UpdateBatchRequest) (domain.StockBatch, error) {
	batchID, err := parseID(id)
	if err != nil {
		return domain.StockBatch{}, err
	}

	batchNumber := strings.TrimSpace(req.BatchNumber)
	if batchNumber == "" {
		return domain.StockBatch{}, domain.ErrInvalidBatchNo
	}
	if req.Quantity <= 0 {
		return domain.StockBatch{}, domain.ErrInvalidQuantity
	}
	if req.ExpiryDate.IsZero() {
		return domain.StockBatch{}, domain.ErrInvalidExpiry
	}

	var updated domain.StockBatch
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByID(ctx, tx, batchID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		if batchNumber != existing.BatchNumber {
			dup, err := s.repo.FindByNumber(ctx, tx, batchNumber)
			if err != nil {
				return err
			}
			if dup != nil {
				return domain.ErrDuplicateBatchNo
			}
		}

		consumed := existing.Quantity - existing.RemainingQuantity
		if req.Quantity < consumed {
			return domain.ErrQuantityUnderflow
		}

		ledgerBefore := 0
		if existing.Active {
			ledgerBefore = existing.RemainingQuantity
		}

		existing.BatchNumber = batchNumber
		existing.Quantity = req.Quantity
		existing.RemainingQuantity = req.Quantity - consumed
		existing.CostPrice = req.CostPrice
		existing.ManufacturingDate = req.ManufacturingDate
		existing.ExpiryDate = req.ExpiryDate
		existing.Active = req.Active && existing.RemainingQuantity > 0

		ledgerAfter := 0
		if existing.Active {
			ledgerAfter = existing.RemainingQuantity
		}

		if err := s.repo.Save(ctx, tx, existing); err != nil {
			return err
		}

		if delta := ledgerAfter - ledgerBefore; delta != 0 {
			if err := s.inventoryRepo.Adjust(ctx, tx, existing.MedicineID, delta); err != nil {
				return err
			}
		}

		updated = *existing
		return nil
	})
	if err != nil {
		return domain.StockBatch{}, err
	}

	return updated, nil
}

// Delete removes a lot and debits whatever it still held from the ledger.
func (s *Service) Delete(ctx context.Context, id string) error {
	batchID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByID(ctx, tx, batchID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		if existing.Active && existing.RemainingQuantity > 0 {
			if err := s.inventoryRepo.Adjust(ctx, tx, existing.MedicineID, -existing.RemainingQuantity); err != nil {
				return err
			}
		}

		return s.repo.Delete(ctx, tx, batchID)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.StockBatch, error) {
	batchID, err := parseID(id)
	if err != nil {
		return domain.StockBatch{}, err
	}

	batch, err := s.repo.FindByID(ctx, s.db, batchID)
	if err != nil {
		return domain.StockBatch{}, err
	}
	if batch == nil {
		return domain.StockBatch{}, domain.ErrNotFound
	}
	return *batch, nil
}

func (s *Service) GetByNumber(ctx context.Context, batchNumber string) (domain.StockBatch, error) {
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" {
		return domain.StockBatch{}, domain.ErrInvalidBatchNo
	}

	batch, err := s.repo.FindByNumber(ctx, s.db, batchNumber)
	if err != nil {
		return domain.StockBatch{}, err
	}
	if batch == nil {
		return domain.StockBatch{}, domain.ErrNotFound
	}
	return *batch, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.StockBatch, error) {
	return s.repo.ListAll(ctx, s.db)
}

func (s *Service) ListByMedicine(ctx context.Context, medicineID string) ([]domain.StockBatch, error) {
	id, err := parseID(medicineID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByMedicine(ctx, s.db, id)
}

func (s *Service) ListExpiring(ctx context.Context, daysAhead int) ([]domain.StockBatch, error) {
	if daysAhead <= 0 {
		daysAhead = 30
	}
	now := s.clock.Now()
	return s.repo.ListExpiringBetween(ctx, s.db, now, now.AddDate(0, 0, daysAhead))
}

func (s *Service) ListExpired(ctx context.Context) ([]domain.StockBatch, error) {
	return s.repo.ListExpiredBefore(ctx, s.db, s.clock.Now())
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
