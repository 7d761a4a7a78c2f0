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

	"github.com/amancodes12/pharmaease/internal/batch/domain"
	batchrepository "github.com/amancodes12/pharmaease/internal/batch/repository"
	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	catalogrepository "github.com/amancodes12/pharmaease/internal/catalog/repository"
	"github.com/amancodes12/pharmaease/internal/clock"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	inventoryrepository "github.com/amancodes12/pharmaease/internal/inventory/repository"
	"github.com/amancodes12/pharmaease/internal/migration"
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

	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:            db,
		Log:           zap.NewNop(),
		GenID:         node,
		Clock:         fake,
		Repo:          batchrepository.Provide(),
		MedicineRepo:  catalogrepository.Provide(),
		InventoryRepo: inventoryrepository.Provide(),
	})

	return &fixture{db: db, node: node, clock: fake, svc: svc}
}

func (f *fixture) seedMedicine(t *testing.T, available int) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Create(&catalogdomain.Medicine{
		ID:           id,
		Name:         fmt.Sprintf("Cetirizine %d", id),
		UnitPrice:    100,
		SellingPrice: 150,
		ReorderLevel: 5,
		Active:       true,
		CreatedAt:    f.clock.Now(),
		UpdatedAt:    f.clock.Now(),
	}).Error)
	require.NoError(t, f.db.Create(&inventorydomain.Inventory{
		ID:                f.node.Generate(),
		MedicineID:        id,
		TotalQuantity:     available,
		AvailableQuantity: available,
		LastUpdated:       f.clock.Now(),
	}).Error)
	return id
}

func (f *fixture) available(t *testing.T, medicineID snowflake.ID) int {
	t.Helper()
	var inv inventorydomain.Inventory
	require.NoError(t, f.db.Where("medicine_id = ?", medicineID).First(&inv).Error)
	return inv.AvailableQuantity
}

func TestCreateBatchCreditsLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.seedMedicine(t, 10)

	batch, err := f.svc.Create(ctx, domain.CreateBatchRequest{
		BatchNumber: "LOT-2026-001",
		MedicineID:  medicineID.String(),
		Quantity:    50,
		CostPrice:   90,
		ExpiryDate:  f.clock.Now().AddDate(1, 0, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, 50, batch.Quantity)
	assert.Equal(t, 50, batch.RemainingQuantity)
	assert.True(t, batch.Active)
	assert.Equal(t, 60, f.available(t, medicineID))
}

func TestCreateBatchRejectsDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.seedMedicine(t, 0)

	req := domain.CreateBatchRequest{
		BatchNumber: "LOT-DUP",
		MedicineID:  medicineID.String(),
		Quantity:    10,
		ExpiryDate:  f.clock.Now().AddDate(1, 0, 0),
	}
	_, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateBatchNo)
}

func TestCreateBatchRejectsPastExpiry(t *testing.T) {
	f := newFixture(t)
	medicineID := f.seedMedicine(t, 0)

	_, err := f.svc.Create(context.Background(), domain.CreateBatchRequest{
		BatchNumber: "LOT-OLD",
		MedicineID:  medicineID.String(),
		Quantity:    10,
		ExpiryDate:  f.clock.Now().AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidExpiry)
}

func TestUpdateBatchQuantityCannotGoBelowConsumed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.seedMedicine(t, 0)

	batch, err := f.svc.Create(ctx, domain.CreateBatchRequest{
		BatchNumber: "LOT-UF",
		MedicineID:  medicineID.String(),
		Quantity:    30,
		ExpiryDate:  f.clock.Now().AddDate(1, 0, 0),
	})
	require.NoError(t, err)

	// 12 units already sold out of this lot.
	require.NoError(t, f.db.Model(&domain.StockBatch{}).
		Where("id = ?", batch.ID).
		Update("remaining_quantity", 18).Error)

	_, err = f.svc.Update(ctx, batch.ID.String(), domain.UpdateBatchRequest{
		BatchNumber: "LOT-UF",
		Quantity:    10,
		ExpiryDate:  batch.ExpiryDate,
		Active:      true,
	})
	assert.ErrorIs(t, err, domain.ErrQuantityUnderflow)
}

func TestUpdateBatchDeactivationDebitsLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.seedMedicine(t, 0)

	batch, err := f.svc.Create(ctx, domain.CreateBatchRequest{
		BatchNumber: "LOT-DEACT",
		MedicineID:  medicineID.String(),
		Quantity:    25,
		ExpiryDate:  f.clock.Now().AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	require.Equal(t, 25, f.available(t, medicineID))

	updated, err := f.svc.Update(ctx, batch.ID.String(), domain.UpdateBatchRequest{
		BatchNumber: "LOT-DEACT",
		Quantity:    25,
		ExpiryDate:  batch.ExpiryDate,
		Active:      false,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 0, f.available(t, medicineID))
}

func TestDeleteBatchDebitsRemaining(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.seedMedicine(t, 5)

	batch, err := f.svc.Create(ctx, domain.CreateBatchRequest{
		BatchNumber: "LOT-DEL",
		MedicineID:  medicineID.String(),
		Quantity:    40,
		ExpiryDate:  f.clock.Now().AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	require.Equal(t, 45, f.available(t, medicineID))

	require.NoError(t, f.svc.Delete(ctx, batch.ID.String()))
	assert.Equal(t, 5, f.available(t, medicineID))

	_, err = f.svc.GetByID(ctx, batch.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllocateDrainsByExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.seedMedicine(t, 0)

	early, err := f.svc.Create(ctx, domain.CreateBatchRequest{
		BatchNumber: "LOT-A",
		MedicineID:  medicineID.String(),
		Quantity:    20,
		ExpiryDate:  f.clock.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	late, err := f.svc.Create(ctx, domain.CreateBatchRequest{
		BatchNumber: "LOT-B",
		MedicineID:  medicineID.String(),
		Quantity:    50,
		ExpiryDate:  f.clock.Now().AddDate(0, 6, 0),
	})
	require.NoError(t, err)

	repo := batchrepository.Provide()
	var allocations []domain.Allocation
	var shortfall int
	err = f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		allocations, shortfall, err = domain.Allocate(ctx, tx, repo, medicineID, 30)
		return err
	})
	require.NoError(t, err)

	assert.Zero(t, shortfall)
	require.Len(t, allocations, 2)
	assert.Equal(t, domain.Allocation{BatchID: early.ID, Quantity: 20}, allocations[0])
	assert.Equal(t, domain.Allocation{BatchID: late.ID, Quantity: 10}, allocations[1])
}

func TestAllocateReportsShortfall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.seedMedicine(t, 0)

	_, err := f.svc.Create(ctx, domain.CreateBatchRequest{
		BatchNumber: "LOT-SHORT",
		MedicineID:  medicineID.String(),
		Quantity:    6,
		ExpiryDate:  f.clock.Now().AddDate(0, 2, 0),
	})
	require.NoError(t, err)

	repo := batchrepository.Provide()
	var allocations []domain.Allocation
	var shortfall int
	err = f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		allocations, shortfall, err = domain.Allocate(ctx, tx, repo, medicineID, 10)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 4, shortfall)
	require.Len(t, allocations, 1)
	assert.Equal(t, 6, allocations[0].Quantity)
}

func TestListExpiringUsesClock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.seedMedicine(t, 0)

	_, err := f.svc.Create(ctx, domain.CreateBatchRequest{
		BatchNumber: "LOT-SOON",
		MedicineID:  medicineID.String(),
		Quantity:    5,
		ExpiryDate:  f.clock.Now().AddDate(0, 0, 10),
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, domain.CreateBatchRequest{
		BatchNumber: "LOT-LATER",
		MedicineID:  medicineID.String(),
		Quantity:    5,
		ExpiryDate:  f.clock.Now().AddDate(1, 0, 0),
	})
	require.NoError(t, err)

	expiring, err := f.svc.ListExpiring(ctx, 30)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "LOT-SOON", expiring[0].BatchNumber)
}
