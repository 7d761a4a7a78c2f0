package scheduler

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

	auditdomain "github.com/amancodes12/pharmaease/internal/audit/domain"
	auditrepository "github.com/amancodes12/pharmaease/internal/audit/repository"
	auditservice "github.com/amancodes12/pharmaease/internal/audit/service"
	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	batchrepository "github.com/amancodes12/pharmaease/internal/batch/repository"
	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	"github.com/amancodes12/pharmaease/internal/clock"
	"github.com/amancodes12/pharmaease/internal/config"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	inventoryrepository "github.com/amancodes12/pharmaease/internal/inventory/repository"
	"github.com/amancodes12/pharmaease/internal/migration"
)

func setup(t *testing.T) (*Scheduler, *gorm.DB, *snowflake.Node, *clock.FakeClock) {
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

	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC))
	auditSvc := auditservice.New(auditservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  auditrepository.Provide(),
	})

	s := New(Params{
		DB:            db,
		Log:           zap.NewNop(),
		Clock:         fake,
		Config:        config.Config{},
		BatchRepo:     batchrepository.Provide(),
		InventoryRepo: inventoryrepository.Provide(),
		AuditSvc:      auditSvc,
	})
	return s, db, node, fake
}

func seedStock(t *testing.T, db *gorm.DB, node *snowflake.Node, available int) snowflake.ID {
	t.Helper()
	medicineID := node.Generate()
	require.NoError(t, db.Create(&catalogdomain.Medicine{
		ID:           medicineID,
		Name:         fmt.Sprintf("Metformin %d", medicineID),
		UnitPrice:    100,
		SellingPrice: 140,
		ReorderLevel: 2,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}).Error)
	require.NoError(t, db.Create(&inventorydomain.Inventory{
		ID:                node.Generate(),
		MedicineID:        medicineID,
		TotalQuantity:     available,
		AvailableQuantity: available,
		LastUpdated:       time.Now().UTC(),
	}).Error)
	return medicineID
}

func seedBatch(t *testing.T, db *gorm.DB, node *snowflake.Node, medicineID snowflake.ID, remaining int, expiry time.Time) snowflake.ID {
	t.Helper()
	id := node.Generate()
	require.NoError(t, db.Create(&batchdomain.StockBatch{
		ID:                id,
		BatchNumber:       fmt.Sprintf("EXP-%d", id),
		MedicineID:        medicineID,
		Quantity:          remaining,
		RemainingQuantity: remaining,
		CostPrice:         80,
		ManufacturingDate: expiry.AddDate(-2, 0, 0),
		ExpiryDate:        expiry,
		Active:            true,
		CreatedAt:         time.Now().UTC(),
	}).Error)
	return id
}

func TestExpiredBatchesDeactivatedAndDebited(t *testing.T) {
	s, db, node, fake := setup(t)
	ctx := context.Background()

	medicineID := seedStock(t, db, node, 30)
	expired := seedBatch(t, db, node, medicineID, 12, fake.Now().AddDate(0, 0, -1))
	fresh := seedBatch(t, db, node, medicineID, 18, fake.Now().AddDate(0, 6, 0))

	s.RunOnce(ctx)

	var expiredBatch, freshBatch batchdomain.StockBatch
	require.NoError(t, db.First(&expiredBatch, "id = ?", expired).Error)
	require.NoError(t, db.First(&freshBatch, "id = ?", fresh).Error)
	assert.False(t, expiredBatch.Active)
	assert.True(t, freshBatch.Active)

	var inv inventorydomain.Inventory
	require.NoError(t, db.Where("medicine_id = ?", medicineID).First(&inv).Error)
	assert.Equal(t, 18, inv.AvailableQuantity)

	var logs []auditdomain.AuditLog
	require.NoError(t, db.Where("action = ?", "batch.expired_deactivated").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, auditdomain.ActorTypeSystem, logs[0].ActorType)

	// Already-inactive batches are not reprocessed.
	s.RunOnce(ctx)
	require.NoError(t, db.Where("medicine_id = ?", medicineID).First(&inv).Error)
	assert.Equal(t, 18, inv.AvailableQuantity)
}

func TestClockAdvanceExpiresMoreBatches(t *testing.T) {
	s, db, node, fake := setup(t)
	ctx := context.Background()

	medicineID := seedStock(t, db, node, 10)
	soon := seedBatch(t, db, node, medicineID, 10, fake.Now().AddDate(0, 0, 5))

	s.RunOnce(ctx)
	var batch batchdomain.StockBatch
	require.NoError(t, db.First(&batch, "id = ?", soon).Error)
	assert.True(t, batch.Active)

	fake.Advance(6 * 24 * time.Hour)
	s.RunOnce(ctx)

	require.NoError(t, db.First(&batch, "id = ?", soon).Error)
	assert.False(t, batch.Active)

	var inv inventorydomain.Inventory
	require.NoError(t, db.Where("medicine_id = ?", medicineID).First(&inv).Error)
	assert.Zero(t, inv.AvailableQuantity)
}
