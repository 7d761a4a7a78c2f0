package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	batchrepository "github.com/amancodes12/pharmaease/internal/batch/repository"
	billingrepository "github.com/amancodes12/pharmaease/internal/billing/repository"
	billingservice "github.com/amancodes12/pharmaease/internal/billing/service"
	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	catalogrepository "github.com/amancodes12/pharmaease/internal/catalog/repository"
	"github.com/amancodes12/pharmaease/internal/clock"
	customerrepository "github.com/amancodes12/pharmaease/internal/customer/repository"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	inventoryrepository "github.com/amancodes12/pharmaease/internal/inventory/repository"
	"github.com/amancodes12/pharmaease/internal/migration"
	"github.com/amancodes12/pharmaease/internal/order/domain"
	orderrepository "github.com/amancodes12/pharmaease/internal/order/repository"
	pharmacistrepository "github.com/amancodes12/pharmaease/internal/pharmacist/repository"
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
	billingRepo := billingrepository.Provide()
	issuer := billingservice.NewIssuer(billingservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  billingRepo,
	})

	svc := New(Params{
		DB:             db,
		Log:            zap.NewNop(),
		GenID:          node,
		Clock:          fake,
		Repo:           orderrepository.Provide(),
		InventoryRepo:  inventoryrepository.Provide(),
		BatchRepo:      batchrepository.Provide(),
		MedicineRepo:   catalogrepository.Provide(),
		CustomerRepo:   customerrepository.Provide(),
		PharmacistRepo: pharmacistrepository.Provide(),
		Issuer:         issuer,
	})

	return &fixture{db: db, node: node, clock: fake, svc: svc}
}

func (f *fixture) seedPharmacist(t *testing.T) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Exec(
		"INSERT INTO pharmacists (id, name, email, password, license_number, role, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, "Asha Verma", fmt.Sprintf("asha+%d@pharmaease.local", id), "x", fmt.Sprintf("LIC-%d", id), "PHARMACIST", true, f.clock.Now(), f.clock.Now(),
	).Error)
	return id
}

func (f *fixture) seedMedicine(t *testing.T, sellingPrice int64, available int) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Create(&catalogdomain.Medicine{
		ID:           id,
		Name:         fmt.Sprintf("Amoxicillin %d", id),
		Category:     "ANTIBIOTIC",
		UnitPrice:    sellingPrice / 2,
		SellingPrice: sellingPrice,
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

func (f *fixture) seedBatch(t *testing.T, medicineID snowflake.ID, quantity int, expiry time.Time) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	require.NoError(t, f.db.Create(&batchdomain.StockBatch{
		ID:                id,
		BatchNumber:       fmt.Sprintf("B-%d", id),
		MedicineID:        medicineID,
		Quantity:          quantity,
		RemainingQuantity: quantity,
		CostPrice:         100,
		ManufacturingDate: expiry.AddDate(-2, 0, 0),
		ExpiryDate:        expiry,
		Active:            true,
		CreatedAt:         f.clock.Now(),
	}).Error)
	return id
}

func (f *fixture) available(t *testing.T, medicineID snowflake.ID) int {
	t.Helper()
	var inv inventorydomain.Inventory
	require.NoError(t, f.db.Where("medicine_id = ?", medicineID).First(&inv).Error)
	return inv.AvailableQuantity
}

func TestCreateCompletedOrderTotalsAndInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 500, 20)

	result, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 5}},
		Status:       domain.StatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), result.Order.Subtotal)
	assert.Equal(t, int64(125), result.Order.Tax)
	assert.Equal(t, int64(2625), result.Order.TotalAmount)
	assert.Equal(t, domain.StatusCompleted, result.Order.Status)
	assert.True(t, result.Order.Paid)

	require.NotNil(t, result.Invoice)
	assert.Equal(t, int64(2625), result.Invoice.AmountPaid)
	assert.Equal(t, int64(0), result.Invoice.ChangeGiven)
	assert.Contains(t, result.Invoice.InvoiceNumber, "INV-")

	assert.Equal(t, 15, f.available(t, medicineID))
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 300, 3)

	_, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 10}},
		Status:       domain.StatusCompleted,
	})
	require.ErrorIs(t, err, inventorydomain.ErrInsufficientStock)

	var count int64
	require.NoError(t, f.db.Model(&domain.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 3, f.available(t, medicineID))
}

func TestCreatePendingOrderLeavesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 400, 8)

	result, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, result.Order.Status)
	assert.False(t, result.Order.Paid)
	assert.Nil(t, result.Invoice)
	assert.Equal(t, 8, f.available(t, medicineID))
}

func TestCompleteDeductsExactlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 200, 10)

	created, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 6}},
	})
	require.NoError(t, err)

	completed, err := f.svc.Complete(ctx, created.Order.ID.String(), 0)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Order.Status)
	assert.Equal(t, 4, f.available(t, medicineID))

	_, err = f.svc.Complete(ctx, created.Order.ID.String(), 0)
	require.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	assert.Equal(t, 4, f.available(t, medicineID))
}

func TestCompleteComputesChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 500, 20)

	created, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 5}},
	})
	require.NoError(t, err)

	completed, err := f.svc.Complete(ctx, created.Order.ID.String(), 3000)
	require.NoError(t, err)
	require.NotNil(t, completed.Invoice)
	assert.Equal(t, int64(3000), completed.Invoice.AmountPaid)
	assert.Equal(t, int64(375), completed.Invoice.ChangeGiven)
}

func TestCancelPendingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 250, 12)

	created, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 3}},
	})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, created.Order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, 12, f.available(t, medicineID))

	_, err = f.svc.Cancel(ctx, created.Order.ID.String())
	require.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestCancelRestoresDeductedStockOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 250, 12)

	created, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 5}},
	})
	require.NoError(t, err)

	// Simulate a sale whose deduction landed but whose completion never
	// did, the state a crash between the two would leave behind.
	require.NoError(t, f.db.Exec(
		"UPDATE inventories SET available_quantity = available_quantity - 5, total_quantity = total_quantity - 5 WHERE medicine_id = ?",
		medicineID,
	).Error)
	require.NoError(t, f.db.Exec(
		"UPDATE orders SET stock_deducted = ? WHERE id = ?", true, created.Order.ID,
	).Error)

	cancelled, err := f.svc.Cancel(ctx, created.Order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, 12, f.available(t, medicineID))

	_, err = f.svc.Cancel(ctx, created.Order.ID.String())
	require.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Equal(t, 12, f.available(t, medicineID))
}

func TestCancelCompletedOrderConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 150, 10)

	created, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 2}},
		Status:       domain.StatusCompleted,
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, created.Order.ID.String())
	require.ErrorIs(t, err, domain.ErrCancelCompleted)
	assert.Equal(t, 8, f.available(t, medicineID))
}

func TestBatchesConsumedOldestExpiryFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 100, 70)
	early := f.seedBatch(t, medicineID, 20, f.clock.Now().AddDate(0, 2, 0))
	late := f.seedBatch(t, medicineID, 50, f.clock.Now().AddDate(0, 8, 0))

	result, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 30}},
		Status:       domain.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	var earlyBatch, lateBatch batchdomain.StockBatch
	require.NoError(t, f.db.First(&earlyBatch, "id = ?", early).Error)
	require.NoError(t, f.db.First(&lateBatch, "id = ?", late).Error)

	assert.Equal(t, 0, earlyBatch.RemainingQuantity)
	assert.False(t, earlyBatch.Active)
	assert.Equal(t, 40, lateBatch.RemainingQuantity)
	assert.True(t, lateBatch.Active)

	require.Len(t, result.Order.Items, 1)
	require.NotNil(t, result.Order.Items[0].BatchID)
	assert.Equal(t, early, *result.Order.Items[0].BatchID)
}

func TestBatchShortfallWarnsWithoutFailing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 100, 20)
	f.seedBatch(t, medicineID, 8, f.clock.Now().AddDate(0, 3, 0))

	result, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 15}},
		Status:       domain.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, result.Order.Status)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "batch tracking short")
	assert.Equal(t, 5, f.available(t, medicineID))
}

func TestSequentialCompletionsCannotOversell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 100, 10)

	first, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 7}},
	})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 7}},
	})
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, first.Order.ID.String(), 0)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, second.Order.ID.String(), 0)
	require.ErrorIs(t, err, inventorydomain.ErrInsufficientStock)
	assert.Equal(t, 3, f.available(t, medicineID))
}

func TestConcurrentCompletionsCannotOversell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 100, 10)

	// The conditional ledger decrement is the only oversell guard; racing
	// completions must serialize on it, not on anything in this process.
	orderIDs := make([]string, 2)
	for i := range orderIDs {
		created, err := f.svc.Create(ctx, domain.CreateOrderRequest{
			PharmacistID: pharmacistID.String(),
			Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 7}},
		})
		require.NoError(t, err)
		orderIDs[i] = created.Order.ID.String()
	}

	errs := make(chan error, len(orderIDs))
	var wg sync.WaitGroup
	for _, id := range orderIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.svc.Complete(ctx, id, 0)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	var failures int
	for err := range errs {
		if err != nil {
			require.ErrorIs(t, err, inventorydomain.ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Equal(t, 3, f.available(t, medicineID))
}

func TestInvoiceFailureLeavesOrderCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 500, 20)
	f.seedBatch(t, medicineID, 20, f.clock.Now().AddDate(0, 6, 0))

	require.NoError(t, f.db.Exec("DROP TABLE invoices").Error)

	result, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 5}},
		Status:       domain.StatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, result.Order.Status)
	assert.Nil(t, result.Invoice)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "invoice generation failed")

	reloaded, err := f.svc.GetByID(ctx, result.Order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, reloaded.Status)
	assert.Equal(t, 15, f.available(t, medicineID))
}

func TestBatchFailureLeavesOrderCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 300, 12)

	require.NoError(t, f.db.Exec("DROP TABLE stock_batches").Error)

	result, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 4}},
		Status:       domain.StatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, result.Order.Status)
	require.NotNil(t, result.Invoice)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "batch allocation failed")
	assert.Equal(t, 8, f.available(t, medicineID))
}

func TestDuplicateOrderNumberRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 100, 10)

	req := domain.CreateOrderRequest{
		OrderNumber:  "ORD-FIXED-001",
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 1}},
	}
	_, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, req)
	require.ErrorIs(t, err, domain.ErrDuplicateOrderNo)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pharmacistID := f.seedPharmacist(t)
	medicineID := f.seedMedicine(t, 100, 10)

	_, err := f.svc.Create(ctx, domain.CreateOrderRequest{PharmacistID: pharmacistID.String()})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	_, err = f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 1}},
		Discount:     -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)

	_, err = f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: pharmacistID.String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 1}},
		Discount:     1_000_000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)

	_, err = f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID:  pharmacistID.String(),
		Items:         []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 1}},
		PaymentMethod: "BARTER",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPayment)

	_, err = f.svc.Create(ctx, domain.CreateOrderRequest{
		PharmacistID: f.node.Generate().String(),
		Items:        []domain.ItemRequest{{MedicineID: medicineID.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrPharmacistNotFound)
}
