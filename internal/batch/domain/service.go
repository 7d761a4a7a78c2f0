package domain

import (
	"context"
	"errors"
	"time"
)

type CreateBatchRequest struct {
	BatchNumber       string
	MedicineID        string
	Quantity          int
	CostPrice         int64
	ManufacturingDate time.Time
	ExpiryDate        time.Time
}

type UpdateBatchRequest struct {
	BatchNumber       string
	Quantity          int
	CostPrice         int64
	ManufacturingDate time.Time
	ExpiryDate        time.Time
	Active            bool
}

type Service interface {
	Create(ctx context.Context, req CreateBatchRequest) (StockBatch, error)
	Update(ctx context.Context, id string, req UpdateBatchRequest) (StockBatch, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (StockBatch, error)
	GetByNumber(ctx context.Context, batchNumber string) (StockBatch, error)
	ListAll(ctx context.Context) ([]StockBatch, error)
	ListByMedicine(ctx context.Context, medicineID string) ([]StockBatch, error)
	ListExpiring(ctx context.Context, daysAhead int) ([]StockBatch, error)
	ListExpired(ctx context.Context) ([]StockBatch, error)
}

var (
	ErrNotFound          = errors.New("batch_not_found")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidBatchNo    = errors.New("invalid_batch_number")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidExpiry     = errors.New("invalid_expiry_date")
	ErrDuplicateBatchNo  = errors.New("duplicate_batch_number")
	ErrMedicineNotFound  = errors.New("medicine_not_found")
	ErrQuantityUnderflow = errors.New("quantity_below_consumed")
)
