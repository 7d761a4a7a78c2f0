package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, batch *StockBatch) error
	Save(ctx context.Context, db *gorm.DB, batch *StockBatch) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*StockBatch, error)
	FindByNumber(ctx context.Context, db *gorm.DB, batchNumber string) (*StockBatch, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]StockBatch, error)
	ListByMedicine(ctx context.Context, db *gorm.DB, medicineID snowflake.ID) ([]StockBatch, error)

	// ListConsumable returns active batches with stock remaining for one
	// medicine, oldest expiry first, row-locked where the dialect allows.
	ListConsumable(ctx context.Context, db *gorm.DB, medicineID snowflake.ID) ([]StockBatch, error)

	ListExpiringBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]StockBatch, error)
	ListExpiredBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]StockBatch, error)
}
