package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, report *Report) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Report, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]Report, error)

	// SumCompletedSalesBetween totals completed orders in [start, end].
	SumCompletedSalesBetween(ctx context.Context, db *gorm.DB, start, end time.Time) (int64, error)
	CountCompletedOrdersBetween(ctx context.Context, db *gorm.DB, start, end time.Time) (int64, error)
}
