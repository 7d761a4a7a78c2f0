package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindByNumber(ctx context.Context, db *gorm.DB, invoiceNumber string) (*Invoice, error)
	FindByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*Invoice, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]Invoice, error)
	ListBetween(ctx context.Context, db *gorm.DB, start, end time.Time) ([]Invoice, error)
}
