package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	InsertItems(ctx context.Context, db *gorm.DB, items []OrderItem) error
	Save(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)

	// FindByIDForUpdate row-locks the order where the dialect allows, so a
	// state transition holds the row for the rest of its transaction.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)

	FindByNumber(ctx context.Context, db *gorm.DB, orderNumber string) (*Order, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]Order, error)
	ListByStatus(ctx context.Context, db *gorm.DB, status OrderStatus) ([]Order, error)
	ListCreatedAfter(ctx context.Context, db *gorm.DB, since time.Time) ([]Order, error)
	ListBetween(ctx context.Context, db *gorm.DB, start, end time.Time) ([]Order, error)
}
