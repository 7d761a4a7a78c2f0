package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the write surface of the ledger. Mutations are only reached
// through the batch and order services, which pass their transaction handle.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, inventory *Inventory) error
	FindByMedicine(ctx context.Context, db *gorm.DB, medicineID snowflake.ID) (*Inventory, error)

	// Adjust applies available += delta and total += delta, then recomputes
	// the low-stock flag from the medicine's reorder level.
	Adjust(ctx context.Context, db *gorm.DB, medicineID snowflake.ID, delta int) error

	// Deduct is a conditional decrement of both quantities: it only applies
	// when available_quantity >= qty and returns ErrInsufficientStock
	// otherwise. This is the single authoritative guard against overselling
	// under concurrent completions.
	Deduct(ctx context.Context, db *gorm.DB, medicineID snowflake.ID, qty int) error

	List(ctx context.Context, db *gorm.DB) ([]Inventory, error)
	ListLowStock(ctx context.Context, db *gorm.DB) ([]Inventory, error)
	ListOutOfStock(ctx context.Context, db *gorm.DB) ([]Inventory, error)
	CountLowStock(ctx context.Context, db *gorm.DB) (int64, error)
}
