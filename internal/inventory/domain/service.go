package domain

import (
	"context"
	"errors"
)

type Service interface {
	GetByMedicine(ctx context.Context, medicineID string) (Inventory, error)
	List(ctx context.Context) ([]Inventory, error)
	ListLowStock(ctx context.Context) ([]Inventory, error)
	ListOutOfStock(ctx context.Context) ([]Inventory, error)
	CountLowStock(ctx context.Context) (int64, error)
}

var (
	ErrNotFound          = errors.New("inventory_not_found")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInsufficientStock = errors.New("insufficient_stock")
)
