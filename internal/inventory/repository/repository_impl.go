package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amancodes12/pharmaease/internal/inventory/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, inventory *domain.Inventory) error {
	return db.WithContext(ctx).Create(inventory).Error
}

func (r *repo) FindByMedicine(ctx context.Context, db *gorm.DB, medicineID snowflake.ID) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := db.WithContext(ctx).First(&inventory, "medicine_id = ?", medicineID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inventory, nil
}

func (r *repo) Adjust(ctx context.Context, db *gorm.DB, medicineID snowflake.ID, delta int) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE inventories
		 SET available_quantity = available_quantity + ?,
		     total_quantity = total_quantity + ?,
		     last_updated = ?
		 WHERE medicine_id = ?`,
		delta,
		delta,
		time.Now().UTC(),
		medicineID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return r.recomputeLowStock(ctx, db, medicineID)
}

func (r *repo) Deduct(ctx context.Context, db *gorm.DB, medicineID snowflake.ID, qty int) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE inventories
		 SET available_quantity = available_quantity - ?,
		     total_quantity = total_quantity - ?,
		     last_updated = ?
		 WHERE medicine_id = ? AND available_quantity >= ?`,
		qty,
		qty,
		time.Now().UTC(),
		medicineID,
		qty,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientStock
	}
	return r.recomputeLowStock(ctx, db, medicineID)
}

// low_stock is a pure function of available_quantity and the medicine's
// reorder level, recomputed on every write path that touches either input.
func (r *repo) recomputeLowStock(ctx context.Context, db *gorm.DB, medicineID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE inventories
		 SET low_stock = (available_quantity <= (SELECT reorder_level FROM medicines WHERE medicines.id = ?))
		 WHERE medicine_id = ?`,
		medicineID,
		medicineID,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Inventory, error) {
	var rows []domain.Inventory
	err := db.WithContext(ctx).Order("medicine_id").Find(&rows).Error
	return rows, err
}

func (r *repo) ListLowStock(ctx context.Context, db *gorm.DB) ([]domain.Inventory, error) {
	var rows []domain.Inventory
	err := db.WithContext(ctx).Raw(
		`SELECT inventories.*
		 FROM inventories
		 JOIN medicines ON medicines.id = inventories.medicine_id
		 WHERE inventories.available_quantity <= medicines.reorder_level
		 ORDER BY inventories.available_quantity`,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) ListOutOfStock(ctx context.Context, db *gorm.DB) ([]domain.Inventory, error) {
	var rows []domain.Inventory
	err := db.WithContext(ctx).Where("available_quantity = 0").Find(&rows).Error
	return rows, err
}

func (r *repo) CountLowStock(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Inventory{}).Where("low_stock = ?", true).Count(&count).Error
	return count, err
}
