package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amancodes12/pharmaease/internal/batch/domain"
	"github.com/amancodes12/pharmaease/pkg/db"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, batch *domain.StockBatch) error {
	return conn.WithContext(ctx).Create(batch).Error
}

func (r *repo) Save(ctx context.Context, conn *gorm.DB, batch *domain.StockBatch) error {
	return conn.WithContext(ctx).Save(batch).Error
}

func (r *repo) Delete(ctx context.Context, conn *gorm.DB, id snowflake.ID) error {
	return conn.WithContext(ctx).Where("id = ?", id).Delete(&domain.StockBatch{}).Error
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.StockBatch, error) {
	var batch domain.StockBatch
	err := conn.WithContext(ctx).First(&batch, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

func (r *repo) FindByNumber(ctx context.Context, conn *gorm.DB, batchNumber string) (*domain.StockBatch, error) {
	var batch domain.StockBatch
	err := conn.WithContext(ctx).First(&batch, "batch_number = ?", batchNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

func (r *repo) ListAll(ctx context.Context, conn *gorm.DB) ([]domain.StockBatch, error) {
	var batches []domain.StockBatch
	err := conn.WithContext(ctx).Order("expiry_date").Find(&batches).Error
	return batches, err
}

func (r *repo) ListByMedicine(ctx context.Context, conn *gorm.DB, medicineID snowflake.ID) ([]domain.StockBatch, error) {
	var batches []domain.StockBatch
	err := conn.WithContext(ctx).
		Where("medicine_id = ? AND active = ?", medicineID, true).
		Order("expiry_date").
		Find(&batches).Error
	return batches, err
}

func (r *repo) ListConsumable(ctx context.Context, conn *gorm.DB, medicineID snowflake.ID) ([]domain.StockBatch, error) {
	var batches []domain.StockBatch
	err := db.LockForUpdate(conn.WithContext(ctx)).
		Where("medicine_id = ? AND active = ? AND remaining_quantity > 0", medicineID, true).
		Order("expiry_date").
		Find(&batches).Error
	return batches, err
}

func (r *repo) ListExpiringBetween(ctx context.Context, conn *gorm.DB, from, to time.Time) ([]domain.StockBatch, error) {
	var batches []domain.StockBatch
	err := conn.WithContext(ctx).
		Where("active = ? AND expiry_date BETWEEN ? AND ?", true, from, to).
		Order("expiry_date").
		Find(&batches).Error
	return batches, err
}

func (r *repo) ListExpiredBefore(ctx context.Context, conn *gorm.DB, cutoff time.Time) ([]domain.StockBatch, error) {
	var batches []domain.StockBatch
	err := conn.WithContext(ctx).
		Where("active = ? AND expiry_date < ?", true, cutoff).
		Order("expiry_date").
		Find(&batches).Error
	return batches, err
}
