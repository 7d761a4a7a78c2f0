package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amancodes12/pharmaease/internal/report/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, report *domain.Report) error {
	return conn.WithContext(ctx).Create(report).Error
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.Report, error) {
	var report domain.Report
	err := conn.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *repo) ListAll(ctx context.Context, conn *gorm.DB) ([]domain.Report, error) {
	var reports []domain.Report
	err := conn.WithContext(ctx).Order("generated_at DESC").Find(&reports).Error
	return reports, err
}

func (r *repo) SumCompletedSalesBetween(ctx context.Context, conn *gorm.DB, start, end time.Time) (int64, error) {
	var total int64
	err := conn.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(total_amount), 0) FROM orders
		     WHERE status = ? AND created_at BETWEEN ? AND ?`,
			"COMPLETED", start, end).
		Scan(&total).Error
	return total, err
}

func (r *repo) CountCompletedOrdersBetween(ctx context.Context, conn *gorm.DB, start, end time.Time) (int64, error) {
	var count int64
	err := conn.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM orders
		     WHERE status = ? AND created_at BETWEEN ? AND ?`,
			"COMPLETED", start, end).
		Scan(&count).Error
	return count, err
}
