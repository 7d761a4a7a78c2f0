package repository

import (
	"context"

	"github.com/amancodes12/pharmaease/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, entry *domain.AuditLog) error {
	return conn.WithContext(ctx).Create(entry).Error
}

func (r *repo) List(ctx context.Context, conn *gorm.DB, filter domain.ListFilter) ([]domain.AuditLog, error) {
	query := conn.WithContext(ctx).Model(&domain.AuditLog{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.TargetID != "" {
		query = query.Where("target_id = ?", filter.TargetID)
	}
	if filter.StartAt != nil {
		query = query.Where("created_at >= ?", *filter.StartAt)
	}
	if filter.EndAt != nil {
		query = query.Where("created_at <= ?", *filter.EndAt)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 250 {
		limit = 50
	}

	var entries []domain.AuditLog
	err := query.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
