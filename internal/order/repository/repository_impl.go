package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amancodes12/pharmaease/internal/order/domain"
	"github.com/amancodes12/pharmaease/pkg/db"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, order *domain.Order) error {
	return conn.WithContext(ctx).Omit("Items").Create(order).Error
}

func (r *repo) InsertItems(ctx context.Context, conn *gorm.DB, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return conn.WithContext(ctx).Create(&items).Error
}

func (r *repo) Save(ctx context.Context, conn *gorm.DB, order *domain.Order) error {
	return conn.WithContext(ctx).Omit("Items").Save(order).Error
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := conn.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.LockForUpdate(conn.WithContext(ctx)).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := conn.WithContext(ctx).Where("order_id = ?", id).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repo) FindByNumber(ctx context.Context, conn *gorm.DB, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	err := conn.WithContext(ctx).Preload("Items").First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) ListAll(ctx context.Context, conn *gorm.DB) ([]domain.Order, error) {
	var orders []domain.Order
	err := conn.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *repo) ListByStatus(ctx context.Context, conn *gorm.DB, status domain.OrderStatus) ([]domain.Order, error) {
	var orders []domain.Order
	err := conn.WithContext(ctx).Preload("Items").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *repo) ListCreatedAfter(ctx context.Context, conn *gorm.DB, since time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := conn.WithContext(ctx).Preload("Items").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *repo) ListBetween(ctx context.Context, conn *gorm.DB, start, end time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := conn.WithContext(ctx).Preload("Items").
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
