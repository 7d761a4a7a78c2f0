package repository

import (
	"context"
	"errors"

	"github.com/amancodes12/pharmaease/internal/customer/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, customer *domain.Customer) error {
	return conn.WithContext(ctx).Create(customer).Error
}

func (r *repo) Save(ctx context.Context, conn *gorm.DB, customer *domain.Customer) error {
	return conn.WithContext(ctx).Save(customer).Error
}

func (r *repo) Delete(ctx context.Context, conn *gorm.DB, id snowflake.ID) error {
	return conn.WithContext(ctx).Where("id = ?", id).Delete(&domain.Customer{}).Error
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := conn.WithContext(ctx).First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) FindByPhone(ctx context.Context, conn *gorm.DB, phone string) (*domain.Customer, error) {
	var customer domain.Customer
	err := conn.WithContext(ctx).First(&customer, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, conn *gorm.DB, activeOnly bool) ([]domain.Customer, error) {
	var customers []domain.Customer
	query := conn.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("name").Find(&customers).Error
	return customers, err
}

func (r *repo) SearchByName(ctx context.Context, conn *gorm.DB, name string) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := conn.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("name").
		Find(&customers).Error
	return customers, err
}
