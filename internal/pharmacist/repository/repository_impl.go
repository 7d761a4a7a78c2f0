package repository

import (
	"context"
	"errors"

	"github.com/amancodes12/pharmaease/internal/pharmacist/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, pharmacist *domain.Pharmacist) error {
	return conn.WithContext(ctx).Create(pharmacist).Error
}

func (r *repo) Save(ctx context.Context, conn *gorm.DB, pharmacist *domain.Pharmacist) error {
	return conn.WithContext(ctx).Save(pharmacist).Error
}

func (r *repo) Delete(ctx context.Context, conn *gorm.DB, id snowflake.ID) error {
	return conn.WithContext(ctx).Where("id = ?", id).Delete(&domain.Pharmacist{}).Error
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.Pharmacist, error) {
	var pharmacist domain.Pharmacist
	err := conn.WithContext(ctx).First(&pharmacist, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacist, nil
}

func (r *repo) FindByEmail(ctx context.Context, conn *gorm.DB, email string) (*domain.Pharmacist, error) {
	var pharmacist domain.Pharmacist
	err := conn.WithContext(ctx).First(&pharmacist, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacist, nil
}

func (r *repo) List(ctx context.Context, conn *gorm.DB, activeOnly bool) ([]domain.Pharmacist, error) {
	var pharmacists []domain.Pharmacist
	query := conn.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("name").Find(&pharmacists).Error
	return pharmacists, err
}
