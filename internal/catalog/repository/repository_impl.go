package repository

import (
	"context"
	"errors"

	"github.com/amancodes12/pharmaease/internal/catalog/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertMedicine(ctx context.Context, db *gorm.DB, medicine *domain.Medicine) error {
	return db.WithContext(ctx).Create(medicine).Error
}

func (r *repo) SaveMedicine(ctx context.Context, db *gorm.DB, medicine *domain.Medicine) error {
	return db.WithContext(ctx).Save(medicine).Error
}

func (r *repo) DeleteMedicine(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Medicine{}).Error
}

func (r *repo) FindMedicineByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Medicine, error) {
	var medicine domain.Medicine
	err := db.WithContext(ctx).First(&medicine, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

func (r *repo) ListMedicines(ctx context.Context, db *gorm.DB, activeOnly bool) ([]domain.Medicine, error) {
	var medicines []domain.Medicine
	stmt := db.WithContext(ctx).Order("name")
	if activeOnly {
		stmt = stmt.Where("active = ?", true)
	}
	err := stmt.Find(&medicines).Error
	return medicines, err
}

func (r *repo) SearchMedicines(ctx context.Context, db *gorm.DB, keyword string) ([]domain.Medicine, error) {
	var medicines []domain.Medicine
	pattern := "%" + keyword + "%"
	err := db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(generic_name) LIKE LOWER(?)", pattern, pattern).
		Order("name").
		Find(&medicines).Error
	return medicines, err
}

func (r *repo) ListMedicinesByCategory(ctx context.Context, db *gorm.DB, category string) ([]domain.Medicine, error) {
	var medicines []domain.Medicine
	err := db.WithContext(ctx).Where("category = ?", category).Order("name").Find(&medicines).Error
	return medicines, err
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	var categories []string
	err := db.WithContext(ctx).
		Model(&domain.Medicine{}).
		Distinct("category").
		Where("category <> ''").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *repo) ListManufacturers(ctx context.Context, db *gorm.DB) ([]string, error) {
	var manufacturers []string
	err := db.WithContext(ctx).
		Model(&domain.Medicine{}).
		Distinct("manufacturer").
		Where("manufacturer <> ''").
		Order("manufacturer").
		Pluck("manufacturer", &manufacturers).Error
	return manufacturers, err
}

func (r *repo) InsertSupplier(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).Create(supplier).Error
}

func (r *repo) SaveSupplier(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).Save(supplier).Error
}

func (r *repo) DeleteSupplier(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Supplier{}).Error
}

func (r *repo) FindSupplierByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := db.WithContext(ctx).First(&supplier, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *repo) ListSuppliers(ctx context.Context, db *gorm.DB) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := db.WithContext(ctx).Order("name").Find(&suppliers).Error
	return suppliers, err
}
