package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertMedicine(ctx context.Context, db *gorm.DB, medicine *Medicine) error
	SaveMedicine(ctx context.Context, db *gorm.DB, medicine *Medicine) error
	DeleteMedicine(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindMedicineByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Medicine, error)
	ListMedicines(ctx context.Context, db *gorm.DB, activeOnly bool) ([]Medicine, error)
	SearchMedicines(ctx context.Context, db *gorm.DB, keyword string) ([]Medicine, error)
	ListMedicinesByCategory(ctx context.Context, db *gorm.DB, category string) ([]Medicine, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]string, error)
	ListManufacturers(ctx context.Context, db *gorm.DB) ([]string, error)

	InsertSupplier(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	SaveSupplier(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	DeleteSupplier(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindSupplierByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Supplier, error)
	ListSuppliers(ctx context.Context, db *gorm.DB) ([]Supplier, error)
}
