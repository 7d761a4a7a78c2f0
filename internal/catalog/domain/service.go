package domain

import (
	"context"
	"errors"
)

type CreateMedicineRequest struct {
	Name                 string
	GenericName          string
	Manufacturer         string
	Category             string
	DosageForm           string
	Strength             string
	Description          string
	UnitPrice            int64
	SellingPrice         int64
	ReorderLevel         *int
	RequiresPrescription bool
	SupplierID           *string
}

type UpdateMedicineRequest struct {
	Name                 string
	GenericName          string
	Manufacturer         string
	Category             string
	DosageForm           string
	Strength             string
	Description          string
	UnitPrice            int64
	SellingPrice         int64
	ReorderLevel         int
	RequiresPrescription bool
	Active               bool
	SupplierID           *string
}

type CreateSupplierRequest struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

type Service interface {
	CreateMedicine(ctx context.Context, req CreateMedicineRequest) (Medicine, error)
	UpdateMedicine(ctx context.Context, id string, req UpdateMedicineRequest) (Medicine, error)
	DeleteMedicine(ctx context.Context, id string) error
	GetMedicineByID(ctx context.Context, id string) (Medicine, error)
	ListMedicines(ctx context.Context, activeOnly bool) ([]Medicine, error)
	SearchMedicines(ctx context.Context, keyword string) ([]Medicine, error)
	ListMedicinesByCategory(ctx context.Context, category string) ([]Medicine, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListManufacturers(ctx context.Context) ([]string, error)

	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (Supplier, error)
	UpdateSupplier(ctx context.Context, id string, req CreateSupplierRequest) (Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
	GetSupplierByID(ctx context.Context, id string) (Supplier, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)
}

var (
	ErrNotFound            = errors.New("not_found")
	ErrSupplierNotFound    = errors.New("supplier_not_found")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidReorderLevel = errors.New("invalid_reorder_level")
)
