package service

import (
	"context"
	"strings"

	"github.com/amancodes12/pharmaease/internal/catalog/domain"
	"github.com/amancodes12/pharmaease/internal/clock"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	InventoryRepo inventorydomain.Repository
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	inventoryRepo inventorydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("catalog.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		inventoryRepo: p.InventoryRepo,
	}
}

// CreateMedicine persists the medicine and its zero-quantity ledger row in
// one transaction; a medicine without a ledger row must never be visible.
func (s *Service) CreateMedicine(ctx context.Context, req domain.CreateMedicineRequest) (domain.Medicine, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Medicine{}, domain.ErrInvalidName
	}
	if req.UnitPrice < 0 || req.SellingPrice < 0 {
		return domain.Medicine{}, domain.ErrInvalidPrice
	}

	reorderLevel := 10
	if req.ReorderLevel != nil {
		if *req.ReorderLevel < 0 {
			return domain.Medicine{}, domain.ErrInvalidReorderLevel
		}
		reorderLevel = *req.ReorderLevel
	}

	var supplierID *snowflake.ID
	if req.SupplierID != nil && strings.TrimSpace(*req.SupplierID) != "" {
		id, err := parseID(*req.SupplierID)
		if err != nil {
			return domain.Medicine{}, err
		}
		supplierID = &id
	}

	now := s.clock.Now()
	medicine := domain.Medicine{
		ID:                   s.genID.Generate(),
		Name:                 name,
		GenericName:          strings.TrimSpace(req.GenericName),
		Manufacturer:         strings.TrimSpace(req.Manufacturer),
		Category:             strings.TrimSpace(req.Category),
		DosageForm:           strings.TrimSpace(req.DosageForm),
		Strength:             strings.TrimSpace(req.Strength),
		Description:          req.Description,
		UnitPrice:            req.UnitPrice,
		SellingPrice:         req.SellingPrice,
		ReorderLevel:         reorderLevel,
		RequiresPrescription: req.RequiresPrescription,
		Active:               true,
		SupplierID:           supplierID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if supplierID != nil {
			supplier, err := s.repo.FindSupplierByID(ctx, tx, *supplierID)
			if err != nil {
				return err
			}
			if supplier == nil {
				return domain.ErrSupplierNotFound
			}
		}

		if err := s.repo.InsertMedicine(ctx, tx, &medicine); err != nil {
			return err
		}

		return s.inventoryRepo.Insert(ctx, tx, &inventorydomain.Inventory{
			ID:          s.genID.Generate(),
			MedicineID:  medicine.ID,
			LowStock:    true,
			LastUpdated: now,
		})
	})
	if err != nil {
		return domain.Medicine{}, err
	}

	return medicine, nil
}

func (s *Service) UpdateMedicine(ctx context.Context, id string, req domain.UpdateMedicineRequest) (domain.Medicine, error) {
	medicineID, err := parseID(id)
	if err != nil {
		return domain.Medicine{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Medicine{}, domain.ErrInvalidName
	}
	if req.UnitPrice < 0 || req.SellingPrice < 0 {
		return domain.Medicine{}, domain.ErrInvalidPrice
	}
	if req.ReorderLevel < 0 {
		return domain.Medicine{}, domain.ErrInvalidReorderLevel
	}

	var updated domain.Medicine
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindMedicineByID(ctx, tx, medicineID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		existing.Name = name
		existing.GenericName = strings.TrimSpace(req.GenericName)
		existing.Manufacturer = strings.TrimSpace(req.Manufacturer)
		existing.Category = strings.TrimSpace(req.Category)
		existing.DosageForm = strings.TrimSpace(req.DosageForm)
		existing.Strength = strings.TrimSpace(req.Strength)
		existing.Description = req.Description
		existing.UnitPrice = req.UnitPrice
		existing.SellingPrice = req.SellingPrice
		existing.ReorderLevel = req.ReorderLevel
		existing.RequiresPrescription = req.RequiresPrescription
		existing.Active = req.Active
		existing.UpdatedAt = s.clock.Now()

		if req.SupplierID != nil && strings.TrimSpace(*req.SupplierID) != "" {
			supplierID, err := parseID(*req.SupplierID)
			if err != nil {
				return err
			}
			supplier, err := s.repo.FindSupplierByID(ctx, tx, supplierID)
			if err != nil {
				return err
			}
			if supplier == nil {
				return domain.ErrSupplierNotFound
			}
			existing.SupplierID = &supplierID
		} else {
			existing.SupplierID = nil
		}

		if err := s.repo.SaveMedicine(ctx, tx, existing); err != nil {
			return err
		}

		// Reorder level feeds the low-stock flag; keep the ledger in sync.
		if err := s.inventoryRepo.Adjust(ctx, tx, medicineID, 0); err != nil {
			return err
		}

		updated = *existing
		return nil
	})
	if err != nil {
		return domain.Medicine{}, err
	}

	return updated, nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id string) error {
	medicineID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindMedicineByID(ctx, tx, medicineID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		// The ledger row lives and dies with its medicine.
		if err := tx.WithContext(ctx).Where("medicine_id = ?", medicineID).
			Delete(&inventorydomain.Inventory{}).Error; err != nil {
			return err
		}

		return s.repo.DeleteMedicine(ctx, tx, medicineID)
	})
}

func (s *Service) GetMedicineByID(ctx context.Context, id string) (domain.Medicine, error) {
	medicineID, err := parseID(id)
	if err != nil {
		return domain.Medicine{}, err
	}

	medicine, err := s.repo.FindMedicineByID(ctx, s.db, medicineID)
	if err != nil {
		return domain.Medicine{}, err
	}
	if medicine == nil {
		return domain.Medicine{}, domain.ErrNotFound
	}
	return *medicine, nil
}

func (s *Service) ListMedicines(ctx context.Context, activeOnly bool) ([]domain.Medicine, error) {
	return s.repo.ListMedicines(ctx, s.db, activeOnly)
}

func (s *Service) SearchMedicines(ctx context.Context, keyword string) ([]domain.Medicine, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.repo.ListMedicines(ctx, s.db, false)
	}
	return s.repo.SearchMedicines(ctx, s.db, keyword)
}

func (s *Service) ListMedicinesByCategory(ctx context.Context, category string) ([]domain.Medicine, error) {
	return s.repo.ListMedicinesByCategory(ctx, s.db, strings.TrimSpace(category))
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx, s.db)
}

func (s *Service) ListManufacturers(ctx context.Context) ([]string, error) {
	return s.repo.ListManufacturers(ctx, s.db)
}

func (s *Service) CreateSupplier(ctx context.Context, req domain.CreateSupplierRequest) (domain.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Supplier{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	supplier := domain.Supplier{
		ID:            s.genID.Generate(),
		Name:          name,
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       req.Address,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.InsertSupplier(ctx, s.db, &supplier); err != nil {
		return domain.Supplier{}, err
	}
	return supplier, nil
}

func (s *Service) UpdateSupplier(ctx context.Context, id string, req domain.CreateSupplierRequest) (domain.Supplier, error) {
	supplierID, err := parseID(id)
	if err != nil {
		return domain.Supplier{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Supplier{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindSupplierByID(ctx, s.db, supplierID)
	if err != nil {
		return domain.Supplier{}, err
	}
	if existing == nil {
		return domain.Supplier{}, domain.ErrNotFound
	}

	existing.Name = name
	existing.ContactPerson = strings.TrimSpace(req.ContactPerson)
	existing.Email = strings.TrimSpace(req.Email)
	existing.Phone = strings.TrimSpace(req.Phone)
	existing.Address = req.Address
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.SaveSupplier(ctx, s.db, existing); err != nil {
		return domain.Supplier{}, err
	}
	return *existing, nil
}

func (s *Service) DeleteSupplier(ctx context.Context, id string) error {
	supplierID, err := parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindSupplierByID(ctx, s.db, supplierID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.DeleteSupplier(ctx, s.db, supplierID)
}

func (s *Service) GetSupplierByID(ctx context.Context, id string) (domain.Supplier, error) {
	supplierID, err := parseID(id)
	if err != nil {
		return domain.Supplier{}, err
	}

	supplier, err := s.repo.FindSupplierByID(ctx, s.db, supplierID)
	if err != nil {
		return domain.Supplier{}, err
	}
	if supplier == nil {
		return domain.Supplier{}, domain.ErrNotFound
	}
	return *supplier, nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.ListSuppliers(ctx, s.db)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
