// Package seed bootstraps the records a fresh install needs to be usable.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	customerdomain "github.com/amancodes12/pharmaease/internal/customer/domain"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	pharmacistdomain "github.com/amancodes12/pharmaease/internal/pharmacist/domain"
	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminName     = "Administrator"
	defaultAdminEmail    = "admin@pharmaease.local"
	defaultAdminPassword = "changeme123"
)

// EnsureAdminPharmacist creates the bootstrap operator account when no
// pharmacist exists yet.
func EnsureAdminPharmacist(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&pharmacistdomain.Pharmacist{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		admin := pharmacistdomain.Pharmacist{
			ID:           node.Generate(),
			Name:         defaultAdminName,
			Email:        defaultAdminEmail,
			PasswordHash: string(hash),
			Role:         "ADMIN",
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.Create(&admin).Error
	})
}

// Generator produces demo data. The random source is injected so callers
// control determinism.
type Generator interface {
	Generate(ctx context.Context, db *gorm.DB) error
}

type sampleGenerator struct {
	rng  *rand.Rand
	node *snowflake.Node
}

// NewSampleGenerator seeds a small demo catalog with stock.
func NewSampleGenerator(rng *rand.Rand, node *snowflake.Node) Generator {
	return &sampleGenerator{rng: rng, node: node}
}

func (g *sampleGenerator) Generate(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&catalogdomain.Medicine{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type sample struct {
		name         string
		generic      string
		category     string
		sellingPrice int64
	}
	samples := []sample{
		{"Paracetamol 500mg", "Paracetamol", "Analgesic", 500},
		{"Amoxicillin 250mg", "Amoxicillin", "Antibiotic", 1200},
		{"Cetirizine 10mg", "Cetirizine", "Antihistamine", 800},
		{"Omeprazole 20mg", "Omeprazole", "Antacid", 1500},
		{"Metformin 500mg", "Metformin", "Antidiabetic", 900},
	}

	now := time.Now().UTC()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supplier := catalogdomain.Supplier{
			ID:            g.node.Generate(),
			Name:          "MedSupply Distributors",
			ContactPerson: "Dinesh Rao",
			Email:         "orders@medsupply.example",
			Phone:         "020-4455-6677",
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Create(&supplier).Error; err != nil {
			return err
		}

		customers := []customerdomain.Customer{
			{ID: g.node.Generate(), Name: "Walk-in Regular", Phone: "9800000001", Active: true, CreatedAt: now, UpdatedAt: now},
			{ID: g.node.Generate(), Name: "Lakshmi Pillai", Phone: "9800000002", Email: "lakshmi@example.com", Active: true, CreatedAt: now, UpdatedAt: now},
		}
		for i := range customers {
			if err := tx.Create(&customers[i]).Error; err != nil {
				return err
			}
		}

		for i, item := range samples {
			medicine := catalogdomain.Medicine{
				ID:           g.node.Generate(),
				Name:         item.name,
				GenericName:  item.generic,
				Category:     item.category,
				DosageForm:   "Tablet",
				UnitPrice:    item.sellingPrice * 6 / 10,
				SellingPrice: item.sellingPrice,
				ReorderLevel: 10,
				Active:       true,
				SupplierID:   &supplier.ID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Create(&medicine).Error; err != nil {
				return err
			}

			quantity := 50 + g.rng.Intn(150)
			batch := batchdomain.StockBatch{
				ID:                g.node.Generate(),
				BatchNumber:       fmt.Sprintf("SEED-%04d", i+1),
				MedicineID:        medicine.ID,
				Quantity:          quantity,
				RemainingQuantity: quantity,
				CostPrice:         medicine.UnitPrice,
				ManufacturingDate: now.AddDate(0, -6, 0),
				ExpiryDate:        now.AddDate(1, 0, g.rng.Intn(180)),
				Active:            true,
				CreatedAt:         now,
			}
			if err := tx.Create(&batch).Error; err != nil {
				return err
			}

			inventory := inventorydomain.Inventory{
				ID:                g.node.Generate(),
				MedicineID:        medicine.ID,
				TotalQuantity:     quantity,
				AvailableQuantity: quantity,
				LowStock:          quantity <= 10,
				LastUpdated:       now,
			}
			if err := tx.Create(&inventory).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
