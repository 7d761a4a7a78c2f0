// Package domain contains persistence models for the medicine catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Medicine is a sellable product. Prices are in minor currency units.
type Medicine struct {
	ID                   snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name                 string        `gorm:"not null;size:150" json:"name"`
	GenericName          string        `gorm:"size:100" json:"generic_name,omitempty"`
	Manufacturer         string        `gorm:"size:100" json:"manufacturer,omitempty"`
	Category             string        `gorm:"size:50;index" json:"category,omitempty"`
	DosageForm           string        `gorm:"size:50" json:"dosage_form,omitempty"`
	Strength             string        `gorm:"size:50" json:"strength,omitempty"`
	Description          string        `gorm:"type:text" json:"description,omitempty"`
	UnitPrice            int64         `gorm:"not null" json:"unit_price"`
	SellingPrice         int64         `gorm:"not null" json:"selling_price"`
	ReorderLevel         int           `gorm:"not null;default:10" json:"reorder_level"`
	RequiresPrescription bool          `gorm:"not null;default:false" json:"requires_prescription"`
	Active               bool          `gorm:"not null;default:true" json:"active"`
	SupplierID           *snowflake.ID `gorm:"index" json:"supplier_id,omitempty"`
	CreatedAt            time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time     `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Medicine) TableName() string { return "medicines" }

// Supplier is a medicine vendor.
type Supplier struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"not null;size:100" json:"name"`
	ContactPerson string       `gorm:"size:100" json:"contact_person,omitempty"`
	Email         string       `gorm:"size:100" json:"email,omitempty"`
	Phone         string       `gorm:"size:20" json:"phone,omitempty"`
	Address       string       `gorm:"type:text" json:"address,omitempty"`
	Active        bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Supplier) TableName() string { return "suppliers" }
