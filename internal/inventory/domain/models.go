// Package domain contains the per-medicine stock ledger.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Inventory is the single ledger row for one medicine. Quantities are whole
// units; total_quantity >= available_quantity always holds.
type Inventory struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	MedicineID        snowflake.ID `gorm:"not null;uniqueIndex" json:"medicine_id"`
	TotalQuantity     int          `gorm:"not null;default:0" json:"total_quantity"`
	AvailableQuantity int          `gorm:"not null;default:0" json:"available_quantity"`
	ReservedQuantity  int          `gorm:"not null;default:0" json:"reserved_quantity"`
	LowStock          bool         `gorm:"not null;default:false" json:"low_stock"`
	LastUpdated       time.Time    `gorm:"not null" json:"last_updated"`
}

// TableName sets the database table name.
func (Inventory) TableName() string { return "inventories" }
