// Package domain contains stock lot models and the allocation contract.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// StockBatch is one received lot of a medicine. remaining_quantity counts
// down as orders consume the lot; 0 <= remaining_quantity <= quantity.
type StockBatch struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	BatchNumber       string       `gorm:"not null;uniqueIndex;size:50" json:"batch_number"`
	MedicineID        snowflake.ID `gorm:"not null;index" json:"medicine_id"`
	Quantity          int          `gorm:"not null" json:"quantity"`
	RemainingQuantity int          `gorm:"not null" json:"remaining_quantity"`
	CostPrice         int64        `gorm:"not null" json:"cost_price"`
	ManufacturingDate time.Time    `gorm:"not null" json:"manufacturing_date"`
	ExpiryDate        time.Time    `gorm:"not null;index" json:"expiry_date"`
	Active            bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt         time.Time    `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (StockBatch) TableName() string { return "stock_batches" }

// Allocation records how much of a request one batch satisfied.
type Allocation struct {
	BatchID  snowflake.ID
	Quantity int
}
