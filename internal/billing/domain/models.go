package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Invoice is the billing record cut for a completed sale. Amounts are in
// minor currency units. One invoice per order, enforced by the unique index.
type Invoice struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceNumber string       `gorm:"not null;uniqueIndex;size:50" json:"invoice_number"`
	OrderID       snowflake.ID `gorm:"not null;uniqueIndex" json:"order_id"`
	AmountPaid    int64        `gorm:"not null" json:"amount_paid"`
	ChangeGiven   int64        `gorm:"not null" json:"change_given"`
	GeneratedAt   time.Time    `gorm:"not null" json:"generated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
