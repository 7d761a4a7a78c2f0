// Package domain holds the sales order state machine and its records.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentCard        PaymentMethod = "CARD"
	PaymentMobileMoney PaymentMethod = "MOBILE_MONEY"
	PaymentInsurance   PaymentMethod = "INSURANCE"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileMoney, PaymentInsurance:
		return true
	}
	return false
}

// Order is one sale. Amounts are minor currency units and always satisfy
// total_amount = subtotal + tax - discount. StockDeducted records whether the
// ledger debit for this order has happened, so completion and cancellation
// apply their inventory effects exactly once.
type Order struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"not null;uniqueIndex;size:50" json:"order_number"`
	CustomerID    *snowflake.ID `gorm:"index" json:"customer_id,omitempty"`
	PharmacistID  snowflake.ID  `gorm:"not null;index" json:"pharmacist_id"`
	Subtotal      int64         `gorm:"not null" json:"subtotal"`
	Tax           int64         `gorm:"not null" json:"tax"`
	Discount      int64         `gorm:"not null" json:"discount"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"`
	Status        OrderStatus   `gorm:"not null;size:20;index" json:"status"`
	PaymentMethod PaymentMethod `gorm:"not null;size:20" json:"payment_method"`
	Paid          bool          `gorm:"not null" json:"paid"`
	StockDeducted bool          `gorm:"not null" json:"-"`
	CreatedAt     time.Time     `gorm:"not null;index" json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// OrderItem is one line of an order. UnitPrice snapshots the medicine's
// selling price at order time and never changes afterwards.
type OrderItem struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrderID    snowflake.ID  `gorm:"not null;index" json:"order_id"`
	MedicineID snowflake.ID  `gorm:"not null;index" json:"medicine_id"`
	Quantity   int           `gorm:"not null" json:"quantity"`
	UnitPrice  int64         `gorm:"not null" json:"unit_price"`
	TotalPrice int64         `gorm:"not null" json:"total_price"`
	BatchID    *snowflake.ID `json:"batch_id,omitempty"`
}

// TableName sets the database table name.
func (OrderItem) TableName() string { return "order_items" }
