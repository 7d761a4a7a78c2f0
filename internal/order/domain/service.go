package domain

import (
	"context"
	"errors"
	"time"

	billingdomain "github.com/amancodes12/pharmaease/internal/billing/domain"
)

type ItemRequest struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int    `json:"quantity"`

	// UnitPrice overrides the catalog selling price when positive. Zero
	// means snapshot the current selling price.
	UnitPrice int64 `json:"unit_price"`
}

type CreateOrderRequest struct {
	OrderNumber   string        `json:"order_number"`
	CustomerID    string        `json:"customer_id"`
	PharmacistID  string        `json:"pharmacist_id"`
	Items         []ItemRequest `json:"items"`
	Discount      int64         `json:"discount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        OrderStatus   `json:"status"`
	AmountPaid    int64         `json:"amount_paid"`
}

// Result is a persisted order plus the side effects of getting it there.
// Warnings carry the non-fatal failures of the degraded paths, batch
// tracking and invoicing, which never fail the order itself.
type Result struct {
	Order    Order                  `json:"order"`
	Invoice  *billingdomain.Invoice `json:"invoice,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (Result, error)
	Complete(ctx context.Context, id string, amountPaid int64) (Result, error)
	Cancel(ctx context.Context, id string) (Order, error)

	GetByID(ctx context.Context, id string) (Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByStatus(ctx context.Context, status OrderStatus) ([]Order, error)
	ListRecent(ctx context.Context, days int) ([]Order, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]Order, error)
}

var (
	ErrNotFound           = errors.New("order_not_found")
	ErrInvalidID          = errors.New("invalid_id")
	ErrEmptyOrder         = errors.New("order_has_no_items")
	ErrInvalidItem        = errors.New("invalid_order_item")
	ErrInvalidStatus      = errors.New("invalid_order_status")
	ErrInvalidPayment     = errors.New("invalid_payment_method")
	ErrInvalidDiscount    = errors.New("invalid_discount")
	ErrPharmacistNotFound = errors.New("pharmacist_not_found")
	ErrCustomerNotFound   = errors.New("customer_not_found")
	ErrMedicineNotFound   = errors.New("medicine_not_found")
	ErrAlreadyCompleted   = errors.New("order_already_completed")
	ErrAlreadyCancelled   = errors.New("order_already_cancelled")
	ErrCancelCompleted    = errors.New("cannot_cancel_completed_order")
	ErrDuplicateOrderNo   = errors.New("duplicate_order_number")
)
