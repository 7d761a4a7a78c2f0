package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Service interface {
	GetByID(ctx context.Context, id string) (Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (Invoice, error)
	GetByOrder(ctx context.Context, orderID string) (Invoice, error)
	ListAll(ctx context.Context) ([]Invoice, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]Invoice, error)
}

// Issuer cuts an invoice inside the caller's transaction. Issuing twice for
// the same order returns the invoice already on record.
type Issuer interface {
	Issue(ctx context.Context, tx *gorm.DB, orderID snowflake.ID, total, amountPaid int64) (Invoice, error)
}

var (
	ErrNotFound  = errors.New("invoice_not_found")
	ErrInvalidID = errors.New("invalid_id")
)
