package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amancodes12/pharmaease/internal/billing/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, invoice *domain.Invoice) error {
	return conn.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := conn.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) FindByNumber(ctx context.Context, conn *gorm.DB, invoiceNumber string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := conn.WithContext(ctx).First(&invoice, "invoice_number = ?", invoiceNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) FindByOrder(ctx context.Context, conn *gorm.DB, orderID snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := conn.WithContext(ctx).First(&invoice, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) ListAll(ctx context.Context, conn *gorm.DB) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := conn.WithContext(ctx).Order("generated_at DESC").Find(&invoices).Error
	return invoices, err
}

func (r *repo) ListBetween(ctx context.Context, conn *gorm.DB, start, end time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := conn.WithContext(ctx).
		Where("generated_at BETWEEN ? AND ?", start, end).
		Order("generated_at DESC").
		Find(&invoices).Error
	return invoices, err
}
