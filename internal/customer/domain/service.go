package domain

import (
	"context"
	"errors"
)

type CustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IDNumber string `json:"id_number"`
	Active   *bool  `json:"active"`
}

type Service interface {
	Create(ctx context.Context, req CustomerRequest) (Customer, error)
	Update(ctx context.Context, id string, req CustomerRequest) (Customer, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Customer, error)
	GetByPhone(ctx context.Context, phone string) (Customer, error)
	List(ctx context.Context, activeOnly bool) ([]Customer, error)
	Search(ctx context.Context, name string) ([]Customer, error)
}

var (
	ErrNotFound    = errors.New("customer_not_found")
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidName = errors.New("invalid_name")
)
