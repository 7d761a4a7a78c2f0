package domain

import (
	"context"
	"errors"
)

type RegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	Role          string `json:"role"`
}

type UpdateRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	Role          string `json:"role"`
	Active        bool   `json:"active"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (Pharmacist, error)

	// Authenticate verifies the credentials against the stored hash. The
	// same error comes back for an unknown email and a wrong password.
	Authenticate(ctx context.Context, email, password string) (Pharmacist, error)

	Update(ctx context.Context, id string, req UpdateRequest) (Pharmacist, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pharmacist, error)
	GetByEmail(ctx context.Context, email string) (Pharmacist, error)
	List(ctx context.Context, activeOnly bool) ([]Pharmacist, error)
}

var (
	ErrNotFound           = errors.New("pharmacist_not_found")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrEmailTaken         = errors.New("email_already_registered")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)
