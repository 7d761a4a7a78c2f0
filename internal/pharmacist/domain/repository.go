package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, pharmacist *Pharmacist) error
	Save(ctx context.Context, db *gorm.DB, pharmacist *Pharmacist) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Pharmacist, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Pharmacist, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]Pharmacist, error)
}
