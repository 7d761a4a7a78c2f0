package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	Save(ctx context.Context, db *gorm.DB, customer *Customer) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]Customer, error)
	SearchByName(ctx context.Context, db *gorm.DB, name string) ([]Customer, error)
}
