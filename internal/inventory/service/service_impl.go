package service

import (
	"context"
	"strings"

	"github.com/amancodes12/pharmaease/internal/inventory/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("inventory.service"),
		repo: p.Repo,
	}
}

func (s *Service) GetByMedicine(ctx context.Context, medicineID string) (domain.Inventory, error) {
	id, err := parseID(medicineID)
	if err != nil {
		return domain.Inventory{}, err
	}

	row, err := s.repo.FindByMedicine(ctx, s.db, id)
	if err != nil {
		return domain.Inventory{}, err
	}
	if row == nil {
		return domain.Inventory{}, domain.ErrNotFound
	}
	return *row, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Inventory, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) ListLowStock(ctx context.Context) ([]domain.Inventory, error) {
	return s.repo.ListLowStock(ctx, s.db)
}

func (s *Service) ListOutOfStock(ctx context.Context) ([]domain.Inventory, error) {
	return s.repo.ListOutOfStock(ctx, s.db)
}

func (s *Service) CountLowStock(ctx context.Context) (int64, error) {
	return s.repo.CountLowStock(ctx, s.db)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
