package service

import (
	"context"
	"strings"
	"time"

	"github.com/amancodes12/pharmaease/internal/pharmacist/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("pharmacist.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.Pharmacist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Pharmacist{}, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Pharmacist{}, domain.ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return domain.Pharmacist{}, domain.ErrInvalidPassword
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.Pharmacist{}, err
	}
	if existing != nil {
		return domain.Pharmacist{}, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Pharmacist{}, err
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "PHARMACIST"
	}

	now := time.Now().UTC()
	pharmacist := domain.Pharmacist{
		ID:            s.genID.Generate(),
		Name:          name,
		Email:         email,
		PasswordHash:  string(hash),
		Phone:         strings.TrimSpace(req.Phone),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Role:          role,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &pharmacist); err != nil {
		return domain.Pharmacist{}, err
	}

	s.log.Info("pharmacist registered", zap.String("email", email))
	return pharmacist, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (domain.Pharmacist, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	pharmacist, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.Pharmacist{}, err
	}
	if pharmacist == nil || !pharmacist.Active {
		return domain.Pharmacist{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(pharmacist.PasswordHash), []byte(password)); err != nil {
		return domain.Pharmacist{}, domain.ErrInvalidCredentials
	}
	return *pharmacist, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (domain.Pharmacist, error) {
	pharmacistID, err := parseID(id)
	if err != nil {
		return domain.Pharmacist{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Pharmacist{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByID(ctx, s.db, pharmacistID)
	if err != nil {
		return domain.Pharmacist{}, err
	}
	if existing == nil {
		return domain.Pharmacist{}, domain.ErrNotFound
	}

	existing.Name = name
	existing.Phone = strings.TrimSpace(req.Phone)
	existing.LicenseNumber = strings.TrimSpace(req.LicenseNumber)
	if role := strings.TrimSpace(req.Role); role != "" {
		existing.Role = role
	}
	existing.Active = req.Active
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, existing); err != nil {
		return domain.Pharmacist{}, err
	}
	return *existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	pharmacistID, err := parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, pharmacistID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, pharmacistID)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Pharmacist, error) {
	pharmacistID, err := parseID(id)
	if err != nil {
		return domain.Pharmacist{}, err
	}

	pharmacist, err := s.repo.FindByID(ctx, s.db, pharmacistID)
	if err != nil {
		return domain.Pharmacist{}, err
	}
	if pharmacist == nil {
		return domain.Pharmacist{}, domain.ErrNotFound
	}
	return *pharmacist, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (domain.Pharmacist, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	pharmacist, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.Pharmacist{}, err
	}
	if pharmacist == nil {
		return domain.Pharmacist{}, domain.ErrNotFound
	}
	return *pharmacist, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Pharmacist, error) {
	return s.repo.List(ctx, s.db, activeOnly)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
