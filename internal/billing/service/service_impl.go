package service

import (
	"context"
	"strings"
	"time"

	"github.com/amancodes12/pharmaease/internal/billing/domain"
	"github.com/amancodes12/pharmaease/internal/clock"
	pkgdb "github.com/amancodes12/pharmaease/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return newService(p)
}

func NewIssuer(p Params) domain.Issuer {
	return newService(p)
}

func newService(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("billing.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Issue records the invoice for an order within the caller's transaction.
// An order that already carries an invoice gets that invoice back untouched,
// so retried completions never double-bill.
func (s *Service) Issue(ctx context.Context, tx *gorm.DB, orderID snowflake.ID, total, amountPaid int64) (domain.Invoice, error) {
	existing, err := s.repo.FindByOrder(ctx, tx, orderID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	change := amountPaid - total
	if change < 0 {
		change = 0
	}

	invoice := domain.Invoice{
		ID:            s.genID.Generate(),
		InvoiceNumber: s.nextNumber(),
		OrderID:       orderID,
		AmountPaid:    amountPaid,
		ChangeGiven:   change,
		GeneratedAt:   s.clock.Now(),
	}

	// Each attempt runs under its own savepoint: postgres aborts the whole
	// transaction on a failed statement, so without the savepoint a
	// duplicate key would poison the caller's transaction and the retry
	// could never succeed.
	insert := func() error {
		return tx.Transaction(func(tx *gorm.DB) error {
			return s.repo.Insert(ctx, tx, &invoice)
		})
	}
	err = insert()
	if err != nil && pkgdb.IsDuplicateKeyErr(err) {
		// Number collision. Mint a fresh one and try a single retry.
		invoice.ID = s.genID.Generate()
		invoice.InvoiceNumber = s.nextNumber()
		err = insert()
	}
	if err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice issued",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int64("order_id", int64(orderID)),
	)
	return invoice, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func (s *Service) GetByNumber(ctx context.Context, invoiceNumber string) (domain.Invoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return domain.Invoice{}, domain.ErrNotFound
	}

	invoice, err := s.repo.FindByNumber(ctx, s.db, invoiceNumber)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func (s *Service) GetByOrder(ctx context.Context, orderID string) (domain.Invoice, error) {
	id, err := parseID(orderID)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByOrder(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	return s.repo.ListAll(ctx, s.db)
}

func (s *Service) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	return s.repo.ListBetween(ctx, s.db, start, end)
}

func (s *Service) nextNumber() string {
	return "INV-" + ulid.Make().String()
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
