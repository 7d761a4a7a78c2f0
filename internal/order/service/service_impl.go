package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	billingdomain "github.com/amancodes12/pharmaease/internal/billing/domain"
	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	"github.com/amancodes12/pharmaease/internal/clock"
	customerdomain "github.com/amancodes12/pharmaease/internal/customer/domain"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	"github.com/amancodes12/pharmaease/internal/order/domain"
	pharmacistdomain "github.com/amancodes12/pharmaease/internal/pharmacist/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// taxRateBasisPoints is the flat sales tax applied to every order.
const taxRateBasisPoints = 500

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	GenID          *snowflake.Node
	Clock          clock.Clock
	Repo           domain.Repository
	InventoryRepo  inventorydomain.Repository
	BatchRepo      batchdomain.Repository
	MedicineRepo   catalogdomain.Repository
	CustomerRepo   customerdomain.Repository
	PharmacistRepo pharmacistdomain.Repository
	Issuer         billingdomain.Issuer
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	clock          clock.Clock
	repo           domain.Repository
	inventoryRepo  inventorydomain.Repository
	batchRepo      batchdomain.Repository
	medicineRepo   catalogdomain.Repository
	customerRepo   customerdomain.Repository
	pharmacistRepo pharmacistdomain.Repository
	issuer         billingdomain.Issuer
}

func New(p Params) domain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("order.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		repo:           p.Repo,
		inventoryRepo:  p.InventoryRepo,
		batchRepo:      p.BatchRepo,
		medicineRepo:   p.MedicineRepo,
		customerRepo:   p.CustomerRepo,
		pharmacistRepo: p.PharmacistRepo,
		issuer:         p.Issuer,
	}
}

// Create validates, prices, and persists an order in one transaction. An
// order created straight into COMPLETED also debits the ledger, consumes
// batches, and gets its invoice before the transaction commits. If any
// item's deduction fails the whole transaction rolls back and nothing is
// persisted.
func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Result, error) {
	if len(req.Items) == 0 {
		return domain.Result{}, domain.ErrEmptyOrder
	}
	if req.Discount < 0 {
		return domain.Result{}, domain.ErrInvalidDiscount
	}

	status := req.Status
	if status == "" {
		status = domain.StatusPending
	}
	if status != domain.StatusPending && status != domain.StatusCompleted {
		return domain.Result{}, domain.ErrInvalidStatus
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = domain.PaymentCash
	}
	if !domain.ValidPaymentMethod(payment) {
		return domain.Result{}, domain.ErrInvalidPayment
	}

	pharmacistID, err := snowflake.ParseString(strings.TrimSpace(req.PharmacistID))
	if err != nil || pharmacistID == 0 {
		return domain.Result{}, domain.ErrInvalidID
	}

	var customerID *snowflake.ID
	if trimmed := strings.TrimSpace(req.CustomerID); trimmed != "" {
		id, err := snowflake.ParseString(trimmed)
		if err != nil || id == 0 {
			return domain.Result{}, domain.ErrInvalidID
		}
		customerID = &id
	}

	type lineItem struct {
		medicineID snowflake.ID
		quantity   int
		unitPrice  int64
	}
	lines := make([]lineItem, 0, len(req.Items))
	for _, item := range req.Items {
		medicineID, err := snowflake.ParseString(strings.TrimSpace(item.MedicineID))
		if err != nil || medicineID == 0 {
			return domain.Result{}, domain.ErrInvalidItem
		}
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return domain.Result{}, domain.ErrInvalidItem
		}
		lines = append(lines, lineItem{medicineID: medicineID, quantity: item.Quantity, unitPrice: item.UnitPrice})
	}

	orderNumber := strings.TrimSpace(req.OrderNumber)
	if orderNumber == "" {
		orderNumber = s.nextNumber()
	}

	var result domain.Result
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pharmacist, err := s.pharmacistRepo.FindByID(ctx, tx, pharmacistID)
		if err != nil {
			return err
		}
		if pharmacist == nil {
			return domain.ErrPharmacistNotFound
		}

		if customerID != nil {
			customer, err := s.customerRepo.FindByID(ctx, tx, *customerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.ErrCustomerNotFound
			}
		}

		if existing, err := s.repo.FindByNumber(ctx, tx, orderNumber); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrDuplicateOrderNo
		}

		items := make([]domain.OrderItem, 0, len(lines))
		var subtotal int64
		for _, line := range lines {
			medicine, err := s.medicineRepo.FindMedicineByID(ctx, tx, line.medicineID)
			if err != nil {
				return err
			}
			if medicine == nil {
				return domain.ErrMedicineNotFound
			}

			unitPrice := line.unitPrice
			if unitPrice == 0 {
				unitPrice = medicine.SellingPrice
			}
			totalPrice := unitPrice * int64(line.quantity)
			subtotal += totalPrice

			items = append(items, domain.OrderItem{
				ID:         s.genID.Generate(),
				MedicineID: line.medicineID,
				Quantity:   line.quantity,
				UnitPrice:  unitPrice,
				TotalPrice: totalPrice,
			})
		}

		tax := taxOn(subtotal)
		if req.Discount > subtotal+tax {
			return domain.ErrInvalidDiscount
		}
		order := domain.Order{
			ID:            s.genID.Generate(),
			OrderNumber:   orderNumber,
			CustomerID:    customerID,
			PharmacistID:  pharmacistID,
			Subtotal:      subtotal,
			Tax:           tax,
			Discount:      req.Discount,
			TotalAmount:   subtotal + tax - req.Discount,
			Status:        status,
			PaymentMethod: payment,
			Paid:          status == domain.StatusCompleted,
			CreatedAt:     s.clock.Now(),
		}

		// The conditional decrement is the stock validation. Any failed
		// item aborts here, before the order row exists.
		if status == domain.StatusCompleted {
			for _, item := range items {
				if err := s.inventoryRepo.Deduct(ctx, tx, item.MedicineID, item.Quantity); err != nil {
					return err
				}
			}
			order.StockDeducted = true
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.repo.Insert(ctx, tx, &order); err != nil {
			return err
		}
		if err := s.repo.InsertItems(ctx, tx, items); err != nil {
			return err
		}
		order.Items = items

		result = domain.Result{Order: order}
		if status == domain.StatusCompleted {
			s.consumeBatches(ctx, tx, &result)

			amountPaid := req.AmountPaid
			if amountPaid <= 0 {
				amountPaid = order.TotalAmount
			}
			s.issueInvoice(ctx, tx, &result, amountPaid)
		}
		return nil
	})
	if err != nil {
		return domain.Result{}, err
	}

	s.log.Info("order created",
		zap.String("order_number", result.Order.OrderNumber),
		zap.String("status", string(result.Order.Status)),
		zap.Int64("total_amount", result.Order.TotalAmount),
	)
	return result, nil
}

// Complete moves a pending order to COMPLETED. The ledger debit and batch
// consumption run here when order creation left them undone, so a
// two-phase sale depletes stock exactly once.
func (s *Service) Complete(ctx context.Context, id string, amountPaid int64) (domain.Result, error) {
	orderID, err := parseID(id)
	if err != nil {
		return domain.Result{}, err
	}

	var result domain.Result
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		switch order.Status {
		case domain.StatusCompleted:
			return domain.ErrAlreadyCompleted
		case domain.StatusCancelled:
			return domain.ErrAlreadyCancelled
		}

		result = domain.Result{}
		if !order.StockDeducted {
			for _, item := range order.Items {
				if err := s.inventoryRepo.Deduct(ctx, tx, item.MedicineID, item.Quantity); err != nil {
					return err
				}
			}
			order.StockDeducted = true
			result.Order = *order
			s.consumeBatches(ctx, tx, &result)
		}

		order.Status = domain.StatusCompleted
		order.Paid = true
		if err := s.repo.Save(ctx, tx, order); err != nil {
			return err
		}
		result.Order = *order

		if amountPaid <= 0 {
			amountPaid = order.TotalAmount
		}
		s.issueInvoice(ctx, tx, &result, amountPaid)
		return nil
	})
	if err != nil {
		return domain.Result{}, err
	}

	s.log.Info("order completed", zap.String("order_number", result.Order.OrderNumber))
	return result, nil
}

// Cancel moves a pending order to CANCELLED and credits back whatever the
// order had debited. A second cancel is a conflict, never a second credit.
func (s *Service) Cancel(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := parseID(id)
	if err != nil {
		return domain.Order{}, err
	}

	var cancelled domain.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		switch order.Status {
		case domain.StatusCompleted:
			return domain.ErrCancelCompleted
		case domain.StatusCancelled:
			return domain.ErrAlreadyCancelled
		}

		if order.StockDeducted {
			for _, item := range order.Items {
				if err := s.inventoryRepo.Adjust(ctx, tx, item.MedicineID, item.Quantity); err != nil {
					return err
				}
			}
			order.StockDeducted = false
		}

		order.Status = domain.StatusCancelled
		if err := s.repo.Save(ctx, tx, order); err != nil {
			return err
		}
		cancelled = *order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.log.Info("order cancelled", zap.String("order_number", cancelled.OrderNumber))
	return cancelled, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := parseID(id)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	return *order, nil
}

func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return domain.Order{}, domain.ErrNotFound
	}

	order, err := s.repo.FindByNumber(ctx, s.db, orderNumber)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	return *order, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx, s.db)
}

func (s *Service) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return s.repo.ListByStatus(ctx, s.db, status)
}

func (s *Service) ListRecent(ctx context.Context, days int) ([]domain.Order, error) {
	if days <= 0 {
		days = 7
	}
	return s.repo.ListCreatedAfter(ctx, s.db, s.clock.Now().AddDate(0, 0, -days))
}

func (s *Service) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Order, error) {
	return s.repo.ListBetween(ctx, s.db, start, end)
}

// consumeBatches walks each line item through FIFO-by-expiry allocation.
// Batch tracking is best effort: a shortfall or error becomes a warning on
// the result, never a rollback, because the ledger debit already happened
// and is authoritative.
func (s *Service) consumeBatches(ctx context.Context, tx *gorm.DB, result *domain.Result) {
	for i := range result.Order.Items {
		item := &result.Order.Items[i]

		// Each item allocates under its own savepoint. On postgres a failed
		// statement aborts the whole transaction, which would turn this
		// best-effort path into a rollback of the order at commit time.
		var short int
		err := tx.Transaction(func(tx *gorm.DB) error {
			allocations, n, err := batchdomain.Allocate(ctx, tx, s.batchRepo, item.MedicineID, item.Quantity)
			if err != nil {
				return err
			}
			short = n
			if len(allocations) > 0 {
				batchID := allocations[0].BatchID
				if err := tx.WithContext(ctx).Model(&domain.OrderItem{}).
					Where("id = ?", item.ID).
					Update("batch_id", batchID).Error; err != nil {
					return err
				}
				item.BatchID = &batchID
			}
			return nil
		})
		if err != nil {
			s.log.Warn("batch allocation failed",
				zap.String("order_number", result.Order.OrderNumber),
				zap.Int64("medicine_id", int64(item.MedicineID)),
				zap.Error(err),
			)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("batch allocation failed for medicine %s", item.MedicineID))
			continue
		}
		if short > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("batch tracking short by %d units for medicine %s", short, item.MedicineID))
		}
	}
}

// issueInvoice cuts the invoice for a completed order. Failure leaves the
// order standing and is surfaced as a warning.
func (s *Service) issueInvoice(ctx context.Context, tx *gorm.DB, result *domain.Result, amountPaid int64) {
	// The invoice gets its own savepoint so a failure here rolls back only
	// the invoice writes and the completed order still commits.
	var invoice billingdomain.Invoice
	err := tx.Transaction(func(tx *gorm.DB) error {
		issued, err := s.issuer.Issue(ctx, tx, result.Order.ID, result.Order.TotalAmount, amountPaid)
		if err != nil {
			return err
		}
		invoice = issued
		return nil
	})
	if err != nil {
		s.log.Error("invoice generation failed",
			zap.String("order_number", result.Order.OrderNumber),
			zap.Error(err),
		)
		result.Warnings = append(result.Warnings, "invoice generation failed")
		return
	}
	result.Invoice = &invoice
}

// taxOn applies the flat rate with half-up rounding on minor units.
func taxOn(subtotal int64) int64 {
	return (subtotal*taxRateBasisPoints + 5000) / 10000
}

func (s *Service) nextNumber() string {
	return "ORD-" + ulid.Make().String()
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
