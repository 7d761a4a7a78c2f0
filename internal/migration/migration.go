// Package migration brings the schema up on startup so the service is
// usable out of the box for local and self-hosted deployments.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	auditdomain "github.com/amancodes12/pharmaease/internal/audit/domain"
	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	billingdomain "github.com/amancodes12/pharmaease/internal/billing/domain"
	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	customerdomain "github.com/amancodes12/pharmaease/internal/customer/domain"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	orderdomain "github.com/amancodes12/pharmaease/internal/order/domain"
	pharmacistdomain "github.com/amancodes12/pharmaease/internal/pharmacist/domain"
	reportdomain "github.com/amancodes12/pharmaease/internal/report/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed sql
var embeddedMigrations embed.FS

const migrationsDir = "sql"

// RunPostgres applies the versioned SQL migrations.
func RunPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not close the migrator here, it would close the shared *sql.DB.

	return nil
}

// AutoMigrate covers the dialects the versioned migrations do not,
// sqlite for local development and tests in particular.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&catalogdomain.Supplier{},
		&catalogdomain.Medicine{},
		&inventorydomain.Inventory{},
		&batchdomain.StockBatch{},
		&customerdomain.Customer{},
		&pharmacistdomain.Pharmacist{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&billingdomain.Invoice{},
		&reportdomain.Report{},
		&auditdomain.AuditLog{},
	)
}
