// Package server exposes the HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amancodes12/pharmaease/internal/audit"
	auditdomain "github.com/amancodes12/pharmaease/internal/audit/domain"
	"github.com/amancodes12/pharmaease/internal/batch"
	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	"github.com/amancodes12/pharmaease/internal/billing"
	billingdomain "github.com/amancodes12/pharmaease/internal/billing/domain"
	"github.com/amancodes12/pharmaease/internal/catalog"
	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	"github.com/amancodes12/pharmaease/internal/config"
	"github.com/amancodes12/pharmaease/internal/customer"
	customerdomain "github.com/amancodes12/pharmaease/internal/customer/domain"
	"github.com/amancodes12/pharmaease/internal/inventory"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	"github.com/amancodes12/pharmaease/internal/order"
	orderdomain "github.com/amancodes12/pharmaease/internal/order/domain"
	"github.com/amancodes12/pharmaease/internal/pharmacist"
	pharmacistdomain "github.com/amancodes12/pharmaease/internal/pharmacist/domain"
	"github.com/amancodes12/pharmaease/internal/providers/pdf"
	"github.com/amancodes12/pharmaease/internal/report"
	reportdomain "github.com/amancodes12/pharmaease/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	audit.Module,
	catalog.Module,
	inventory.Module,
	batch.Module,
	customer.Module,
	pharmacist.Module,
	billing.Module,
	order.Module,
	report.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	genID         *snowflake.Node
	auditSvc      auditdomain.Service
	catalogSvc    catalogdomain.Service
	inventorySvc  inventorydomain.Service
	batchSvc      batchdomain.Service
	customerSvc   customerdomain.Service
	pharmacistSvc pharmacistdomain.Service
	orderSvc      orderdomain.Service
	billingSvc    billingdomain.Service
	reportSvc     reportdomain.Service
	pdfProvider   pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	GenID         *snowflake.Node
	AuditSvc      auditdomain.Service
	CatalogSvc    catalogdomain.Service
	InventorySvc  inventorydomain.Service
	BatchSvc      batchdomain.Service
	CustomerSvc   customerdomain.Service
	PharmacistSvc pharmacistdomain.Service
	OrderSvc      orderdomain.Service
	BillingSvc    billingdomain.Service
	ReportSvc     reportdomain.Service
	PDFProvider   pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		genID:         p.GenID,
		auditSvc:      p.AuditSvc,
		catalogSvc:    p.CatalogSvc,
		inventorySvc:  p.InventorySvc,
		batchSvc:      p.BatchSvc,
		customerSvc:   p.CustomerSvc,
		pharmacistSvc: p.PharmacistSvc,
		orderSvc:      p.OrderSvc,
		billingSvc:    p.BillingSvc,
		reportSvc:     p.ReportSvc,
		pdfProvider:   p.PDFProvider,
	}

	svc.registerAPIRoutes()
	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	medicines := api.Group("/medicines")
	medicines.POST("", s.CreateMedicine)
	medicines.GET("", s.ListMedicines)
	medicines.GET("/categories", s.ListCategories)
	medicines.GET("/manufacturers", s.ListManufacturers)
	medicines.GET("/:id", s.GetMedicine)
	medicines.PUT("/:id", s.UpdateMedicine)
	medicines.DELETE("/:id", s.DeleteMedicine)

	suppliers := api.Group("/suppliers")
	suppliers.POST("", s.CreateSupplier)
	suppliers.GET("", s.ListSuppliers)
	suppliers.GET("/:id", s.GetSupplier)
	suppliers.PUT("/:id", s.UpdateSupplier)
	suppliers.DELETE("/:id", s.DeleteSupplier)

	inventories := api.Group("/inventory")
	inventories.GET("", s.ListInventory)
	inventories.GET("/low-stock", s.ListLowStock)
	inventories.GET("/out-of-stock", s.ListOutOfStock)
	inventories.GET("/:medicineId", s.GetInventory)

	batches := api.Group("/batches")
	batches.POST("", s.CreateBatch)
	batches.GET("", s.ListBatches)
	batches.GET("/expiring", s.ListExpiringBatches)
	batches.GET("/expired", s.ListExpiredBatches)
	batches.GET("/:id", s.GetBatch)
	batches.PUT("/:id", s.UpdateBatch)
	batches.DELETE("/:id", s.DeleteBatch)

	customers := api.Group("/customers")
	customers.POST("", s.CreateCustomer)
	customers.GET("", s.ListCustomers)
	customers.GET("/:id", s.GetCustomer)
	customers.PUT("/:id", s.UpdateCustomer)
	customers.DELETE("/:id", s.DeleteCustomer)

	pharmacists := api.Group("/pharmacists")
	pharmacists.POST("", s.RegisterPharmacist)
	pharmacists.POST("/authenticate", s.AuthenticatePharmacist)
	pharmacists.GET("", s.ListPharmacists)
	pharmacists.GET("/:id", s.GetPharmacist)
	pharmacists.PUT("/:id", s.UpdatePharmacist)
	pharmacists.DELETE("/:id", s.DeletePharmacist)

	orders := api.Group("/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/number/:orderNumber", s.GetOrderByNumber)
	orders.GET("/:id", s.GetOrder)
	orders.POST("/:id/complete", s.CompleteOrder)
	orders.POST("/:id/cancel", s.CancelOrder)

	invoices := api.Group("/invoices")
	invoices.GET("", s.ListInvoices)
	invoices.GET("/number/:invoiceNumber", s.GetInvoiceByNumber)
	invoices.GET("/:id", s.GetInvoice)
	invoices.GET("/:id/pdf", s.DownloadReceipt)

	reports := api.Group("/reports")
	reports.POST("/sales", s.GenerateSalesReport)
	reports.POST("/inventory", s.GenerateInventoryReport)
	reports.POST("/low-stock", s.GenerateLowStockReport)
	reports.POST("/expiring-stock", s.GenerateExpiringStockReport)
	reports.GET("", s.ListReports)
	reports.GET("/:id", s.GetReport)
	reports.GET("/dashboard", s.Dashboard)

	auditLogs := api.Group("/audit-logs")
	auditLogs.GET("", s.ListAuditLogs)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
