package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amancodes12/pharmaease/internal/providers/pdf"
)

func (s *Server) GetInvoice(c *gin.Context) {
	invoice, err := s.billingSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) GetInvoiceByNumber(c *gin.Context) {
	invoice, err := s.billingSvc.GetByNumber(c.Request.Context(), c.Param("invoiceNumber"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) ListInvoices(c *gin.Context) {
	ctx := c.Request.Context()

	startRaw, endRaw := c.Query("start"), c.Query("end")
	if startRaw != "" && endRaw != "" {
		start, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			AbortWithError(c, newValidationError("start", "invalid_time", "invalid start time"))
			return
		}
		end, err := time.Parse(time.RFC3339, endRaw)
		if err != nil {
			AbortWithError(c, newValidationError("end", "invalid_time", "invalid end time"))
			return
		}
		invoices, err := s.billingSvc.ListBetween(ctx, start, end)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": invoices})
		return
	}

	invoices, err := s.billingSvc.ListAll(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

// DownloadReceipt streams the printable PDF for an invoice.
func (s *Server) DownloadReceipt(c *gin.Context) {
	ctx := c.Request.Context()

	invoice, err := s.billingSvc.GetByID(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.GetByID(ctx, invoice.OrderID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.ReceiptData{
		PharmacyName:  s.cfg.AppName,
		InvoiceNumber: invoice.InvoiceNumber,
		OrderNumber:   order.OrderNumber,
		IssuedAt:      invoice.GeneratedAt.Format("2006-01-02 15:04"),
		CustomerName:  "Walk-in",
		PaymentMethod: string(order.PaymentMethod),
		Subtotal:      formatMoney(order.Subtotal),
		Tax:           formatMoney(order.Tax),
		Discount:      formatMoney(order.Discount),
		Total:         formatMoney(order.TotalAmount),
		AmountPaid:    formatMoney(invoice.AmountPaid),
		ChangeGiven:   formatMoney(invoice.ChangeGiven),
	}

	if order.CustomerID != nil {
		if customer, err := s.customerSvc.GetByID(ctx, order.CustomerID.String()); err == nil {
			data.CustomerName = customer.Name
		}
	}
	if pharmacist, err := s.pharmacistSvc.GetByID(ctx, order.PharmacistID.String()); err == nil {
		data.PharmacistName = pharmacist.Name
	}

	for _, item := range order.Items {
		description := item.MedicineID.String()
		if medicine, err := s.catalogSvc.GetMedicineByID(ctx, item.MedicineID.String()); err == nil {
			description = medicine.Name
		}
		data.Items = append(data.Items, pdf.ReceiptItem{
			Description: description,
			Qty:         item.Quantity,
			UnitPrice:   formatMoney(item.UnitPrice),
			Amount:      formatMoney(item.TotalPrice),
		})
	}

	reader, err := s.pdfProvider.GenerateReceipt(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", invoice.InvoiceNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

// formatMoney renders minor units as a decimal amount, 2625 -> "26.25".
func formatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
