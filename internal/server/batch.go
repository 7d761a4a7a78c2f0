package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	"github.com/gin-gonic/gin"
)

type batchRequest struct {
	BatchNumber       string    `json:"batch_number"`
	MedicineID        string    `json:"medicine_id"`
	Quantity          int       `json:"quantity"`
	CostPrice         int64     `json:"cost_price"`
	ManufacturingDate time.Time `json:"manufacturing_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
	Active            *bool     `json:"active"`
}

func (s *Server) CreateBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	batch, err := s.batchSvc.Create(c.Request.Context(), batchdomain.CreateBatchRequest{
		BatchNumber:       req.BatchNumber,
		MedicineID:        req.MedicineID,
		Quantity:          req.Quantity,
		CostPrice:         req.CostPrice,
		ManufacturingDate: req.ManufacturingDate,
		ExpiryDate:        req.ExpiryDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "batch.create", "stock_batch", batch.ID.String(), map[string]any{
		"batch_number": batch.BatchNumber,
		"quantity":     batch.Quantity,
	})
	c.JSON(http.StatusCreated, gin.H{"data": batch})
}

func (s *Server) UpdateBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	batch, err := s.batchSvc.Update(c.Request.Context(), c.Param("id"), batchdomain.UpdateBatchRequest{
		BatchNumber:       req.BatchNumber,
		Quantity:          req.Quantity,
		CostPrice:         req.CostPrice,
		ManufacturingDate: req.ManufacturingDate,
		ExpiryDate:        req.ExpiryDate,
		Active:            active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "batch.update", "stock_batch", batch.ID.String(), nil)
	c.JSON(http.StatusOK, gin.H{"data": batch})
}

func (s *Server) DeleteBatch(c *gin.Context) {
	id := c.Param("id")
	if err := s.batchSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "batch.delete", "stock_batch", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GetBatch(c *gin.Context) {
	batch, err := s.batchSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": batch})
}

func (s *Server) ListBatches(c *gin.Context) {
	ctx := c.Request.Context()

	if number := strings.TrimSpace(c.Query("batch_number")); number != "" {
		batch, err := s.batchSvc.GetByNumber(ctx, number)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": []any{batch}})
		return
	}

	if medicineID := strings.TrimSpace(c.Query("medicine_id")); medicineID != "" {
		batches, err := s.batchSvc.ListByMedicine(ctx, medicineID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": batches})
		return
	}

	batches, err := s.batchSvc.ListAll(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": batches})
}

func (s *Server) ListExpiringBatches(c *gin.Context) {
	days := 30
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			AbortWithError(c, newValidationError("days", "invalid_days", "invalid days"))
			return
		}
		days = parsed
	}

	batches, err := s.batchSvc.ListExpiring(c.Request.Context(), days)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": batches})
}

func (s *Server) ListExpiredBatches(c *gin.Context) {
	batches, err := s.batchSvc.ListExpired(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": batches})
}
