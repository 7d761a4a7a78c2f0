package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	"github.com/amancodes12/pharmaease/internal/observability/metrics"
	orderdomain "github.com/amancodes12/pharmaease/internal/order/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, inventorydomain.ErrInsufficientStock) {
			metrics.Order().InsufficientStock.Inc()
		}
		AbortWithError(c, err)
		return
	}

	metrics.Order().Created.WithLabelValues(string(result.Order.Status)).Inc()
	if result.Order.Status == orderdomain.StatusCompleted {
		metrics.Order().Completed.Inc()
	}

	s.recordAudit(c, "order.create", "order", result.Order.ID.String(), map[string]any{
		"order_number": result.Order.OrderNumber,
		"status":       string(result.Order.Status),
		"total_amount": result.Order.TotalAmount,
	})
	c.JSON(http.StatusCreated, gin.H{"data": result})
}

type completeOrderRequest struct {
	AmountPaid int64 `json:"amount_paid"`
}

func (s *Server) CompleteOrder(c *gin.Context) {
	var req completeOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	id := c.Param("id")
	result, err := s.orderSvc.Complete(c.Request.Context(), id, req.AmountPaid)
	if err != nil {
		if errors.Is(err, inventorydomain.ErrInsufficientStock) {
			metrics.Order().InsufficientStock.Inc()
		}
		AbortWithError(c, err)
		return
	}

	metrics.Order().Completed.Inc()
	s.recordAudit(c, "order.complete", "order", id, map[string]any{
		"order_number": result.Order.OrderNumber,
	})
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CancelOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := s.orderSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	metrics.Order().Cancelled.Inc()
	s.recordAudit(c, "order.cancel", "order", id, map[string]any{
		"order_number": order.OrderNumber,
	})
	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.orderSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) GetOrderByNumber(c *gin.Context) {
	order, err := s.orderSvc.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		orders, err := s.orderSvc.ListByStatus(ctx, orderdomain.OrderStatus(strings.ToUpper(status)))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": orders})
		return
	}

	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			AbortWithError(c, newValidationError("days", "invalid_days", "invalid days"))
			return
		}
		orders, err := s.orderSvc.ListRecent(ctx, days)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": orders})
		return
	}

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
		orders, err := s.orderSvc.ListBetween(ctx, start, end)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": orders})
		return
	}

	orders, err := s.orderSvc.ListAll(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}
