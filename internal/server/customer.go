package server

import (
	"net/http"
	"strings"

	customerdomain "github.com/amancodes12/pharmaease/internal/customer/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateCustomer(c *gin.Context) {
	var req customerdomain.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customer, err := s.customerSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "customer.create", "customer", customer.ID.String(), nil)
	c.JSON(http.StatusCreated, gin.H{"data": customer})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req customerdomain.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customer, err := s.customerSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "customer.update", "customer", customer.ID.String(), nil)
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	if err := s.customerSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "customer.delete", "customer", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GetCustomer(c *gin.Context) {
	customer, err := s.customerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

func (s *Server) ListCustomers(c *gin.Context) {
	ctx := c.Request.Context()

	if phone := strings.TrimSpace(c.Query("phone")); phone != "" {
		customer, err := s.customerSvc.GetByPhone(ctx, phone)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": []any{customer}})
		return
	}

	if name := strings.TrimSpace(c.Query("name")); name != "" {
		customers, err := s.customerSvc.Search(ctx, name)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": customers})
		return
	}

	customers, err := s.customerSvc.List(ctx, c.Query("active") == "true")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customers})
}
