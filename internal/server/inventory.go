package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetInventory(c *gin.Context) {
	inventory, err := s.inventorySvc.GetByMedicine(c.Request.Context(), c.Param("medicineId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inventory})
}

func (s *Server) ListInventory(c *gin.Context) {
	inventories, err := s.inventorySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inventories})
}

func (s *Server) ListLowStock(c *gin.Context) {
	inventories, err := s.inventorySvc.ListLowStock(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inventories})
}

func (s *Server) ListOutOfStock(c *gin.Context) {
	inventories, err := s.inventorySvc.ListOutOfStock(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inventories})
}
