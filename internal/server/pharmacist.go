package server

import (
	"net/http"

	pharmacistdomain "github.com/amancodes12/pharmaease/internal/pharmacist/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) RegisterPharmacist(c *gin.Context) {
	var req pharmacistdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pharmacist, err := s.pharmacistSvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "pharmacist.register", "pharmacist", pharmacist.ID.String(), map[string]any{
		"email": pharmacist.Email,
	})
	c.JSON(http.StatusCreated, gin.H{"data": pharmacist})
}

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) AuthenticatePharmacist(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pharmacist, err := s.pharmacistSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "pharmacist.authenticate", "pharmacist", pharmacist.ID.String(), nil)
	c.JSON(http.StatusOK, gin.H{"data": pharmacist})
}

func (s *Server) UpdatePharmacist(c *gin.Context) {
	var req pharmacistdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pharmacist, err := s.pharmacistSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "pharmacist.update", "pharmacist", pharmacist.ID.String(), nil)
	c.JSON(http.StatusOK, gin.H{"data": pharmacist})
}

func (s *Server) DeletePharmacist(c *gin.Context) {
	id := c.Param("id")
	if err := s.pharmacistSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "pharmacist.delete", "pharmacist", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GetPharmacist(c *gin.Context) {
	pharmacist, err := s.pharmacistSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pharmacist})
}

func (s *Server) ListPharmacists(c *gin.Context) {
	pharmacists, err := s.pharmacistSvc.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pharmacists})
}
