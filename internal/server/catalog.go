package server

import (
	"net/http"
	"strings"

	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	"github.com/gin-gonic/gin"
)

type medicineRequest struct {
	Name                 string  `json:"name"`
	GenericName          string  `json:"generic_name"`
	Manufacturer         string  `json:"manufacturer"`
	Category             string  `json:"category"`
	DosageForm           string  `json:"dosage_form"`
	Strength             string  `json:"strength"`
	Description          string  `json:"description"`
	UnitPrice            int64   `json:"unit_price"`
	SellingPrice         int64   `json:"selling_price"`
	ReorderLevel         *int    `json:"reorder_level"`
	RequiresPrescription bool    `json:"requires_prescription"`
	Active               *bool   `json:"active"`
	SupplierID           *string `json:"supplier_id"`
}

func (s *Server) CreateMedicine(c *gin.Context) {
	var req medicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	medicine, err := s.catalogSvc.CreateMedicine(c.Request.Context(), catalogdomain.CreateMedicineRequest{
		Name:                 req.Name,
		GenericName:          req.GenericName,
		Manufacturer:         req.Manufacturer,
		Category:             req.Category,
		DosageForm:           req.DosageForm,
		Strength:             req.Strength,
		Description:          req.Description,
		UnitPrice:            req.UnitPrice,
		SellingPrice:         req.SellingPrice,
		ReorderLevel:         req.ReorderLevel,
		RequiresPrescription: req.RequiresPrescription,
		SupplierID:           req.SupplierID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "medicine.create", "medicine", medicine.ID.String(), map[string]any{
		"name": medicine.Name,
	})
	c.JSON(http.StatusCreated, gin.H{"data": medicine})
}

func (s *Server) UpdateMedicine(c *gin.Context) {
	var req medicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reorderLevel := 10
	if req.ReorderLevel != nil {
		reorderLevel = *req.ReorderLevel
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	medicine, err := s.catalogSvc.UpdateMedicine(c.Request.Context(), c.Param("id"), catalogdomain.UpdateMedicineRequest{
		Name:                 req.Name,
		GenericName:          req.GenericName,
		Manufacturer:         req.Manufacturer,
		Category:             req.Category,
		DosageForm:           req.DosageForm,
		Strength:             req.Strength,
		Description:          req.Description,
		UnitPrice:            req.UnitPrice,
		SellingPrice:         req.SellingPrice,
		ReorderLevel:         reorderLevel,
		RequiresPrescription: req.RequiresPrescription,
		Active:               active,
		SupplierID:           req.SupplierID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "medicine.update", "medicine", medicine.ID.String(), nil)
	c.JSON(http.StatusOK, gin.H{"data": medicine})
}

func (s *Server) DeleteMedicine(c *gin.Context) {
	id := c.Param("id")
	if err := s.catalogSvc.DeleteMedicine(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "medicine.delete", "medicine", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GetMedicine(c *gin.Context) {
	medicine, err := s.catalogSvc.GetMedicineByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": medicine})
}

func (s *Server) ListMedicines(c *gin.Context) {
	ctx := c.Request.Context()

	if keyword := strings.TrimSpace(c.Query("search")); keyword != "" {
		medicines, err := s.catalogSvc.SearchMedicines(ctx, keyword)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": medicines})
		return
	}

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		medicines, err := s.catalogSvc.ListMedicinesByCategory(ctx, category)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": medicines})
		return
	}

	medicines, err := s.catalogSvc.ListMedicines(ctx, c.Query("active") == "true")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": medicines})
}

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (s *Server) ListManufacturers(c *gin.Context) {
	manufacturers, err := s.catalogSvc.ListManufacturers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": manufacturers})
}

type supplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

func (s *Server) CreateSupplier(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	supplier, err := s.catalogSvc.CreateSupplier(c.Request.Context(), catalogdomain.CreateSupplierRequest{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "supplier.create", "supplier", supplier.ID.String(), nil)
	c.JSON(http.StatusCreated, gin.H{"data": supplier})
}

func (s *Server) UpdateSupplier(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	supplier, err := s.catalogSvc.UpdateSupplier(c.Request.Context(), c.Param("id"), catalogdomain.CreateSupplierRequest{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "supplier.update", "supplier", supplier.ID.String(), nil)
	c.JSON(http.StatusOK, gin.H{"data": supplier})
}

func (s *Server) DeleteSupplier(c *gin.Context) {
	id := c.Param("id")
	if err := s.catalogSvc.DeleteSupplier(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "supplier.delete", "supplier", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GetSupplier(c *gin.Context) {
	supplier, err := s.catalogSvc.GetSupplierByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": supplier})
}

func (s *Server) ListSuppliers(c *gin.Context) {
	suppliers, err := s.catalogSvc.ListSuppliers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": suppliers})
}
