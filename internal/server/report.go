package server

import (
	"net/http"
	"time"

	reportdomain "github.com/amancodes12/pharmaease/internal/report/domain"
	"github.com/gin-gonic/gin"
)

type salesReportRequest struct {
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	ReportType   string    `json:"report_type"`
	PharmacistID string    `json:"pharmacist_id"`
}

func (s *Server) GenerateSalesReport(c *gin.Context) {
	var req salesReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reportType := reportdomain.ReportType(req.ReportType)
	if req.ReportType == "" {
		reportType = reportdomain.TypeDailySales
	}

	report, err := s.reportSvc.GenerateSalesReport(c.Request.Context(), req.StartDate, req.EndDate, reportType, req.PharmacistID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "report.generate", "report", report.ID.String(), map[string]any{
		"report_type": string(report.ReportType),
	})
	c.JSON(http.StatusCreated, gin.H{"data": report})
}

type inventoryReportRequest struct {
	PharmacistID string `json:"pharmacist_id"`
}

func (s *Server) GenerateInventoryReport(c *gin.Context) {
	var req inventoryReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	report, err := s.reportSvc.GenerateInventoryReport(c.Request.Context(), req.PharmacistID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "report.generate", "report", report.ID.String(), map[string]any{
		"report_type": string(report.ReportType),
	})
	c.JSON(http.StatusCreated, gin.H{"data": report})
}

func (s *Server) GenerateLowStockReport(c *gin.Context) {
	var req inventoryReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	report, err := s.reportSvc.GenerateLowStockReport(c.Request.Context(), req.PharmacistID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "report.generate", "report", report.ID.String(), map[string]any{
		"report_type": string(report.ReportType),
	})
	c.JSON(http.StatusCreated, gin.H{"data": report})
}

type expiringStockReportRequest struct {
	DaysAhead    int    `json:"days_ahead"`
	PharmacistID string `json:"pharmacist_id"`
}

func (s *Server) GenerateExpiringStockReport(c *gin.Context) {
	var req expiringStockReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	report, err := s.reportSvc.GenerateExpiringStockReport(c.Request.Context(), req.DaysAhead, req.PharmacistID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "report.generate", "report", report.ID.String(), map[string]any{
		"report_type": string(report.ReportType),
	})
	c.JSON(http.StatusCreated, gin.H{"data": report})
}

func (s *Server) GetReport(c *gin.Context) {
	report, err := s.reportSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (s *Server) ListReports(c *gin.Context) {
	reports, err := s.reportSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

func (s *Server) Dashboard(c *gin.Context) {
	stats, err := s.reportSvc.Dashboard(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
