package server

import (
	"net/http"
	"strings"
	"time"

	auditdomain "github.com/amancodes12/pharmaease/internal/audit/domain"
	"github.com/gin-gonic/gin"
)

// recordAudit writes a best-effort trail entry for a mutation. The operator
// identity comes from the X-Pharmacist-Id header when the caller sets it.
func (s *Server) recordAudit(c *gin.Context, action, targetType, targetID string, metadata map[string]any) {
	actorType := auditdomain.ActorTypeSystem
	var actorID *string
	if operator := strings.TrimSpace(c.GetHeader("X-Pharmacist-Id")); operator != "" {
		actorType = auditdomain.ActorTypePharmacist
		actorID = &operator
	}

	var target *string
	if targetID != "" {
		target = &targetID
	}
	_ = s.auditSvc.Record(c.Request.Context(), actorType, actorID, action, targetType, target, metadata)
}

func (s *Server) ListAuditLogs(c *gin.Context) {
	filter := auditdomain.ListFilter{
		Action:     strings.TrimSpace(c.Query("action")),
		TargetType: strings.TrimSpace(c.Query("target_type")),
		TargetID:   strings.TrimSpace(c.Query("target_id")),
	}

	if raw := strings.TrimSpace(c.Query("start")); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, newValidationError("start", "invalid_start", "invalid start time"))
			return
		}
		filter.StartAt = &start
	}
	if raw := strings.TrimSpace(c.Query("end")); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, newValidationError("end", "invalid_end", "invalid end time"))
			return
		}
		filter.EndAt = &end
	}

	entries, err := s.auditSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
