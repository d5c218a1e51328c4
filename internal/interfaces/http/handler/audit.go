package handler

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/fieldpoint/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditHandler exposes read access to the activity log
type AuditHandler struct {
	BaseHandler
	logs audit.Repository
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(logs audit.Repository) *AuditHandler {
	return &AuditHandler{logs: logs}
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity-logs", h.ListByTarget)
}

// ActivityLogQuery represents the activity-log list query parameters
type ActivityLogQuery struct {
	dto.ListRequest
	TargetType string `form:"target_type" binding:"required"`
	TargetID   string `form:"target_id" binding:"required,uuid"`
}

// ActivityLogResponse represents an activity record in API responses
type ActivityLogResponse struct {
	ID          string  `json:"id"`
	UserID      *string `json:"user_id,omitempty"`
	Action      string  `json:"action"`
	TargetType  string  `json:"target_type"`
	TargetID    string  `json:"target_id"`
	Description string  `json:"description"`
	OccurredAt  string  `json:"occurred_at"`
}

// ListByTarget returns the activity records for one target, newest first
func (h *AuditHandler) ListByTarget(c *gin.Context) {
	var req ActivityLogQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "target_type and target_id are required")
		return
	}
	req.Normalize()

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		h.BadRequest(c, "Invalid target_id")
		return
	}

	records, err := h.logs.FindByTarget(c.Request.Context(), req.TargetType, targetID, shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]ActivityLogResponse, 0, len(records))
	for _, record := range records {
		item := ActivityLogResponse{
			ID:          record.ID.String(),
			Action:      string(record.Action),
			TargetType:  record.TargetType,
			TargetID:    record.TargetID.String(),
			Description: record.Description,
			OccurredAt:  record.OccurredAt.UTC().Format(time.RFC3339),
		}
		if record.UserID != nil {
			uid := record.UserID.String()
			item.UserID = &uid
		}
		resp = append(resp, item)
	}
	h.Success(c, resp)
}
