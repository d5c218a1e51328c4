package handler

import (
	"errors"
	"net/http"

	workorderapp "github.com/fieldpoint/backend/internal/application/workorder"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/fieldpoint/backend/internal/domain/workorder"
	"github.com/gin-gonic/gin"
)

// WorkOrderHandler handles work-order completion and lookups
type WorkOrderHandler struct {
	BaseHandler
	completionService *workorderapp.CompletionService
	workOrders        workorder.WorkOrderRepository
}

// NewWorkOrderHandler creates a new WorkOrderHandler
func NewWorkOrderHandler(completionService *workorderapp.CompletionService, workOrders workorder.WorkOrderRepository) *WorkOrderHandler {
	return &WorkOrderHandler{
		completionService: completionService,
		workOrders:        workOrders,
	}
}

// RegisterRoutes registers work-order routes
func (h *WorkOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workOrders := rg.Group("/work-orders")
	workOrders.POST("/:id/complete", h.CompleteWorkOrder)
	workOrders.GET("/:id", h.GetWorkOrder)
}

// CompleteWorkOrder completes a work order, drawing down consumable stock and
// posting the consumed cost. 201 when a COGS entry was written, 200 when
// nothing consumable was on the order, 409 on replay or insufficient stock.
func (h *WorkOrderHandler) CompleteWorkOrder(c *gin.Context) {
	workOrderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.completionService.CompleteWorkOrder(c.Request.Context(), workOrderID, getActor(c))
	if err != nil {
		var insufficient *workorderapp.InsufficientStockError
		switch {
		case errors.Is(err, workorderapp.ErrWorkOrderAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"detail": workorderapp.ErrWorkOrderAlreadyCompleted.Message})
		case errors.As(err, &insufficient):
			c.JSON(http.StatusConflict, gin.H{
				"error":     insufficient.Error(),
				"sku":       insufficient.SKU,
				"on_hand":   insufficient.OnHand.String(),
				"requested": insufficient.Requested.String(),
			})
		case errors.Is(err, shared.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Work order not found"})
		default:
			h.HandleError(c, err)
		}
		return
	}

	if !result.Consumed {
		c.JSON(http.StatusOK, gin.H{
			"message": "Work order completed (no consumption)",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Work order completed",
		"journal_entry_id": result.JournalEntryID.String(),
		"amount":           result.Amount.StringFixed(2),
	})
}

// WorkOrderLineItemResponse represents one work-order line in API responses
type WorkOrderLineItemResponse struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	Quantity        int     `json:"quantity"`
	UnitPrice       string  `json:"unit_price"`
	WarehouseItemID *string `json:"warehouse_item_id,omitempty"`
}

// WorkOrderResponse represents a work order in API responses
type WorkOrderResponse struct {
	ID          string                      `json:"id"`
	ProjectID   string                      `json:"project_id"`
	Status      string                      `json:"status"`
	CompletedAt *string                     `json:"completed_at,omitempty"`
	LineItems   []WorkOrderLineItemResponse `json:"line_items"`
}

// GetWorkOrder returns a work order with its line items
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	workOrderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.workOrders.FindByID(c.Request.Context(), workOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := WorkOrderResponse{
		ID:        order.ID.String(),
		ProjectID: order.ProjectID.String(),
		Status:    order.Status.String(),
		LineItems: make([]WorkOrderLineItemResponse, 0, len(order.LineItems)),
	}
	if order.CompletedAt != nil {
		completed := order.CompletedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.CompletedAt = &completed
	}
	for _, line := range order.LineItems {
		item := WorkOrderLineItemResponse{
			ID:          line.ID.String(),
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.StringFixed(2),
		}
		if line.WarehouseItemID != nil {
			wid := line.WarehouseItemID.String()
			item.WarehouseItemID = &wid
		}
		resp.LineItems = append(resp.LineItems, item)
	}

	h.Success(c, resp)
}
