package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	budgetapp "github.com/fieldpoint/backend/internal/application/budget"
	"github.com/fieldpoint/backend/internal/domain/budget"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// BudgetHandler handles budgets and their monthly distributions
type BudgetHandler struct {
	BaseHandler
	distributionService *budgetapp.DistributionService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(distributionService *budgetapp.DistributionService) *BudgetHandler {
	return &BudgetHandler{distributionService: distributionService}
}

// RegisterRoutes registers budget routes
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	budgets := rg.Group("/budgets")
	budgets.POST("", h.CreateBudget)
	budgets.GET("/:id", h.GetBudget)
	budgets.PUT("/:id/distributions", h.ReplaceDistributions)
}

// CreateBudgetRequest represents a request to create a budget
type CreateBudgetRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Year         int    `json:"year" binding:"required,min=1900,max=3000"`
	CostCenterID string `json:"cost_center_id" binding:"required,uuid"`
}

// PercentValue binds a percent from either a JSON string or a bare number.
// The raw token is kept as text so malformed values can be echoed back
// verbatim by the validator.
type PercentValue string

// UnmarshalJSON implements json.Unmarshaler
func (p *PercentValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PercentValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("percent must be a string or a number")
	}
	*p = PercentValue(n.String())
	return nil
}

// DistributionRowRequest is one submitted {month, percent} pair
type DistributionRowRequest struct {
	Month   int          `json:"month"`
	Percent PercentValue `json:"percent"`
}

// ReplaceDistributionsRequest represents a full replacement set
type ReplaceDistributionsRequest struct {
	Distributions []DistributionRowRequest `json:"distributions" binding:"required"`
}

// DistributionResponse represents one stored distribution row
type DistributionResponse struct {
	ID      string `json:"id"`
	Month   int    `json:"month"`
	Percent string `json:"percent"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Year          int                    `json:"year"`
	CostCenterID  string                 `json:"cost_center_id"`
	TotalPercent  string                 `json:"total_percent"`
	Distributions []DistributionResponse `json:"distributions"`
}

// CreateBudget creates a budget seeded with the default even split
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	costCenterID, err := parseUUID(req.CostCenterID)
	if err != nil {
		h.BadRequest(c, "Invalid cost_center_id")
		return
	}

	b, err := h.distributionService.CreateBudget(c.Request.Context(), budgetapp.CreateBudgetInput{
		Name:         req.Name,
		Year:         req.Year,
		CostCenterID: costCenterID,
	}, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toBudgetResponse(b))
}

// GetBudget returns a budget with its distributions
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := h.distributionService.GetBudget(c.Request.Context(), budgetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBudgetResponse(b))
}

// ReplaceDistributions swaps in a full monthly distribution set.
// 200 {updated:true} when the set passes, 400 with every violation otherwise.
func (h *BudgetHandler) ReplaceDistributions(c *gin.Context) {
	budgetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ReplaceDistributionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	rows := make([]budget.DistributionRow, 0, len(req.Distributions))
	for _, row := range req.Distributions {
		rows = append(rows, budget.DistributionRow{
			Month:   row.Month,
			Percent: string(row.Percent),
		})
	}

	err := h.distributionService.ReplaceDistributions(c.Request.Context(), budgetID, rows, getActor(c))
	if err != nil {
		var validation *budgetapp.ValidationError
		switch {
		case errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, gin.H{
				"detail": validation.Error(),
				"errors": validation.Errors,
			})
		case errors.Is(err, shared.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Budget not found"})
		default:
			h.HandleError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// toBudgetResponse maps a budget aggregate to its API shape
func toBudgetResponse(b *budget.Budget) BudgetResponse {
	resp := BudgetResponse{
		ID:            b.ID.String(),
		Name:          b.Name,
		Year:          b.Year,
		CostCenterID:  b.CostCenterID.String(),
		TotalPercent:  b.TotalPercent().StringFixed(2),
		Distributions: make([]DistributionResponse, 0, len(b.Distributions)),
	}
	for _, d := range b.Distributions {
		resp.Distributions = append(resp.Distributions, DistributionResponse{
			ID:      d.ID.String(),
			Month:   d.Month,
			Percent: d.Percent.String(),
		})
	}
	return resp
}
