package handler

import (
	"errors"
	"net/http"

	billingapp "github.com/fieldpoint/backend/internal/application/billing"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment allocation
type PaymentHandler struct {
	BaseHandler
	allocationService *billingapp.PaymentAllocationService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(allocationService *billingapp.PaymentAllocationService) *PaymentHandler {
	return &PaymentHandler{allocationService: allocationService}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.POST("/:id/allocate", h.AllocatePayment)
}

// AllocatePayment applies a payment against its target document.
// 200 with the allocation outcome, 409 on replay, 400 on overpayment.
func (h *PaymentHandler) AllocatePayment(c *gin.Context) {
	paymentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.allocationService.AllocatePayment(c.Request.Context(), paymentID, getActor(c))
	if err != nil {
		var overpayment *billingapp.OverpaymentError
		switch {
		case errors.Is(err, billingapp.ErrPaymentAlreadyPosted):
			body := gin.H{
				"payment_id":        paymentID.String(),
				"allocation_status": billingapp.AllocationStatusAlreadyPosted,
			}
			if result != nil {
				body["allocated_amount"] = result.AllocatedAmount.StringFixed(2)
			}
			c.JSON(http.StatusConflict, body)
		case errors.As(err, &overpayment):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             overpayment.Error(),
				"total_due":         overpayment.TotalDue.StringFixed(2),
				"previously_paid":   overpayment.PreviouslyPaid.StringFixed(2),
				"attempted_payment": overpayment.AttemptedPayment.StringFixed(2),
			})
		case errors.Is(err, shared.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Payment or target not found"})
		default:
			h.HandleError(c, err)
		}
		return
	}

	body := gin.H{
		"payment_id":        result.PaymentID.String(),
		"allocated_amount":  result.AllocatedAmount.StringFixed(2),
		"allocation_status": result.AllocationStatus,
		"status":            result.Status,
	}
	if result.JournalEntryID != nil {
		body["journal_entry_id"] = result.JournalEntryID.String()
	}
	// Zero-total targets have no meaningful balance; the key is still
	// present, carrying null.
	if result.OpenBalance != nil {
		body["open_balance"] = result.OpenBalance.StringFixed(2)
	} else {
		body["open_balance"] = nil
	}
	c.JSON(http.StatusOK, body)
}
