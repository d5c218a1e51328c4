package handler

import (
	"errors"
	"net/http"

	billingapp "github.com/fieldpoint/backend/internal/application/billing"
	"github.com/fieldpoint/backend/internal/domain/billing"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice posting and lookups
type InvoiceHandler struct {
	BaseHandler
	postingService *billingapp.InvoicePostingService
	invoices       billing.InvoiceRepository
	payments       billing.PaymentRepository
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(postingService *billingapp.InvoicePostingService, invoices billing.InvoiceRepository, payments billing.PaymentRepository) *InvoiceHandler {
	return &InvoiceHandler{
		postingService: postingService,
		invoices:       invoices,
		payments:       payments,
	}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	invoices.POST("/:id/post", h.PostInvoice)
	invoices.GET("/:id", h.GetInvoice)
}

// PostInvoice posts a draft invoice to the ledger.
// 201 on the first posting, 409 on replay, 400 for a zero-total invoice.
func (h *InvoiceHandler) PostInvoice(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.postingService.PostInvoice(c.Request.Context(), invoiceID, getActor(c))
	if err != nil {
		switch {
		case errors.Is(err, billingapp.ErrInvoiceAlreadyPosted):
			c.JSON(http.StatusConflict, gin.H{"detail": "Invoice already posted"})
		case errors.Is(err, billingapp.ErrEmptyInvoice):
			c.JSON(http.StatusBadRequest, gin.H{"detail": billingapp.ErrEmptyInvoice.Message})
		case errors.Is(err, shared.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Invoice not found"})
		default:
			h.HandleError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"journal_entry_id": result.JournalEntryID.String(),
		"amount":           result.Amount.StringFixed(2),
	})
}

// InvoiceItemResponse represents one invoice line in API responses
type InvoiceItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// InvoiceResponse represents an invoice with its balance in API responses
type InvoiceResponse struct {
	ID              string                `json:"id"`
	DealID          string                `json:"deal_id"`
	DueDate         *string               `json:"due_date,omitempty"`
	Status          string                `json:"status"`
	Paid            bool                  `json:"paid"`
	Total           string                `json:"total"`
	PaidAmount      string                `json:"paid_amount"`
	OpenBalance     string                `json:"open_balance"`
	PostedJournalID *string               `json:"posted_journal_id,omitempty"`
	Items           []InvoiceItemResponse `json:"items"`
}

// GetInvoice returns an invoice with its computed open balance
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	invoice, err := h.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	paid, err := h.payments.SumPostedForTarget(ctx, billing.PaymentTarget{
		Kind: billing.TargetKindInvoice,
		ID:   invoiceID,
	}, uuid.Nil)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	total := invoice.Total()
	openBalance := total.Sub(paid)
	if openBalance.IsNegative() {
		openBalance = decimal.Zero
	}

	resp := InvoiceResponse{
		ID:          invoice.ID.String(),
		DealID:      invoice.DealID.String(),
		Status:      invoice.Status.String(),
		Paid:        invoice.Paid,
		Total:       total.StringFixed(2),
		PaidAmount:  paid.StringFixed(2),
		OpenBalance: openBalance.StringFixed(2),
		Items:       make([]InvoiceItemResponse, 0, len(invoice.Items)),
	}
	if invoice.DueDate != nil {
		due := invoice.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	if invoice.PostedJournalID != nil {
		jid := invoice.PostedJournalID.String()
		resp.PostedJournalID = &jid
	}
	for _, item := range invoice.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ID:          item.ID.String(),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal().StringFixed(2),
		})
	}

	h.Success(c, resp)
}
