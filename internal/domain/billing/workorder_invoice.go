package billing

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderInvoice bills a completed work order. Unlike a deal invoice its
// total is a flat amount rather than a sum of items.
type WorkOrderInvoice struct {
	shared.BaseAggregateRoot
	WorkOrderID uuid.UUID       `json:"work_order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IssuedDate  time.Time       `json:"issued_date"`
	DueDate     *time.Time      `json:"due_date"`
	IsPaid      bool            `json:"is_paid"`
	PaidDate    *time.Time      `json:"paid_date"`
}

// NewWorkOrderInvoice creates an invoice for a work order
func NewWorkOrderInvoice(workOrderID uuid.UUID, totalAmount decimal.Decimal, issuedDate time.Time, dueDate *time.Time) (*WorkOrderInvoice, error) {
	if workOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER", "Work order ID cannot be empty")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Work order invoice total cannot be negative")
	}
	return &WorkOrderInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WorkOrderID:       workOrderID,
		TotalAmount:       totalAmount.Round(2),
		IssuedDate:        issuedDate,
		DueDate:           dueDate,
	}, nil
}

// MarkPaid flags the invoice as fully settled on the given date
func (w *WorkOrderInvoice) MarkPaid(paidDate time.Time) {
	w.IsPaid = true
	w.PaidDate = &paidDate
	w.Touch()
	w.IncrementVersion()
}
