package billing

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the settlement state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"   // Not yet posted to the ledger
	InvoiceStatusPosted  InvoiceStatus = "POSTED"  // Journal entry written, nothing allocated
	InvoiceStatusPartial InvoiceStatus = "PARTIAL" // Partially settled, 0 < paid < total
	InvoiceStatusPaid    InvoiceStatus = "PAID"    // Fully settled
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPosted, InvoiceStatusPartial, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// InvoiceItem is a line on an invoice. Items are owned by the invoice and
// persisted with it.
type InvoiceItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal returns quantity x unit price for this item
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Invoice is the billing aggregate root for a deal. Transitions are one-way:
// DRAFT -> POSTED -> PARTIAL -> PAID. Once PostedJournalID is set, posting is
// blocked for good.
type Invoice struct {
	shared.BaseAggregateRoot
	DealID          uuid.UUID     `json:"deal_id"`
	DueDate         *time.Time    `json:"due_date"`
	Items           []InvoiceItem `json:"items"`
	Status          InvoiceStatus `json:"status"`
	Paid            bool          `json:"paid"`
	PostedJournalID *uuid.UUID    `json:"posted_journal_id"`
	PostedAt        *time.Time    `json:"posted_at"`
}

// NewInvoice creates a draft invoice for a deal
func NewInvoice(dealID uuid.UUID, dueDate *time.Time, items []InvoiceItem) (*Invoice, error) {
	if dealID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEAL", "Deal ID cannot be empty")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Invoice item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Invoice item unit price cannot be negative")
		}
	}
	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DealID:            dealID,
		DueDate:           dueDate,
		Items:             items,
		Status:            InvoiceStatusDraft,
	}
	for i := range inv.Items {
		if inv.Items[i].ID == uuid.Nil {
			inv.Items[i].ID = uuid.New()
		}
	}
	return inv, nil
}

// Total returns the invoice total, quantized to two fractional digits
func (inv *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.LineTotal())
	}
	return total.Round(2)
}

// IsPosted returns true once a journal entry has been recorded
func (inv *Invoice) IsPosted() bool {
	return inv.PostedJournalID != nil
}

// MarkPosted records the journal entry reference. Posting is blocked once the
// reference is set.
func (inv *Invoice) MarkPosted(journalID uuid.UUID) error {
	if inv.IsPosted() {
		return shared.NewDomainError("ALREADY_POSTED", "Invoice already posted")
	}
	now := time.Now()
	inv.PostedJournalID = &journalID
	inv.PostedAt = &now
	inv.Status = InvoiceStatusPosted
	inv.Touch()
	inv.IncrementVersion()
	return nil
}

// RecordSettlement updates the settlement state after a payment allocation.
// totalPaid is the cumulative amount allocated against the invoice.
func (inv *Invoice) RecordSettlement(totalPaid decimal.Decimal) {
	total := inv.Total()
	if total.IsPositive() && totalPaid.GreaterThanOrEqual(total) {
		inv.Paid = true
		inv.Status = InvoiceStatusPaid
	} else if totalPaid.IsPositive() && total.IsPositive() {
		inv.Paid = false
		inv.Status = InvoiceStatusPartial
	} else {
		// Zero-total invoices stay POSTED regardless of allocations.
		inv.Paid = false
		inv.Status = InvoiceStatusPosted
	}
	inv.Touch()
	inv.IncrementVersion()
}
