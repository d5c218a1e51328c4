package billing

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TargetKind tags the type of document a payment settles. This replaces the
// legacy generic content-type reference with an explicit sum.
type TargetKind string

const (
	TargetKindInvoice          TargetKind = "INVOICE"
	TargetKindWorkOrderInvoice TargetKind = "WORK_ORDER_INVOICE"
)

// IsValid checks if the target kind is valid
func (k TargetKind) IsValid() bool {
	return k == TargetKindInvoice || k == TargetKindWorkOrderInvoice
}

// String returns the string representation of TargetKind
func (k TargetKind) String() string {
	return string(k)
}

// PaymentTarget identifies the document a payment is applied to
type PaymentTarget struct {
	Kind TargetKind `json:"kind"`
	ID   uuid.UUID  `json:"id"`
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheck        PaymentMethod = "CHECK"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Payment is a customer payment applied to an invoice or work-order invoice.
// The invariant that the sum of posted payments never exceeds the target
// total is enforced by the allocation service under a row lock on the target.
type Payment struct {
	shared.BaseAggregateRoot
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	Method          PaymentMethod   `json:"method"`
	Target          PaymentTarget   `json:"target"`
	PostedJournalID *uuid.UUID      `json:"posted_journal_id"`
}

// NewPayment creates a payment against a target document
func NewPayment(amount decimal.Decimal, paymentDate time.Time, method PaymentMethod, target PaymentTarget) (*Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if method == "" {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is required")
	}
	if !target.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_TARGET", "Payment target kind is not valid")
	}
	if target.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TARGET", "Payment target ID cannot be empty")
	}
	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Amount:            amount.Round(2),
		PaymentDate:       paymentDate,
		Method:            method,
		Target:            target,
	}, nil
}

// IsPosted returns true once the payment's journal entry has been recorded
func (p *Payment) IsPosted() bool {
	return p.PostedJournalID != nil
}

// MarkPosted records the journal entry reference for this payment
func (p *Payment) MarkPosted(journalID uuid.UUID) error {
	if p.IsPosted() {
		return shared.NewDomainError("ALREADY_POSTED", "Payment already posted")
	}
	p.PostedJournalID = &journalID
	p.Touch()
	p.IncrementVersion()
	return nil
}
