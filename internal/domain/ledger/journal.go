package ledger

import (
	"fmt"
	"time"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/fieldpoint/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalEntry is one immutable double-entry ledger record. Debit and credit
// carry the same amount, so conservation of value holds per entry.
//
// The description doubles as the legacy idempotency key for a business event;
// new rows additionally carry a dedicated IdempotencyKey backed by a unique
// index. Entries are never updated or deleted after creation.
type JournalEntry struct {
	shared.BaseEntity
	EntryDate       time.Time       `json:"entry_date"`
	Description     string          `json:"description"`
	IdempotencyKey  string          `json:"idempotency_key"`
	DebitAccountID  uuid.UUID         `json:"debit_account_id"`
	CreditAccountID uuid.UUID         `json:"credit_account_id"`
	Amount          valueobject.Money `json:"amount"`
}

// NewJournalEntry creates a balanced journal entry. The amount is quantized
// to two fractional digits, half-up.
func NewJournalEntry(entryDate time.Time, description string, debitAccountID, creditAccountID uuid.UUID, amount decimal.Decimal) (*JournalEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Journal entry amount must be positive")
	}
	if debitAccountID == uuid.Nil || creditAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Debit and credit accounts are required")
	}
	if debitAccountID == creditAccountID {
		return nil, shared.NewDomainError("SAME_ACCOUNT", "Debit and credit accounts must differ")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Journal entry description cannot be empty")
	}
	return &JournalEntry{
		BaseEntity:      shared.NewBaseEntity(),
		EntryDate:       entryDate,
		Description:     description,
		IdempotencyKey:  description,
		DebitAccountID:  debitAccountID,
		CreditAccountID: creditAccountID,
		Amount:          valueobject.NewMoney(amount).Quantize(),
	}, nil
}

// Canonical idempotency keys. These exact phrases identify a business event
// and are part of the wire contract; changing them breaks replay detection
// for rows posted by earlier releases.

// InvoicePostingKey returns the canonical key for posting an invoice
func InvoicePostingKey(invoiceID uuid.UUID) string {
	return fmt.Sprintf("Invoice %s posting", invoiceID)
}

// PaymentPostingKey returns the canonical key for allocating a payment
func PaymentPostingKey(paymentID uuid.UUID) string {
	return fmt.Sprintf("Payment %s posting", paymentID)
}

// WorkOrderConsumptionKey returns the canonical key for work-order
// inventory consumption
func WorkOrderConsumptionKey(workOrderID uuid.UUID) string {
	return fmt.Sprintf("WorkOrder %s consumption posting", workOrderID)
}
