package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository manages invoice aggregates
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	// FindByIDForUpdate loads the invoice under a row-level lock so that
	// concurrent posting or allocation against it serializes.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
}

// PaymentRepository manages payments and settlement queries
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	// SumPostedForTarget returns the sum of amounts of posted payments
	// against the target, excluding the given payment. Must be executed
	// while the caller holds a lock on the target row.
	SumPostedForTarget(ctx context.Context, target PaymentTarget, excludePaymentID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, payment *Payment) error
	Create(ctx context.Context, payment *Payment) error
}

// WorkOrderInvoiceRepository manages work-order invoices
type WorkOrderInvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrderInvoice, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*WorkOrderInvoice, error)
	Save(ctx context.Context, invoice *WorkOrderInvoice) error
}
