package persistence

import (
	"context"

	appbilling "github.com/fieldpoint/backend/internal/application/billing"
	"github.com/fieldpoint/backend/internal/domain/billing"
	"github.com/fieldpoint/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormBillingTransactionScope implements the billing TransactionScope using
// GORM transactions. Posting an invoice or allocating a payment runs its
// reads, the journal insert and the settlement writes in one transaction.
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error the transaction is rolled back.
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBillingRepositories{tx: tx})
	})
}

// gormBillingRepositories provides the billing and ledger repositories scoped
// to the current transaction
type gormBillingRepositories struct {
	tx *gorm.DB
}

// Invoices returns the invoice repository scoped to the transaction
func (r *gormBillingRepositories) Invoices() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// Payments returns the payment repository scoped to the transaction
func (r *gormBillingRepositories) Payments() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// WorkOrderInvoices returns the work-order invoice repository scoped to the
// transaction
func (r *gormBillingRepositories) WorkOrderInvoices() billing.WorkOrderInvoiceRepository {
	return NewGormWorkOrderInvoiceRepository(r.tx)
}

// Accounts returns the account repository scoped to the transaction
func (r *gormBillingRepositories) Accounts() ledger.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// Journal returns the journal entry repository scoped to the transaction
func (r *gormBillingRepositories) Journal() ledger.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

var (
	_ appbilling.TransactionScope          = (*GormBillingTransactionScope)(nil)
	_ appbilling.TransactionalRepositories = (*gormBillingRepositories)(nil)
)
