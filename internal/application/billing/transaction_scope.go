package billing

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/billing"
	"github.com/fieldpoint/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories the
// billing entry points touch. All repository operations inside Execute share
// one database transaction and commit or roll back atomically.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the billing and ledger repositories
// scoped to the current transaction. The method set is a superset of
// posting.Repositories so the posting engine writes into the same
// transaction.
type TransactionalRepositories interface {
	Invoices() billing.InvoiceRepository
	Payments() billing.PaymentRepository
	WorkOrderInvoices() billing.WorkOrderInvoiceRepository
	Accounts() ledger.AccountRepository
	Journal() ledger.JournalEntryRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	InvoiceRepo          billing.InvoiceRepository
	PaymentRepo          billing.PaymentRepository
	WorkOrderInvoiceRepo billing.WorkOrderInvoiceRepository
	AccountRepo          ledger.AccountRepository
	JournalRepo          ledger.JournalEntryRepository
}

// Execute runs the function against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Invoices returns the invoice repository
func (s *NoOpTransactionScope) Invoices() billing.InvoiceRepository { return s.InvoiceRepo }

// Payments returns the payment repository
func (s *NoOpTransactionScope) Payments() billing.PaymentRepository { return s.PaymentRepo }

// WorkOrderInvoices returns the work-order invoice repository
func (s *NoOpTransactionScope) WorkOrderInvoices() billing.WorkOrderInvoiceRepository {
	return s.WorkOrderInvoiceRepo
}

// Accounts returns the ledger account repository
func (s *NoOpTransactionScope) Accounts() ledger.AccountRepository { return s.AccountRepo }

// Journal returns the journal entry repository
func (s *NoOpTransactionScope) Journal() ledger.JournalEntryRepository { return s.JournalRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
