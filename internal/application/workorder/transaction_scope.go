package workorder

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/workorder"
)

// TransactionScope provides transactional access to the repositories that
// work-order completion touches. Inventory decrements and the COGS journal
// entry commit or roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the work-order and ledger repositories
// scoped to the current transaction. The method set is a superset of
// posting.Repositories.
type TransactionalRepositories interface {
	WorkOrders() workorder.WorkOrderRepository
	WarehouseItems() workorder.WarehouseItemRepository
	Accounts() ledger.AccountRepository
	Journal() ledger.JournalEntryRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	WorkOrderRepo     workorder.WorkOrderRepository
	WarehouseItemRepo workorder.WarehouseItemRepository
	AccountRepo       ledger.AccountRepository
	JournalRepo       ledger.JournalEntryRepository
}

// Execute runs the function against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// WorkOrders returns the work-order repository
func (s *NoOpTransactionScope) WorkOrders() workorder.WorkOrderRepository { return s.WorkOrderRepo }

// WarehouseItems returns the warehouse item repository
func (s *NoOpTransactionScope) WarehouseItems() workorder.WarehouseItemRepository {
	return s.WarehouseItemRepo
}

// Accounts returns the ledger account repository
func (s *NoOpTransactionScope) Accounts() ledger.AccountRepository { return s.AccountRepo }

// Journal returns the journal entry repository
func (s *NoOpTransactionScope) Journal() ledger.JournalEntryRepository { return s.JournalRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
