package persistence

import (
	"context"

	appworkorder "github.com/fieldpoint/backend/internal/application/workorder"
	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/workorder"
	"gorm.io/gorm"
)

// GormWorkOrderTransactionScope implements the work-order TransactionScope
// using GORM transactions. Stock decrements and the COGS entry commit or roll
// back together.
type GormWorkOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormWorkOrderTransactionScope creates a new GormWorkOrderTransactionScope
func NewGormWorkOrderTransactionScope(db *gorm.DB) *GormWorkOrderTransactionScope {
	return &GormWorkOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormWorkOrderTransactionScope) Execute(ctx context.Context, fn func(repos appworkorder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormWorkOrderRepositories{tx: tx})
	})
}

// gormWorkOrderRepositories provides the work-order and ledger repositories
// scoped to the current transaction
type gormWorkOrderRepositories struct {
	tx *gorm.DB
}

// WorkOrders returns the work-order repository scoped to the transaction
func (r *gormWorkOrderRepositories) WorkOrders() workorder.WorkOrderRepository {
	return NewGormWorkOrderRepository(r.tx)
}

// WarehouseItems returns the warehouse item repository scoped to the
// transaction
func (r *gormWorkOrderRepositories) WarehouseItems() workorder.WarehouseItemRepository {
	return NewGormWarehouseItemRepository(r.tx)
}

// Accounts returns the account repository scoped to the transaction
func (r *gormWorkOrderRepositories) Accounts() ledger.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// Journal returns the journal entry repository scoped to the transaction
func (r *gormWorkOrderRepositories) Journal() ledger.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

var (
	_ appworkorder.TransactionScope          = (*GormWorkOrderTransactionScope)(nil)
	_ appworkorder.TransactionalRepositories = (*gormWorkOrderRepositories)(nil)
)
