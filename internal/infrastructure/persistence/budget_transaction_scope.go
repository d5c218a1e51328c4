package persistence

import (
	"context"

	appbudget "github.com/fieldpoint/backend/internal/application/budget"
	"github.com/fieldpoint/backend/internal/domain/budget"
	"gorm.io/gorm"
)

// GormBudgetTransactionScope implements the budget TransactionScope using
// GORM transactions. The delete-and-insert distribution swap runs in one
// transaction.
type GormBudgetTransactionScope struct {
	db *gorm.DB
}

// NewGormBudgetTransactionScope creates a new GormBudgetTransactionScope
func NewGormBudgetTransactionScope(db *gorm.DB) *GormBudgetTransactionScope {
	return &GormBudgetTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBudgetTransactionScope) Execute(ctx context.Context, fn func(repos appbudget.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBudgetRepositories{tx: tx})
	})
}

// gormBudgetRepositories provides the budget repository scoped to the current
// transaction
type gormBudgetRepositories struct {
	tx *gorm.DB
}

// Budgets returns the budget repository scoped to the transaction
func (r *gormBudgetRepositories) Budgets() budget.Repository {
	return NewGormBudgetRepository(r.tx)
}

var (
	_ appbudget.TransactionScope          = (*GormBudgetTransactionScope)(nil)
	_ appbudget.TransactionalRepositories = (*gormBudgetRepositories)(nil)
)
