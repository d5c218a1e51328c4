package budget

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/budget"
)

// TransactionScope provides transactional access to the budget repository.
// Deleting the old distribution rows and inserting the new set commit or
// roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the budget repository scoped to the
// current transaction
type TransactionalRepositories interface {
	Budgets() budget.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	BudgetRepo budget.Repository
}

// Execute runs the function against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Budgets returns the budget repository
func (s *NoOpTransactionScope) Budgets() budget.Repository { return s.BudgetRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
