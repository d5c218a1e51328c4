package budget

import (
	"context"
	"fmt"

	auditapp "github.com/fieldpoint/backend/internal/application/audit"
	auditdomain "github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/fieldpoint/backend/internal/domain/budget"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationError carries every rule violation found in a replacement set.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Errors []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "Invalid distributions"
}

// CreateBudgetInput is the data needed to create a yearly budget
type CreateBudgetInput struct {
	Name         string
	Year         int
	CostCenterID uuid.UUID
}

// DistributionService manages yearly budgets and their monthly distribution
// sets. Replacement is all-or-nothing: the submitted set is validated as a
// whole and swapped in atomically.
type DistributionService struct {
	scope   TransactionScope
	auditor *auditapp.ActivityLogger
	log     *zap.Logger
}

// NewDistributionService creates a DistributionService
func NewDistributionService(scope TransactionScope, auditor *auditapp.ActivityLogger, log *zap.Logger) *DistributionService {
	return &DistributionService{scope: scope, auditor: auditor, log: log}
}

// CreateBudget creates a budget seeded with the default even split
func (s *DistributionService) CreateBudget(ctx context.Context, input CreateBudgetInput, actor *uuid.UUID) (*budget.Budget, error) {
	b, err := budget.NewBudget(input.Name, input.Year, input.CostCenterID, nil)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.Budgets().Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, actor, auditdomain.ActionCreate, "Budget", b.ID,
		fmt.Sprintf("Budget %q created for year %d", b.Name, b.Year))
	s.log.Info("budget created",
		zap.String("budget_id", b.ID.String()),
		zap.Int("year", b.Year))

	return b, nil
}

// GetBudget loads a budget with its distributions
func (s *DistributionService) GetBudget(ctx context.Context, budgetID uuid.UUID) (*budget.Budget, error) {
	var b *budget.Budget
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		b, err = repos.Budgets().FindByID(ctx, budgetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ReplaceDistributions validates the submitted rows and, when the whole set
// passes, replaces the budget's distributions in one transaction. Any rule
// violation returns a ValidationError listing all of them and leaves the
// stored rows untouched.
func (s *DistributionService) ReplaceDistributions(ctx context.Context, budgetID uuid.UUID, rows []budget.DistributionRow, actor *uuid.UUID) error {
	validated, errs := budget.ValidateDistributions(rows)
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.Budgets().FindByIDForUpdate(ctx, budgetID)
		if err != nil {
			return err
		}
		b.ReplaceDistributions(validated)
		return repos.Budgets().ReplaceDistributions(ctx, b.ID, b.Distributions)
	})
	if err != nil {
		return err
	}

	s.auditor.Record(ctx, actor, auditdomain.ActionUpdate, "Budget", budgetID,
		"Budget distributions replaced")
	s.log.Info("budget distributions replaced",
		zap.String("budget_id", budgetID.String()))

	return nil
}
