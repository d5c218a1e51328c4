package budget

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages budget aggregates and their distributions
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	// FindByIDForUpdate loads the budget under a row-level lock so that
	// concurrent distribution replacements serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Budget, error)
	Create(ctx context.Context, b *Budget) error
	// ReplaceDistributions deletes the budget's existing rows and inserts the
	// given set. Both steps run in the caller's transaction so a budget is
	// never observable with a partial set.
	ReplaceDistributions(ctx context.Context, budgetID uuid.UUID, rows []MonthlyDistribution) error
}
