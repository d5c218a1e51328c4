package audit

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository is the append-only store for activity records
type Repository interface {
	Create(ctx context.Context, log *ActivityLog) error
	FindByTarget(ctx context.Context, targetType string, targetID uuid.UUID, filter shared.Filter) ([]ActivityLog, error)
}
