package workorder

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderRepository manages work-order aggregates
type WorkOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	// FindByIDForUpdate loads the work order under a row-level lock so that
	// concurrent completions serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	Save(ctx context.Context, workOrder *WorkOrder) error
}

// WarehouseItemRepository manages stocked items
type WarehouseItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WarehouseItem, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]WarehouseItem, error)
	// DecrementStock atomically subtracts quantity from the item's on-hand
	// stock only if enough stock remains. Returns false when the guard fails,
	// leaving the row untouched.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) (bool, error)
	Save(ctx context.Context, item *WarehouseItem) error
}
