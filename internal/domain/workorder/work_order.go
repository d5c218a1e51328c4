package workorder

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a work order
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusCompleted Status = "COMPLETED"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusCompleted
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// LineItem is one line of work on a work order. When WarehouseItemID is set
// the line consumes stock from that warehouse item on completion.
type LineItem struct {
	ID              uuid.UUID       `json:"id"`
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	WarehouseItemID *uuid.UUID      `json:"warehouse_item_id"`
}

// WorkOrder is a field-service job against a project. Completion is one-way:
// OPEN -> COMPLETED, no reopen.
type WorkOrder struct {
	shared.BaseAggregateRoot
	ProjectID   uuid.UUID  `json:"project_id"`
	Status      Status     `json:"status"`
	LineItems   []LineItem `json:"line_items"`
	CompletedAt *time.Time `json:"completed_at"`
}

// NewWorkOrder creates an open work order for a project
func NewWorkOrder(projectID uuid.UUID, lineItems []LineItem) (*WorkOrder, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	for _, item := range lineItems {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Line item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Line item unit price cannot be negative")
		}
	}
	wo := &WorkOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProjectID:         projectID,
		Status:            StatusOpen,
		LineItems:         lineItems,
	}
	for i := range wo.LineItems {
		if wo.LineItems[i].ID == uuid.Nil {
			wo.LineItems[i].ID = uuid.New()
		}
	}
	return wo, nil
}

// IsCompleted returns true once the work order has been completed
func (w *WorkOrder) IsCompleted() bool {
	return w.Status == StatusCompleted
}

// Complete transitions the work order to COMPLETED
func (w *WorkOrder) Complete() error {
	if w.IsCompleted() {
		return shared.NewDomainError("ALREADY_COMPLETED", "Work order already completed")
	}
	now := time.Now()
	w.Status = StatusCompleted
	w.CompletedAt = &now
	w.Touch()
	w.IncrementVersion()
	return nil
}
