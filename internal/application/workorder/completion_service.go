package workorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	auditapp "github.com/fieldpoint/backend/internal/application/audit"
	"github.com/fieldpoint/backend/internal/application/posting"
	auditdomain "github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/fieldpoint/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrWorkOrderAlreadyCompleted signals an idempotent replay of completion
var ErrWorkOrderAlreadyCompleted = shared.NewDomainError("ALREADY_POSTED", "Work order already completed/posting recorded")

// InsufficientStockError aborts a completion whose inventory decrement would
// drive stock negative. Nothing is persisted.
type InsufficientStockError struct {
	SKU       string
	OnHand    decimal.Decimal
	Requested decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s: on hand %s, requested %s",
		e.SKU, e.OnHand.String(), e.Requested.String())
}

// CompletionResult is the outcome of a work-order completion
type CompletionResult struct {
	WorkOrderID uuid.UUID
	// JournalEntryID is nil when nothing consumable was on the order
	JournalEntryID *uuid.UUID
	Amount         decimal.Decimal
	Consumed       bool
}

// CompletionService completes work orders: consumable line items draw down
// warehouse stock and the consumed cost posts as DR COGS, CR Inventory.
type CompletionService struct {
	scope   TransactionScope
	engine  *posting.Engine
	auditor *auditapp.ActivityLogger
	log     *zap.Logger
}

// NewCompletionService creates a CompletionService
func NewCompletionService(scope TransactionScope, engine *posting.Engine, auditor *auditapp.ActivityLogger, log *zap.Logger) *CompletionService {
	return &CompletionService{scope: scope, engine: engine, auditor: auditor, log: log}
}

// CompleteWorkOrder transitions the work order to COMPLETED, decrements
// stock for consumable line items, and posts the COGS entry, all in one
// transaction. Any failure rolls back every decrement.
func (s *CompletionService) CompleteWorkOrder(ctx context.Context, workOrderID uuid.UUID, actor *uuid.UUID) (*CompletionResult, error) {
	var result *CompletionResult

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.WorkOrders().FindByIDForUpdate(ctx, workOrderID)
		if err != nil {
			return err
		}
		if order.IsCompleted() {
			return ErrWorkOrderAlreadyCompleted
		}

		key := ledger.WorkOrderConsumptionKey(workOrderID)
		if existing, err := repos.Journal().FindByIdempotencyKey(ctx, key); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("failed to check for prior posting: %w", err)
		} else if existing != nil {
			return ErrWorkOrderAlreadyCompleted
		}

		items, err := s.loadWarehouseItems(ctx, repos, order)
		if err != nil {
			return err
		}

		cogsTotal := decimal.Zero
		for _, line := range order.LineItems {
			if line.WarehouseItemID == nil {
				continue
			}
			item, ok := items[*line.WarehouseItemID]
			if !ok || !item.ItemType.IsConsumable() {
				continue
			}
			quantity := decimal.NewFromInt(int64(line.Quantity))

			// Consume the loaded copy first so duplicate lines against the
			// same item accumulate; the conditional update below stays
			// authoritative against concurrent consumers.
			onHand := item.QuantityOnHand
			if err := item.Consume(quantity); err != nil {
				return &InsufficientStockError{
					SKU:       item.SKU,
					OnHand:    onHand,
					Requested: quantity,
				}
			}
			items[*line.WarehouseItemID] = item

			ok, err := repos.WarehouseItems().DecrementStock(ctx, item.ID, quantity)
			if err != nil {
				return fmt.Errorf("failed to decrement stock for %s: %w", item.SKU, err)
			}
			if !ok {
				return &InsufficientStockError{
					SKU:       item.SKU,
					OnHand:    onHand,
					Requested: quantity,
				}
			}
			cogsTotal = cogsTotal.Add(item.UnitCost.Mul(quantity))
		}
		cogsTotal = cogsTotal.Round(2)

		result = &CompletionResult{WorkOrderID: workOrderID, Amount: cogsTotal}

		if cogsTotal.IsPositive() {
			cogs, err := s.engine.GetOrCreateAccount(ctx, repos, ledger.AccountCodeCOGS, "Cost of Goods Sold", ledger.AccountTypeExpense)
			if err != nil {
				return err
			}
			inventory, err := s.engine.GetOrCreateAccount(ctx, repos, ledger.AccountCodeInventory, "Inventory", ledger.AccountTypeAsset)
			if err != nil {
				return err
			}
			entry, err := s.engine.PostEntry(ctx, repos, posting.EntryInput{
				EntryDate:       time.Now(),
				Description:     key,
				DebitAccountID:  cogs.ID,
				CreditAccountID: inventory.ID,
				Amount:          cogsTotal,
			})
			if err != nil {
				if errors.Is(err, posting.ErrAlreadyPosted) {
					return ErrWorkOrderAlreadyCompleted
				}
				return err
			}
			result.JournalEntryID = &entry.ID
			result.Consumed = true
		}

		if err := order.Complete(); err != nil {
			return ErrWorkOrderAlreadyCompleted
		}
		if err := repos.WorkOrders().Save(ctx, order); err != nil {
			return fmt.Errorf("failed to save work order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, actor, auditdomain.ActionComplete, "WorkOrder", workOrderID,
		fmt.Sprintf("Work order completed, consumed %s", result.Amount.StringFixed(2)))
	s.log.Info("work order completed",
		zap.String("work_order_id", workOrderID.String()),
		zap.Bool("consumed", result.Consumed),
		zap.String("cogs_amount", result.Amount.StringFixed(2)))

	return result, nil
}

// loadWarehouseItems fetches every warehouse item referenced by the order's
// line items, keyed by id.
func (s *CompletionService) loadWarehouseItems(ctx context.Context, repos TransactionalRepositories, order *workorder.WorkOrder) (map[uuid.UUID]workorder.WarehouseItem, error) {
	ids := make([]uuid.UUID, 0, len(order.LineItems))
	seen := make(map[uuid.UUID]bool, len(order.LineItems))
	for _, line := range order.LineItems {
		if line.WarehouseItemID != nil && !seen[*line.WarehouseItemID] {
			ids = append(ids, *line.WarehouseItemID)
			seen[*line.WarehouseItemID] = true
		}
	}
	items := make(map[uuid.UUID]workorder.WarehouseItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	loaded, err := repos.WarehouseItems().FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouse items: %w", err)
	}
	for _, item := range loaded {
		items[item.ID] = item
	}
	return items, nil
}
