package workorder

import (
	"fmt"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemType classifies a warehouse item. Only PART, EQUIPMENT and CONSUMABLE
// items are consumed (and costed) on work-order completion.
type ItemType string

const (
	ItemTypePart         ItemType = "PART"
	ItemTypeEquipment    ItemType = "EQUIPMENT"
	ItemTypeConsumable   ItemType = "CONSUMABLE"
	ItemTypeFinishedGood ItemType = "FINISHED_GOOD"
)

// IsValid checks if the item type is valid
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypePart, ItemTypeEquipment, ItemTypeConsumable, ItemTypeFinishedGood:
		return true
	}
	return false
}

// IsConsumable returns true if completing a work order draws down this item
func (t ItemType) IsConsumable() bool {
	return t == ItemTypePart || t == ItemTypeEquipment || t == ItemTypeConsumable
}

// WarehouseItem is a stocked item. QuantityOnHand never goes negative; the
// decrement path enforces this with a conditional update.
type WarehouseItem struct {
	shared.BaseAggregateRoot
	WarehouseID    uuid.UUID       `json:"warehouse_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	ItemType       ItemType        `json:"item_type"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	MinimumStock   decimal.Decimal `json:"minimum_stock"`
}

// NewWarehouseItem creates a warehouse item
func NewWarehouseItem(warehouseID uuid.UUID, sku, name string, itemType ItemType, quantityOnHand, unitCost, minimumStock decimal.Decimal) (*WarehouseItem, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Item type is not valid")
	}
	if quantityOnHand.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity on hand cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}
	return &WarehouseItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WarehouseID:       warehouseID,
		SKU:               sku,
		Name:              name,
		ItemType:          itemType,
		QuantityOnHand:    quantityOnHand,
		UnitCost:          unitCost,
		MinimumStock:      minimumStock,
	}, nil
}

// Consume decrements the on-hand quantity, preserving non-negativity
func (w *WarehouseItem) Consume(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Consumed quantity must be positive")
	}
	newQty := w.QuantityOnHand.Sub(quantity)
	if newQty.IsNegative() {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s: on hand %s, requested %s",
				w.SKU, w.QuantityOnHand.String(), quantity.String()))
	}
	w.QuantityOnHand = newQty
	w.Touch()
	w.IncrementVersion()
	return nil
}

// IsBelowMinimum returns true if on-hand stock has fallen below the threshold
func (w *WarehouseItem) IsBelowMinimum() bool {
	return w.QuantityOnHand.LessThan(w.MinimumStock)
}
