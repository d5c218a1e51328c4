package models

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderModel is the persistence model for the WorkOrder aggregate root
type WorkOrderModel struct {
	AggregateModel
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status      string     `gorm:"type:varchar(20);not null;default:'OPEN'"`
	CompletedAt *time.Time
	// Associations
	LineItems []WorkOrderLineItemModel `gorm:"foreignKey:WorkOrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (WorkOrderModel) TableName() string {
	return "work_orders"
}

// ToDomain converts the persistence model to a domain WorkOrder
func (m *WorkOrderModel) ToDomain() *workorder.WorkOrder {
	wo := &workorder.WorkOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProjectID:         m.ProjectID,
		Status:            workorder.Status(m.Status),
		CompletedAt:       m.CompletedAt,
		LineItems:         make([]workorder.LineItem, len(m.LineItems)),
	}
	for i, item := range m.LineItems {
		wo.LineItems[i] = item.ToDomain()
	}
	return wo
}

// FromDomain populates the persistence model from a domain WorkOrder
func (m *WorkOrderModel) FromDomain(wo *workorder.WorkOrder) {
	m.FromDomainAggregateRoot(wo.BaseAggregateRoot)
	m.ProjectID = wo.ProjectID
	m.Status = wo.Status.String()
	m.CompletedAt = wo.CompletedAt
	m.LineItems = make([]WorkOrderLineItemModel, len(wo.LineItems))
	for i, item := range wo.LineItems {
		m.LineItems[i] = WorkOrderLineItemModelFromDomain(wo.ID, item)
	}
}

// WorkOrderModelFromDomain creates a new persistence model from a domain
// WorkOrder
func WorkOrderModelFromDomain(wo *workorder.WorkOrder) *WorkOrderModel {
	m := &WorkOrderModel{}
	m.FromDomain(wo)
	return m
}

// WorkOrderLineItemModel is the persistence model for a work-order line item
type WorkOrderLineItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	WorkOrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description     string          `gorm:"type:varchar(500);not null"`
	Quantity        int             `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	WarehouseItemID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (WorkOrderLineItemModel) TableName() string {
	return "work_order_line_items"
}

// ToDomain converts the persistence model to a domain LineItem
func (m *WorkOrderLineItemModel) ToDomain() workorder.LineItem {
	return workorder.LineItem{
		ID:              m.ID,
		Description:     m.Description,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		WarehouseItemID: m.WarehouseItemID,
	}
}

// WorkOrderLineItemModelFromDomain creates a persistence model from a domain
// LineItem
func WorkOrderLineItemModelFromDomain(workOrderID uuid.UUID, item workorder.LineItem) WorkOrderLineItemModel {
	return WorkOrderLineItemModel{
		ID:              item.ID,
		WorkOrderID:     workOrderID,
		Description:     item.Description,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		WarehouseItemID: item.WarehouseItemID,
	}
}

// WarehouseItemModel is the persistence model for the WarehouseItem aggregate
// root
type WarehouseItemModel struct {
	AggregateModel
	WarehouseID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_items_warehouse_sku,priority:1"`
	SKU            string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_warehouse_items_warehouse_sku,priority:2"`
	Name           string          `gorm:"type:varchar(200);not null"`
	ItemType       string          `gorm:"type:varchar(20);not null"`
	QuantityOnHand decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinimumStock   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (WarehouseItemModel) TableName() string {
	return "warehouse_items"
}

// ToDomain converts the persistence model to a domain WarehouseItem
func (m *WarehouseItemModel) ToDomain() *workorder.WarehouseItem {
	return &workorder.WarehouseItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		WarehouseID:       m.WarehouseID,
		SKU:               m.SKU,
		Name:              m.Name,
		ItemType:          workorder.ItemType(m.ItemType),
		QuantityOnHand:    m.QuantityOnHand,
		UnitCost:          m.UnitCost,
		MinimumStock:      m.MinimumStock,
	}
}

// FromDomain populates the persistence model from a domain WarehouseItem
func (m *WarehouseItemModel) FromDomain(w *workorder.WarehouseItem) {
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	m.WarehouseID = w.WarehouseID
	m.SKU = w.SKU
	m.Name = w.Name
	m.ItemType = string(w.ItemType)
	m.QuantityOnHand = w.QuantityOnHand
	m.UnitCost = w.UnitCost
	m.MinimumStock = w.MinimumStock
}

// WarehouseItemModelFromDomain creates a new persistence model from a domain
// WarehouseItem
func WarehouseItemModelFromDomain(w *workorder.WarehouseItem) *WarehouseItemModel {
	m := &WarehouseItemModel{}
	m.FromDomain(w)
	return m
}
