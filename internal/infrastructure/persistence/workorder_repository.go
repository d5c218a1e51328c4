package persistence

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/workorder"
	"github.com/fieldpoint/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkOrderRepository implements workorder.WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// FindByID finds a work order by its ID, line items included
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads the work order under a FOR UPDATE row lock so
// concurrent completions serialize on the order row.
func (r *GormWorkOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	if err := r.db.WithContext(ctx).
		Where("work_order_id = ?", id).
		Find(&model.LineItems).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a work order together with its line items
func (r *GormWorkOrderRepository) Save(ctx context.Context, wo *workorder.WorkOrder) error {
	model := models.WorkOrderModelFromDomain(wo)
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error
}

// GormWarehouseItemRepository implements workorder.WarehouseItemRepository
// using GORM
type GormWarehouseItemRepository struct {
	db *gorm.DB
}

// NewGormWarehouseItemRepository creates a new GormWarehouseItemRepository
func NewGormWarehouseItemRepository(db *gorm.DB) *GormWarehouseItemRepository {
	return &GormWarehouseItemRepository{db: db}
}

// FindByID finds a warehouse item by its ID
func (r *GormWarehouseItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.WarehouseItem, error) {
	var model models.WarehouseItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs loads all warehouse items with the given IDs
func (r *GormWarehouseItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]workorder.WarehouseItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var itemModels []models.WarehouseItemModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]workorder.WarehouseItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// DecrementStock atomically subtracts quantity from the item's on-hand stock.
// The WHERE guard keeps the quantity non-negative: zero rows affected means
// there was not enough stock and nothing was changed.
func (r *GormWarehouseItemRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.WarehouseItemModel{}).
		Where("id = ? AND quantity_on_hand >= ?", id, quantity).
		Update("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Save creates or updates a warehouse item
func (r *GormWarehouseItemRepository) Save(ctx context.Context, item *workorder.WarehouseItem) error {
	model := models.WarehouseItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

var (
	_ workorder.WorkOrderRepository     = (*GormWorkOrderRepository)(nil)
	_ workorder.WarehouseItemRepository = (*GormWarehouseItemRepository)(nil)
)
