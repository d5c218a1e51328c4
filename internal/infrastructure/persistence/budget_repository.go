package persistence

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/budget"
	"github.com/fieldpoint/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBudgetRepository implements budget.Repository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindByID finds a budget by its ID, distributions included and ordered by
// month
func (r *GormBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	var model models.BudgetModel
	if err := r.db.WithContext(ctx).
		Preload("Distributions", func(db *gorm.DB) *gorm.DB {
			return db.Order("month ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads the budget under a FOR UPDATE row lock so that
// concurrent distribution replacements serialize.
func (r *GormBudgetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	var model models.BudgetModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	if err := r.db.WithContext(ctx).
		Where("budget_id = ?", id).
		Order("month ASC").
		Find(&model.Distributions).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a new budget together with its distributions
func (r *GormBudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	model := models.BudgetModelFromDomain(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// ReplaceDistributions deletes the budget's rows and inserts the given set.
// Both statements run in the caller's transaction, so a budget is never
// observable with a partial set.
func (r *GormBudgetRepository) ReplaceDistributions(ctx context.Context, budgetID uuid.UUID, rows []budget.MonthlyDistribution) error {
	if err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Delete(&models.BudgetDistributionModel{}).Error; err != nil {
		return err
	}
	distModels := make([]models.BudgetDistributionModel, len(rows))
	for i, row := range rows {
		distModels[i] = models.BudgetDistributionModelFromDomain(budgetID, row)
	}
	if err := r.db.WithContext(ctx).Create(&distModels).Error; err != nil {
		return translateError(err)
	}
	// Bump the aggregate so stale readers notice the swap.
	return r.db.WithContext(ctx).
		Model(&models.BudgetModel{}).
		Where("id = ?", budgetID).
		Update("version", gorm.Expr("version + 1")).Error
}

var _ budget.Repository = (*GormBudgetRepository)(nil)
