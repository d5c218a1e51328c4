package models

import (
	"github.com/fieldpoint/backend/internal/domain/budget"
	"github.com/fieldpoint/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BudgetModel is the persistence model for the Budget aggregate root
type BudgetModel struct {
	AggregateModel
	Name         string    `gorm:"type:varchar(200);not null"`
	Year         int       `gorm:"not null;index"`
	CostCenterID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Associations
	Distributions []BudgetDistributionModel `gorm:"foreignKey:BudgetID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the persistence model to a domain Budget
func (m *BudgetModel) ToDomain() *budget.Budget {
	b := &budget.Budget{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Year:              m.Year,
		CostCenterID:      m.CostCenterID,
		Distributions:     make([]budget.MonthlyDistribution, len(m.Distributions)),
	}
	for i, d := range m.Distributions {
		b.Distributions[i] = d.ToDomain()
	}
	return b
}

// FromDomain populates the persistence model from a domain Budget
func (m *BudgetModel) FromDomain(b *budget.Budget) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Year = b.Year
	m.CostCenterID = b.CostCenterID
	m.Distributions = make([]BudgetDistributionModel, len(b.Distributions))
	for i, d := range b.Distributions {
		m.Distributions[i] = BudgetDistributionModelFromDomain(b.ID, d)
	}
}

// BudgetModelFromDomain creates a new persistence model from a domain Budget
func BudgetModelFromDomain(b *budget.Budget) *BudgetModel {
	m := &BudgetModel{}
	m.FromDomain(b)
	return m
}

// BudgetDistributionModel is the persistence model for one monthly
// distribution row. The (budget_id, month) pair is unique so a budget can
// never hold two rows for the same month.
type BudgetDistributionModel struct {
	ID       uuid.UUID           `gorm:"type:uuid;primary_key"`
	BudgetID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_budget_distributions_budget_month,priority:1"`
	Month    int                 `gorm:"not null;uniqueIndex:idx_budget_distributions_budget_month,priority:2"`
	Percent  valueobject.Percent `gorm:"type:decimal(5,2);not null"`
}

// TableName returns the table name for GORM
func (BudgetDistributionModel) TableName() string {
	return "budget_distributions"
}

// ToDomain converts the persistence model to a domain MonthlyDistribution
func (m *BudgetDistributionModel) ToDomain() budget.MonthlyDistribution {
	return budget.MonthlyDistribution{
		ID:      m.ID,
		Month:   m.Month,
		Percent: m.Percent,
	}
}

// BudgetDistributionModelFromDomain creates a persistence model from a domain
// MonthlyDistribution
func BudgetDistributionModelFromDomain(budgetID uuid.UUID, d budget.MonthlyDistribution) BudgetDistributionModel {
	return BudgetDistributionModel{
		ID:       d.ID,
		BudgetID: budgetID,
		Month:    d.Month,
		Percent:  d.Percent,
	}
}
