package budget

import (
	"sort"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/fieldpoint/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyDistribution is one month's share of a yearly budget. A populated
// budget always carries exactly twelve rows whose percents sum to 100.00.
type MonthlyDistribution struct {
	ID      uuid.UUID           `json:"id"`
	Month   int                 `json:"month"`
	Percent valueobject.Percent `json:"percent"`
}

// Budget is a yearly budget for a cost center. Distributions are owned by the
// budget and replaced as a whole set.
type Budget struct {
	shared.BaseAggregateRoot
	Name          string                `json:"name"`
	Year          int                   `json:"year"`
	CostCenterID  uuid.UUID             `json:"cost_center_id"`
	Distributions []MonthlyDistribution `json:"distributions"`
}

// NewBudget creates a budget. When no distributions are supplied the twelve
// default rows are seeded so the sum invariant holds from the start.
func NewBudget(name string, year int, costCenterID uuid.UUID, distributions []MonthlyDistribution) (*Budget, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Budget name cannot be empty")
	}
	if year < 1900 || year > 3000 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Budget year is out of range")
	}
	if costCenterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COST_CENTER", "Cost center ID cannot be empty")
	}
	if len(distributions) == 0 {
		distributions = DefaultDistributions()
	}
	b := &Budget{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Year:              year,
		CostCenterID:      costCenterID,
		Distributions:     distributions,
	}
	for i := range b.Distributions {
		if b.Distributions[i].ID == uuid.Nil {
			b.Distributions[i].ID = uuid.New()
		}
	}
	return b, nil
}

// DefaultDistributions returns the seeded even split: eleven months at 8.33
// and December at 8.37, summing to exactly 100.00.
func DefaultDistributions() []MonthlyDistribution {
	even := valueobject.RequirePercentFromString("8.33")
	last := valueobject.RequirePercentFromString("8.37")
	rows := make([]MonthlyDistribution, 0, 12)
	for month := 1; month <= 12; month++ {
		percent := even
		if month == 12 {
			percent = last
		}
		rows = append(rows, MonthlyDistribution{ID: uuid.New(), Month: month, Percent: percent})
	}
	return rows
}

// ReplaceDistributions swaps in a validated set of twelve rows, sorted by month
func (b *Budget) ReplaceDistributions(rows []MonthlyDistribution) {
	sorted := make([]MonthlyDistribution, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })
	for i := range sorted {
		if sorted[i].ID == uuid.Nil {
			sorted[i].ID = uuid.New()
		}
	}
	b.Distributions = sorted
	b.Touch()
	b.IncrementVersion()
}

// TotalPercent returns the sum of the distribution percents, quantized to two
// fractional digits half-up
func (b *Budget) TotalPercent() decimal.Decimal {
	total := decimal.Zero
	for _, d := range b.Distributions {
		total = total.Add(d.Percent.Decimal())
	}
	return total.Round(2)
}
