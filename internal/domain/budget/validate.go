package budget

import (
	"fmt"

	"github.com/fieldpoint/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var fullTotal = decimal.RequireFromString("100.00")

// DistributionRow is one unvalidated {month, percent} pair as submitted by a
// caller. Percent is kept as the raw string so bad input can be echoed back.
type DistributionRow struct {
	Month   int
	Percent string
}

// ValidateDistributions checks a full replacement set and collects every
// failure. The returned strings are stable API contract; an empty slice means
// the rows are valid. Rules: exactly 12 rows, months 1..12 unique, percents
// decimal within [0, 100], total exactly 100.00 after half-up quantization to
// two fractional digits.
func ValidateDistributions(rows []DistributionRow) (validated []MonthlyDistribution, errs []string) {
	if len(rows) != 12 {
		errs = append(errs, "Exactly 12 months required")
	}

	seen := make(map[int]bool, len(rows))
	total := decimal.Zero
	allParsed := true
	validated = make([]MonthlyDistribution, 0, len(rows))

	for i, row := range rows {
		rowNum := i + 1

		if row.Month < 1 || row.Month > 12 {
			errs = append(errs, fmt.Sprintf("Row %d: month %d out of range (1..12)", rowNum, row.Month))
		} else if seen[row.Month] {
			errs = append(errs, fmt.Sprintf("Duplicate month %d", row.Month))
		} else {
			seen[row.Month] = true
		}

		raw, err := decimal.NewFromString(row.Percent)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: invalid percent %q", rowNum, row.Percent))
			allParsed = false
			continue
		}
		total = total.Add(raw)
		percent, err := valueobject.NewPercent(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: %s", rowNum, err))
			continue
		}
		validated = append(validated, MonthlyDistribution{Month: row.Month, Percent: percent})
	}

	if len(rows) == 12 && allParsed && !total.Round(2).Equal(fullTotal) {
		errs = append(errs, fmt.Sprintf("Total percent must be 100.00 (got %s)", total.Round(2).StringFixed(2)))
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return validated, nil
}
