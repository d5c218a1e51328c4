package valueobject

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is a value object representing a percentage with two fractional
// digits in the range [0.00, 100.00]. It is immutable.
type Percent struct {
	value decimal.Decimal
}

// NewPercent creates a Percent from a decimal value.
// Returns an error if the value is outside [0, 100].
func NewPercent(value decimal.Decimal) (Percent, error) {
	if value.IsNegative() || value.GreaterThan(hundred) {
		return Percent{}, fmt.Errorf("percent %s out of bounds (0..100)", value.String())
	}
	return Percent{value: value}, nil
}

// NewPercentFromString creates a Percent from a string representation
func NewPercentFromString(value string) (Percent, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Percent{}, fmt.Errorf("invalid percent string: %w", err)
	}
	return NewPercent(d)
}

// RequirePercentFromString creates a Percent from a string representation,
// panicking on invalid input. Intended for constants.
func RequirePercentFromString(value string) Percent {
	p, err := NewPercentFromString(value)
	if err != nil {
		panic(err)
	}
	return p
}

// Decimal returns the decimal value
func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

// Add returns the sum of two percents without bounds checking;
// the caller is responsible for validating the aggregate.
func (p Percent) Add(other Percent) decimal.Decimal {
	return p.value.Add(other.value)
}

// Quantize returns the value rounded half-up to two fractional digits
func (p Percent) Quantize() decimal.Decimal {
	return p.value.Round(2)
}

// String returns the percent as a fixed two-decimal string
func (p Percent) String() string {
	return p.value.StringFixed(2)
}

// MarshalJSON serializes the percent as a fixed two-decimal string
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.value.StringFixed(2) + `"`), nil
}

// Value implements driver.Valuer for database storage
func (p Percent) Value() (driver.Value, error) {
	return p.value.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (p *Percent) Scan(value any) error {
	if value == nil {
		p.value = decimal.Zero
		return nil
	}
	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	case float64:
		p.value = decimal.NewFromFloat(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Percent", value)
	}
	parsed, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	p.value = parsed
	return nil
}
