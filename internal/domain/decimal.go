package domain

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Decimal wraps apd.Decimal so magnitudes quoted as text ("1.15M") can be
// scaled without binary floating point error.
type Decimal struct {
	apd.Decimal
}

// DefaultContext is used for arithmetic operations.
var DefaultContext = apd.BaseContext.WithPrecision(34)

// truncateContext rounds toward zero when converting to an integer.
var truncateContext = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Rounding = apd.RoundDown
	return ctx
}()

// NewDecimalFromInt creates a Decimal from an int64
func NewDecimalFromInt(v int64) Decimal {
	d := Decimal{}
	d.SetInt64(v)
	return d
}

// NewDecimalFromString creates a Decimal from a string
func NewDecimalFromString(v string) (Decimal, error) {
	d := Decimal{}
	_, _, err := d.SetString(v)
	if err != nil {
		return d, fmt.Errorf("invalid decimal string %s: %w", v, err)
	}
	if d.Form != apd.Finite {
		return d, fmt.Errorf("invalid decimal string %s: not a finite number", v)
	}
	return d, nil
}

// String implements the fmt.Stringer interface.
func (d Decimal) String() string {
	return d.Decimal.String()
}

func (d Decimal) Mul(other Decimal) (Decimal, error) {
	res := Decimal{}
	if _, err := DefaultContext.Mul(&res.Decimal, &d.Decimal, &other.Decimal); err != nil {
		return res, fmt.Errorf("mul operation failed: %w", err)
	}
	return res, nil
}

// Int64 drops the fractional part and returns the integer value.
func (d Decimal) Int64() (int64, error) {
	res := Decimal{}
	if _, err := truncateContext.RoundToIntegralValue(&res.Decimal, &d.Decimal); err != nil {
		return 0, fmt.Errorf("truncate operation failed: %w", err)
	}
	v, err := res.Decimal.Int64()
	if err != nil {
		return 0, fmt.Errorf("decimal %s out of int64 range: %w", d.String(), err)
	}
	return v, nil
}
