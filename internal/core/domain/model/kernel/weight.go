package kernel

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

const lbToKg = 0.45359237

// WeightUnit enumerates the units a package weight can be declared in.
type WeightUnit string

const (
	// Kilograms is the metric weight unit and the unit all aggregations normalize to.
	Kilograms WeightUnit = "kg"
	// Pounds is the imperial weight unit used by most US retailers.
	Pounds WeightUnit = "lb"
)

// Validate checks that the unit is one of the supported weight units.
func (u WeightUnit) Validate() error {
	if u != Kilograms && u != Pounds {
		return errs.NewValueIsInvalidErrorWithCause("weight unit",
			fmt.Errorf("%q is not a supported weight unit", string(u)))
	}
	return nil
}

// Weight is a value object representing a declared package weight.
// It keeps the unit the weight was declared in and normalizes to kilograms
// for aggregation and pricing.
//
// The zero value is invalid; use NewWeight.
type Weight struct {
	value float64
	unit  WeightUnit
}

// NewWeight creates a Weight from a positive value and a supported unit.
func NewWeight(value float64, unit WeightUnit) (Weight, error) {
	if value <= 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v is not greater than 0", value))
	}
	if err := unit.Validate(); err != nil {
		return Weight{}, err
	}
	return Weight{value: value, unit: unit}, nil
}

// Value returns the weight in its declared unit.
func (w Weight) Value() float64 {
	return w.value
}

// Unit returns the unit the weight was declared in.
func (w Weight) Unit() WeightUnit {
	return w.unit
}

// Kilograms returns the weight converted to kilograms.
func (w Weight) Kilograms() float64 {
	if w.unit == Pounds {
		return w.value * lbToKg
	}
	return w.value
}

// IsZero reports whether the weight is the (invalid) zero value.
func (w Weight) IsZero() bool {
	return w.value == 0 && w.unit == ""
}

// Validate checks that the weight was created via NewWeight.
func (w Weight) Validate() error {
	if w.IsZero() {
		return errs.NewValueIsRequiredError("weight")
	}
	return nil
}

// String implements fmt.Stringer, e.g. "2.5 kg".
func (w Weight) String() string {
	return fmt.Sprintf("%g %s", w.value, w.unit)
}
