package kernel

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

const inToCm = 2.54

// DimensionUnit enumerates the units box dimensions can be declared in.
type DimensionUnit string

const (
	// Centimeters is the metric dimension unit and the unit aggregations normalize to.
	Centimeters DimensionUnit = "cm"
	// Inches is the imperial dimension unit.
	Inches DimensionUnit = "in"
)

// Validate checks that the unit is one of the supported dimension units.
func (u DimensionUnit) Validate() error {
	if u != Centimeters && u != Inches {
		return errs.NewValueIsInvalidErrorWithCause("dimension unit",
			fmt.Errorf("%q is not a supported dimension unit", string(u)))
	}
	return nil
}

// Dimensions is a value object representing the length, width, and height of a
// box. All three sides must be positive. Volume and per-side accessors
// normalize to centimeters for aggregation and pricing.
//
// The zero value is invalid; use NewDimensions.
type Dimensions struct {
	length float64
	width  float64
	height float64
	unit   DimensionUnit
}

// NewDimensions creates Dimensions from three positive sides and a supported unit.
func NewDimensions(length, width, height float64, unit DimensionUnit) (Dimensions, error) {
	if length <= 0 || width <= 0 || height <= 0 {
		return Dimensions{}, errs.NewValueIsInvalidErrorWithCause("dimensions",
			fmt.Errorf("%gx%gx%g: all sides must be greater than 0", length, width, height))
	}
	if err := unit.Validate(); err != nil {
		return Dimensions{}, err
	}
	return Dimensions{length: length, width: width, height: height, unit: unit}, nil
}

// Length returns the length in the declared unit.
func (d Dimensions) Length() float64 { return d.length }

// Width returns the width in the declared unit.
func (d Dimensions) Width() float64 { return d.width }

// Height returns the height in the declared unit.
func (d Dimensions) Height() float64 { return d.height }

// Unit returns the unit the dimensions were declared in.
func (d Dimensions) Unit() DimensionUnit { return d.unit }

// LengthCm returns the length converted to centimeters.
func (d Dimensions) LengthCm() float64 { return d.toCm(d.length) }

// WidthCm returns the width converted to centimeters.
func (d Dimensions) WidthCm() float64 { return d.toCm(d.width) }

// HeightCm returns the height converted to centimeters.
func (d Dimensions) HeightCm() float64 { return d.toCm(d.height) }

// VolumeCm3 returns the box volume in cubic centimeters.
func (d Dimensions) VolumeCm3() float64 {
	return d.LengthCm() * d.WidthCm() * d.HeightCm()
}

// IsZero reports whether the dimensions are the (invalid) zero value.
func (d Dimensions) IsZero() bool {
	return d.length == 0 && d.width == 0 && d.height == 0 && d.unit == ""
}

// Validate checks that the dimensions were created via NewDimensions.
func (d Dimensions) Validate() error {
	if d.IsZero() {
		return errs.NewValueIsRequiredError("dimensions")
	}
	return nil
}

// String implements fmt.Stringer, e.g. "30x20x15 cm".
func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g %s", d.length, d.width, d.height, d.unit)
}

func (d Dimensions) toCm(v float64) float64 {
	if d.unit == Inches {
		return v * inToCm
	}
	return v
}
