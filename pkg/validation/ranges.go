package validation

import (
	"fmt"
	"math"
)

// Range is the supported interval of a numeric input. A NaN bound is open.
type Range struct {
	Name string
	Min  float64
	Max  float64
}

// Bounded returns a closed range.
func Bounded(name string, min, max float64) Range {
	return Range{Name: name, Min: min, Max: max}
}

// AtLeast returns a range with no upper bound.
func AtLeast(name string, min float64) Range {
	return Range{Name: name, Min: min, Max: math.NaN()}
}

// Check returns a warning when value lies outside the range, or "" otherwise.
func (r Range) Check(value float64) string {
	if !math.IsNaN(r.Min) && value < r.Min {
		return fmt.Sprintf("%s %.2f is below the supported minimum %.2f", r.Name, value, r.Min)
	}
	if !math.IsNaN(r.Max) && value > r.Max {
		return fmt.Sprintf("%s %.2f is above the supported maximum %.2f", r.Name, value, r.Max)
	}
	return ""
}

// RangeCheck pairs a range with the value to check.
type RangeCheck struct {
	Range Range
	Value float64
}

// CheckRanges returns the warnings of every failed check in order.
func CheckRanges(checks []RangeCheck) []string {
	var warnings []string
	for _, c := range checks {
		if warning := c.Range.Check(c.Value); warning != "" {
			warnings = append(warnings, warning)
		}
	}
	return warnings
}
