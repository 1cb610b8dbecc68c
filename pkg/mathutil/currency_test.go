package mathutil

import (
	"math"
	"testing"
)

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Just below negative tolerance", -0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Exactly negative tolerance", -0.01, true},
		{"Large positive", 100.0, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Exactly equal", 1.0, 1.0, 0.1, true},
		{"Within tolerance", 1.0, 1.05, 0.1, true},
		{"Outside tolerance", 1.0, 1.15, 0.1, false},
		{"Negative values within tolerance", -1.0, -1.05, 0.1, true},
		{"Negative values outside tolerance", -1.0, -1.15, 0.1, false},
		{"Zero tolerance exact match", 1.0, 1.0, 0.0, true},
		{"Zero tolerance no match", 1.0, 1.001, 0.0, false},
		{"Large tolerance", 1.0, 5.0, 10.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestWithinRelativeTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val       float64
		reference float64
		ratio     float64
		expected  bool
	}{
		{"Exactly equal", 1000.0, 1000.0, 0.1, true},
		{"Inside ten percent", 1090.0, 1000.0, 0.1, true},
		{"On the boundary", 900.0, 1000.0, 0.1, true},
		{"Outside ten percent", 1200.0, 1000.0, 0.1, false},
		{"Negative reference", -1050.0, -1000.0, 0.1, true},
		{"Zero reference", 1.0, 0.0, 0.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinRelativeTolerance(tt.val, tt.reference, tt.ratio)
			if result != tt.expected {
				t.Errorf("WithinRelativeTolerance(%v, %v, %v) = %v, expected %v",
					tt.val, tt.reference, tt.ratio, result, tt.expected)
			}
		})
	}
}

func TestMax(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		expected float64
	}{
		{"First larger", 2.0, 1.0, 2.0},
		{"Second larger", 1.0, 2.0, 2.0},
		{"Equal values", 1.0, 1.0, 1.0},
		{"Negative numbers", -2.0, -1.0, -1.0},
		{"Mixed signs", -1.0, 1.0, 1.0},
		{"Zero and positive", 0.0, 1.0, 1.0},
		{"Zero and negative", 0.0, -1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Max(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Max(%v, %v) = %v, expected %v", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"25% of 200", 50.0, 200.0, 25.0},
		{"100% of value", 100.0, 100.0, 100.0},
		{"More than 100%", 150.0, 100.0, 150.0},
		{"Zero value", 0.0, 100.0, 0.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Both zero", 0.0, 0.0, 0.0},
		{"Negative value", -50.0, 100.0, -50.0},
		{"Negative total", 50.0, -100.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestPercentToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		percent  float64
		expected float64
	}{
		{"Three percent", 3.0, 0.03},
		{"Fractional percent", 3.5, 0.035},
		{"Zero", 0.0, 0.0},
		{"Whole", 100.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentToDecimal(tt.percent)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("PercentToDecimal(%v) = %v, expected %v", tt.percent, result, tt.expected)
			}
		})
	}
}

func TestToleranceBoundaryConditions(t *testing.T) {
	tolerance := 0.01

	// Test exactly at tolerance boundary
	if !IsZero(tolerance) {
		t.Errorf("Value exactly at tolerance should be considered zero")
	}

	if !IsZero(-tolerance) {
		t.Errorf("Negative value exactly at tolerance should be considered zero")
	}

	// Test just outside tolerance
	if IsZero(tolerance + 0.001) {
		t.Errorf("Value just outside tolerance should not be considered zero")
	}

	if IsZero(-tolerance - 0.001) {
		t.Errorf("Negative value just outside tolerance should not be considered zero")
	}
}
