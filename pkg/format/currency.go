// Package format renders monetary amounts and percentages for reports and advice.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted currency amount.
const CurrencySymbol = "€"

// NotANumber is printed for NaN and infinite values, which decimal cannot represent.
const NotANumber = "n/a"

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Currency returns a currency string with a euro sign and thousands separators (e.g., "-€1,234.56").
func Currency(amount float64) string {
	if !finite(amount) {
		return NotANumber
	}
	formatted := NumericCurrency(amount)
	if strings.HasPrefix(formatted, "-") {
		return "-" + CurrencySymbol + formatted[1:]
	}
	return CurrencySymbol + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if !finite(amount) {
		return NotANumber
	}
	return groupThousands(Round(amount).StringFixed(2))
}

// Percent returns a percentage with two decimals (e.g., "32.58 %").
func Percent(value float64) string {
	if !finite(value) {
		return NotANumber
	}
	return Round(value).StringFixed(2) + " %"
}

// Round converts amount to a decimal rounded half away from zero to cents.
// Callers must pass a finite amount.
func Round(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	if fixed == "0.00" {
		sign = ""
	}

	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return sign + intPart + "." + decPart
}
