// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/housing-advisor/internal/scenario"
	"github.com/iwvelando/housing-advisor/pkg/finance"
	"github.com/iwvelando/housing-advisor/pkg/loans"
)

// DefaultInputs returns the reference scenario: a 300,000 loan at 3% over
// 25 years with a 100 monthly fee, 500 a month invested at 5% for 25 years
// from age 30, rent of 1,200 and a net salary of 3,000.
func DefaultInputs() scenario.Inputs {
	return scenario.Inputs{
		Loan: loans.LoanParameters{
			Principal:              300000,
			AnnualRatePercent:      3,
			TermYears:              25,
			MaintenanceFeePerMonth: 100,
		},
		Investment: finance.InvestmentParameters{
			MonthlyContribution: 500,
			AnnualReturnPercent: 5,
			ActiveYears:         25,
			CurrentAge:          30,
		},
		MonthlyRent:   1200,
		NetSalary:     3000,
		PropertyValue: 300000,
	}
}

// Compare runs the comparison and fails the test on error.
func Compare(t testing.TB, in scenario.Inputs) *scenario.Summary {
	t.Helper()
	summary, err := scenario.NewComparator(nil).Compare(in)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	return summary
}
