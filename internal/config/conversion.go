package config

import (
	"github.com/iwvelando/housing-advisor/internal/scenario"
	"github.com/iwvelando/housing-advisor/pkg/finance"
	"github.com/iwvelando/housing-advisor/pkg/loans"
)

// ToLoanParameters converts the loan section to pkg/loans parameters.
func (c *Configuration) ToLoanParameters() loans.LoanParameters {
	return loans.LoanParameters{
		Principal:              c.Loan.Amount,
		AnnualRatePercent:      c.Loan.InterestRate,
		TermYears:              c.Loan.TermYears,
		MaintenanceFeePerMonth: c.Loan.MaintenanceFee,
	}
}

// ToInvestmentParameters converts the investment section to pkg/finance parameters.
func (c *Configuration) ToInvestmentParameters() finance.InvestmentParameters {
	return finance.InvestmentParameters{
		StartingCapital:     c.Investment.StartingCapital,
		MonthlyContribution: c.Investment.MonthlyContribution,
		AnnualReturnPercent: c.Investment.AnnualReturn,
		ActiveYears:         c.Investment.ActiveYears,
		CurrentAge:          c.Investment.CurrentAge,
	}
}

// ToInputs builds the comparison inputs.
func (c *Configuration) ToInputs() scenario.Inputs {
	return scenario.Inputs{
		Loan:          c.ToLoanParameters(),
		Investment:    c.ToInvestmentParameters(),
		MonthlyRent:   c.Household.MonthlyRent,
		NetSalary:     c.Household.NetSalary,
		PropertyValue: c.Property.Value,
	}
}
