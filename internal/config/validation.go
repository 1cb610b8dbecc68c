package config

import (
	"github.com/iwvelando/housing-advisor/pkg/validation"
)

// Supported input ranges. Values outside them are still computed but
// reported as warnings.
var (
	LoanAmountRange          = validation.Bounded("Loan amount", 0, 2000000)
	MaintenanceFeeRange      = validation.Bounded("Maintenance fee", 0, 2000)
	PropertyValueRange       = validation.Bounded("Property value", 0, 2000000)
	LoanTermRange            = validation.Bounded("Loan term", 5, 40)
	InterestRateRange        = validation.Bounded("Interest rate", 0, 10)
	StartingCapitalRange     = validation.Bounded("Starting capital", 0, 1000000)
	MonthlyContributionRange = validation.Bounded("Monthly contribution", 0, 10000)
	AnnualReturnRange        = validation.Bounded("Annual return", 0, 20)
	ActiveYearsRange         = validation.Bounded("Active investment years", 1, 40)
	CurrentAgeRange          = validation.Bounded("Current age", 0, 100)
	MonthlyRentRange         = validation.Bounded("Monthly rent", 0, 4000)
	NetSalaryRange           = validation.AtLeast("Net salary", 0)
)

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	return validation.CheckRanges([]validation.RangeCheck{
		{Range: LoanAmountRange, Value: c.Loan.Amount},
		{Range: MaintenanceFeeRange, Value: c.Loan.MaintenanceFee},
		{Range: PropertyValueRange, Value: c.Property.Value},
		{Range: LoanTermRange, Value: float64(c.Loan.TermYears)},
		{Range: InterestRateRange, Value: c.Loan.InterestRate},
		{Range: StartingCapitalRange, Value: c.Investment.StartingCapital},
		{Range: MonthlyContributionRange, Value: c.Investment.MonthlyContribution},
		{Range: AnnualReturnRange, Value: c.Investment.AnnualReturn},
		{Range: ActiveYearsRange, Value: float64(c.Investment.ActiveYears)},
		{Range: CurrentAgeRange, Value: float64(c.Investment.CurrentAge)},
		{Range: MonthlyRentRange, Value: c.Household.MonthlyRent},
		{Range: NetSalaryRange, Value: c.Household.NetSalary},
	})
}
