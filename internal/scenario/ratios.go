package scenario

// Ratios are the lending indicators a bank would look at. A nil ratio is
// undefined for the given inputs.
type Ratios struct {
	// DebtToIncome is monthly debt payments as a percentage of net salary.
	DebtToIncome *float64 `json:"debtToIncome,omitempty"`
	// LoanToValue is the loan as a percentage of the property value.
	LoanToValue *float64 `json:"loanToValue,omitempty"`
	// HousingCostShare is mortgage plus maintenance as a percentage of net salary.
	HousingCostShare *float64 `json:"housingCostShare,omitempty"`
	// AffordabilityIndex above 1 is considered affordable.
	AffordabilityIndex  *float64 `json:"affordabilityIndex,omitempty"`
	FuturePropertyValue float64  `json:"futurePropertyValue"`
}

func computeRatios(in Inputs, monthlyPayment, futurePropertyValue float64) Ratios {
	fee := in.Loan.MaintenanceFeePerMonth
	debtPayments := monthlyPayment + fee
	ratios := Ratios{FuturePropertyValue: futurePropertyValue}

	if in.NetSalary > 0 {
		ratios.DebtToIncome = ratio(debtPayments/in.NetSalary*100)
		ratios.HousingCostShare = ratio(debtPayments/in.NetSalary*100)
	}
	if in.PropertyValue > 0 {
		ratios.LoanToValue = ratio(in.Loan.Principal/in.PropertyValue*100)
	}
	if debtPayments > 0 {
		// Maintenance counts both as debt service and as a living expense.
		otherExpenses := fee + in.Investment.MonthlyContribution
		ratios.AffordabilityIndex = ratio((in.NetSalary - debtPayments - otherExpenses) / debtPayments)
	}
	return ratios
}

func ratio(v float64) *float64 {
	return &v
}
