package scenario

import "github.com/iwvelando/housing-advisor/pkg/loans"

// Share is a monthly amount and its percentage of net salary.
type Share struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

func shareOf(amount, salary float64) Share {
	return Share{Amount: amount, Percent: percentOfSalary(amount, salary)}
}

// BuyAllocation splits the net salary of the first loan month when buying.
type BuyAllocation struct {
	Principal      Share   `json:"principal"`
	Interest       Share   `json:"interest"`
	MaintenanceFee Share   `json:"maintenanceFee"`
	Housing        Share   `json:"housing"`
	Investment     Share   `json:"investment"`
	Residual       Share   `json:"residual"`
	Expenses       float64 `json:"expenses"`
}

// RentAllocation splits the net salary when renting. TopUp and
// InvestmentTotal are only present when the renter has money left to invest
// compared to the owner.
type RentAllocation struct {
	Rent            Share   `json:"rent"`
	Investment      Share   `json:"investment"`
	Residual        Share   `json:"residual"`
	Expenses        float64 `json:"expenses"`
	TopUp           *Share  `json:"topUp,omitempty"`
	InvestmentTotal *Share  `json:"investmentTotal,omitempty"`
}

func buyAllocation(in Inputs, first loans.Payment, monthlyPayment float64) BuyAllocation {
	salary := in.NetSalary
	fee := in.Loan.MaintenanceFeePerMonth
	contribution := in.Investment.MonthlyContribution

	allocation := BuyAllocation{
		Principal:      shareOf(first.Principal, salary),
		Interest:       shareOf(first.Interest, salary),
		MaintenanceFee: shareOf(fee, salary),
		Housing:        shareOf(monthlyPayment+fee, salary),
		Investment:     shareOf(contribution, salary),
		Expenses:       monthlyPayment + fee + contribution,
	}
	allocation.Residual = residual(salary, allocation.Expenses)
	return allocation
}

func rentAllocation(in Inputs, topUp, rentInvestmentTotal float64) RentAllocation {
	salary := in.NetSalary
	contribution := in.Investment.MonthlyContribution

	allocation := RentAllocation{
		Rent:       shareOf(in.MonthlyRent, salary),
		Investment: shareOf(contribution, salary),
		Expenses:   in.MonthlyRent + contribution,
	}
	allocation.Residual = residual(salary, allocation.Expenses)

	if topUp > 0 {
		extra := shareOf(topUp, salary)
		total := shareOf(rentInvestmentTotal, salary)
		allocation.TopUp = &extra
		allocation.InvestmentTotal = &total
	}
	return allocation
}

// residual is what is left of the salary after expenses. A non-positive
// salary leaves nothing to allocate.
func residual(salary, expenses float64) Share {
	if salary <= 0 {
		return Share{}
	}
	return Share{
		Amount:  salary - expenses,
		Percent: 100 - percentOfSalary(expenses, salary),
	}
}
