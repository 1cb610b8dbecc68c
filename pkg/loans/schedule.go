package loans

import "github.com/iwvelando/housing-advisor/pkg/constants"

// Schedule is a month-by-month amortization schedule.
type Schedule struct {
	Loan           LoanParameters
	MonthlyPayment float64
	Payments       []Payment
}

// AnnualTotal aggregates one year of a Schedule along with running totals.
type AnnualTotal struct {
	Year                int
	Payment             float64
	Interest            float64
	Principal           float64
	CumulativeInterest  float64
	CumulativePrincipal float64
	CumulativeCost      float64
}

// AnnualTotals sums the schedule per year and accumulates the sums.
func (s Schedule) AnnualTotals() []AnnualTotal {
	years := len(s.Payments) / constants.MonthsPerYear
	totals := make([]AnnualTotal, 0, years)

	var cumulativeInterest, cumulativePrincipal float64
	for year := 0; year < years; year++ {
		total := AnnualTotal{Year: year + 1}
		for _, payment := range s.Payments[year*constants.MonthsPerYear : (year+1)*constants.MonthsPerYear] {
			total.Payment += payment.Payment
			total.Interest += payment.Interest
			total.Principal += payment.Principal
		}
		cumulativeInterest += total.Interest
		cumulativePrincipal += total.Principal
		total.CumulativeInterest = cumulativeInterest
		total.CumulativePrincipal = cumulativePrincipal
		total.CumulativeCost = cumulativeInterest + cumulativePrincipal
		totals = append(totals, total)
	}
	return totals
}

// TotalInterest returns the interest paid over the whole schedule.
func (s Schedule) TotalInterest() float64 {
	total := 0.0
	for _, payment := range s.Payments {
		total += payment.Interest
	}
	return total
}

// TotalPrincipal returns the principal repaid over the whole schedule.
func (s Schedule) TotalPrincipal() float64 {
	total := 0.0
	for _, payment := range s.Payments {
		total += payment.Principal
	}
	return total
}

// TotalPayments returns interest plus principal over the whole schedule.
func (s Schedule) TotalPayments() float64 {
	return s.TotalInterest() + s.TotalPrincipal()
}

// FirstPayment returns the first month of the schedule, or a zero Payment
// for an empty schedule.
func (s Schedule) FirstPayment() Payment {
	if len(s.Payments) == 0 {
		return Payment{}
	}
	return s.Payments[0]
}
