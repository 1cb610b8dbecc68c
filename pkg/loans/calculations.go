// Package loans provides common loan processing utilities.
package loans

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/housing-advisor/pkg/constants"
	"github.com/iwvelando/housing-advisor/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrInvalidTerm is returned when a loan has no payment periods.
	ErrInvalidTerm = errors.New("loan term must be at least one month")

	// ErrInvalidLoan is returned for negative principal, rate or fees.
	ErrInvalidLoan = errors.New("invalid loan parameters")
)

// LoanParameters describes a fixed-rate annuity loan.
type LoanParameters struct {
	Principal              float64
	AnnualRatePercent      float64
	TermYears              int
	MaintenanceFeePerMonth float64
}

// TermMonths returns the number of monthly payments.
func (p LoanParameters) TermMonths() int {
	return p.TermYears * constants.MonthsPerYear
}

// TotalMaintenance returns the maintenance fees paid over the loan term.
func (p LoanParameters) TotalMaintenance() float64 {
	return p.MaintenanceFeePerMonth * constants.MonthsPerYear * float64(p.TermYears)
}

// Validate checks the parameters before a schedule is generated.
func (p LoanParameters) Validate() error {
	if p.TermMonths() <= 0 {
		return fmt.Errorf("%w: got %d years", ErrInvalidTerm, p.TermYears)
	}
	if p.TermYears > constants.MaxLoanTermYears {
		return fmt.Errorf("%w: got %d years, at most %d allowed", ErrInvalidTerm, p.TermYears, constants.MaxLoanTermYears)
	}
	if p.Principal < 0 {
		return fmt.Errorf("%w: principal %.2f is negative", ErrInvalidLoan, p.Principal)
	}
	if p.AnnualRatePercent < 0 {
		return fmt.Errorf("%w: interest rate %.2f is negative", ErrInvalidLoan, p.AnnualRatePercent)
	}
	if p.MaintenanceFeePerMonth < 0 {
		return fmt.Errorf("%w: maintenance fee %.2f is negative", ErrInvalidLoan, p.MaintenanceFeePerMonth)
	}
	return nil
}

// Payment holds the values for a given payment.
type Payment struct {
	Month              int
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	return principal * periodicInterestRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyRate(annualInterestRate)
}

// MonthlyRate converts an annual percentage rate into a periodic monthly rate.
func MonthlyRate(annualInterestRate float64) float64 {
	return mathutil.PercentToDecimal(annualInterestRate) / constants.MonthsPerYear
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a complete amortization schedule for a loan
func (g *AmortizationScheduleGenerator) GenerateSchedule(loan LoanParameters) (Schedule, error) {
	if err := loan.Validate(); err != nil {
		return Schedule{}, err
	}

	months := loan.TermMonths()
	monthlyPayment := CalculateMonthlyPayment(loan.Principal, loan.AnnualRatePercent, months)

	g.logger.Debug(fmt.Sprintf("generating %d month schedule with payment %.2f", months, monthlyPayment),
		zap.String("op", "loans.GenerateSchedule"),
		zap.Float64("principal", loan.Principal),
		zap.Float64("rate", loan.AnnualRatePercent),
	)

	payments := make([]Payment, 0, months)
	balance := loan.Principal
	for month := 1; month <= months; month++ {
		var current Payment
		current.Month = month
		current.Payment = monthlyPayment
		current.Interest = CalculateInterestPayment(balance, loan.AnnualRatePercent)
		current.Principal = monthlyPayment - current.Interest
		balance -= current.Principal

		if month == months && mathutil.IsZero(balance) {
			// We will get machine error otherwise so just set to 0.
			balance = 0.00
		}
		current.RemainingPrincipal = balance
		payments = append(payments, current)
	}

	return Schedule{
		Loan:           loan,
		MonthlyPayment: monthlyPayment,
		Payments:       payments,
	}, nil
}
