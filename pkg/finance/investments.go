package finance

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/housing-advisor/pkg/constants"
	"github.com/iwvelando/housing-advisor/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrPensionAgeExceeded is returned when the active investment period
	// would run past the pension age.
	ErrPensionAgeExceeded = errors.New("age and active investment period exceed pension age")

	// ErrNegativeTopUp is returned when a top-up contribution is below zero.
	ErrNegativeTopUp = errors.New("top-up contribution cannot be negative")

	// ErrInvalidInvestment is returned for negative capital, contributions or periods.
	ErrInvalidInvestment = errors.New("invalid investment parameters")
)

// InvestmentParameters describes a savings plan that is funded monthly for
// ActiveYears and then left to grow until the pension age.
type InvestmentParameters struct {
	StartingCapital     float64
	MonthlyContribution float64
	AnnualReturnPercent float64
	ActiveYears         int
	CurrentAge          int
}

// PassiveYears returns the number of years between the end of the active
// period and the pension age.
func (p InvestmentParameters) PassiveYears() (int, error) {
	passive := constants.PensionAge - p.CurrentAge - p.ActiveYears
	if passive < 0 {
		return 0, fmt.Errorf("%w: age %d + %d active years > %d",
			ErrPensionAgeExceeded, p.CurrentAge, p.ActiveYears, constants.PensionAge)
	}
	return passive, nil
}

// Validate checks the parameters before a projection is computed.
func (p InvestmentParameters) Validate() error {
	if p.StartingCapital < 0 {
		return fmt.Errorf("%w: starting capital %.2f is negative", ErrInvalidInvestment, p.StartingCapital)
	}
	if p.MonthlyContribution < 0 {
		return fmt.Errorf("%w: monthly contribution %.2f is negative", ErrInvalidInvestment, p.MonthlyContribution)
	}
	if p.AnnualReturnPercent <= -constants.PercentageMultiplier {
		return fmt.Errorf("%w: annual return %.2f%% would wipe out the investment", ErrInvalidInvestment, p.AnnualReturnPercent)
	}
	if p.ActiveYears < 0 {
		return fmt.Errorf("%w: active period %d is negative", ErrInvalidInvestment, p.ActiveYears)
	}
	if p.CurrentAge < 0 {
		return fmt.Errorf("%w: age %d is negative", ErrInvalidInvestment, p.CurrentAge)
	}
	_, err := p.PassiveYears()
	return err
}

// TopUp returns the extra monthly contribution available to a renter whose
// rent is cheaper than the average monthly cost of ownership.
func TopUp(averageMonthlyOwnershipCost, monthlyRent float64) float64 {
	return mathutil.Max(0, averageMonthlyOwnershipCost-monthlyRent)
}

// FutureValue returns the value after years of compounding annually at
// annualReturn (decimal) with monthlyContribution deposited as a yearly sum.
func FutureValue(startingCapital, monthlyContribution, annualReturn float64, years int) float64 {
	yearly := monthlyContribution * constants.MonthsPerYear
	if annualReturn == 0 {
		return startingCapital + yearly*float64(years)
	}
	growth := math.Pow(1+annualReturn, float64(years))
	return startingCapital*growth + yearly*(growth-1)/annualReturn
}

// InvestmentProcessor computes yearly investment projections.
type InvestmentProcessor struct {
	logger *zap.Logger
}

// NewInvestmentProcessor creates a processor for investment calculations.
func NewInvestmentProcessor(logger *zap.Logger) *InvestmentProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvestmentProcessor{logger: logger}
}

// Project builds the yearly value series for params with topUp added to the
// monthly contribution during the active period.
func (ip *InvestmentProcessor) Project(params InvestmentParameters, topUp float64) (Series, error) {
	if topUp < 0 {
		return Series{}, fmt.Errorf("%w: got %.2f", ErrNegativeTopUp, topUp)
	}
	if err := params.Validate(); err != nil {
		return Series{}, err
	}
	passiveYears, _ := params.PassiveYears()

	contribution := params.MonthlyContribution + topUp
	annualReturn := mathutil.PercentToDecimal(params.AnnualReturnPercent)
	total := params.ActiveYears + passiveYears

	values := make([]float64, 0, total)
	for year := 1; year <= params.ActiveYears; year++ {
		values = append(values, FutureValue(params.StartingCapital, contribution, annualReturn, year))
	}

	// Passive growth compounds the end-of-active value only.
	endOfActive := params.StartingCapital
	if params.ActiveYears > 0 {
		endOfActive = values[params.ActiveYears-1]
	}
	for year := params.ActiveYears + 1; year <= total; year++ {
		values = append(values, endOfActive*math.Pow(1+annualReturn, float64(year-params.ActiveYears)))
	}

	ip.logger.Debug(fmt.Sprintf("projected %d years with monthly contribution %.2f", total, contribution),
		zap.String("op", "finance.Project"),
		zap.Int("activeYears", params.ActiveYears),
		zap.Int("passiveYears", passiveYears),
		zap.Float64("topUp", topUp),
	)

	return Series{
		Values:              values,
		ActiveYears:         params.ActiveYears,
		PassiveYears:        passiveYears,
		MonthlyContribution: contribution,
	}, nil
}
