// Package scenario compares buying a home with a mortgage against renting
// and investing the difference.
package scenario

import (
	"fmt"
	"math"

	"github.com/iwvelando/housing-advisor/pkg/constants"
	"github.com/iwvelando/housing-advisor/pkg/finance"
	"github.com/iwvelando/housing-advisor/pkg/loans"
	"github.com/iwvelando/housing-advisor/pkg/mathutil"
	"go.uber.org/zap"
)

// NonPositiveSalaryWarning is reported when percentages of income cannot be computed.
const NonPositiveSalaryWarning = "net salary must be greater than zero for percentage calculations"

// Inputs holds every parameter of a buy-versus-rent comparison.
type Inputs struct {
	Loan          loans.LoanParameters         `json:"loan"`
	Investment    finance.InvestmentParameters `json:"investment"`
	MonthlyRent   float64                      `json:"monthlyRent"`
	NetSalary     float64                      `json:"netSalary"`
	PropertyValue float64                      `json:"propertyValue"`
}

// Totals are the sums paid over the loan term.
type Totals struct {
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	MortgagePayments float64 `json:"mortgagePayments"`
	Maintenance      float64 `json:"maintenance"`
	Rent             float64 `json:"rent"`
}

// OwnershipCosts returns mortgage payments plus maintenance.
func (t Totals) OwnershipCosts() float64 {
	return t.MortgagePayments + t.Maintenance
}

// PathInvestment summarizes the investment series of one path.
type PathInvestment struct {
	MonthlyContribution float64   `json:"monthlyContribution"`
	Active              float64   `json:"active"`
	Passive             float64   `json:"passive"`
	Total               float64   `json:"total"`
	Values              []float64 `json:"values"`
}

func newPathInvestment(series finance.Series) PathInvestment {
	return PathInvestment{
		MonthlyContribution: series.MonthlyContribution,
		Active:              series.ActiveValue(),
		Passive:             series.PassiveGrowth(),
		Total:               series.Final(),
		Values:              append([]float64(nil), series.Values...),
	}
}

// NetWorth compares the wealth of both paths at the end of the projection.
type NetWorth struct {
	Buy        float64 `json:"buy"`
	Rent       float64 `json:"rent"`
	Difference float64 `json:"difference"`
}

// YearRow is one year of the cumulative cost comparison over the loan term.
type YearRow struct {
	Year                   int     `json:"year"`
	CumulativeMortgageCost float64 `json:"cumulativeMortgageCost"`
	CumulativeInterest     float64 `json:"cumulativeInterest"`
	CumulativePrincipal    float64 `json:"cumulativePrincipal"`
	Investment             float64 `json:"investment"`
	CumulativeRent         float64 `json:"cumulativeRent"`
}

// Summary is the full result of a comparison.
type Summary struct {
	Inputs                      Inputs              `json:"inputs"`
	PassiveYears                int                 `json:"passiveYears"`
	MonthlyPayment              float64             `json:"monthlyPayment"`
	AnnualTotals                []loans.AnnualTotal `json:"annualTotals"`
	Totals                      Totals              `json:"totals"`
	AverageMonthlyOwnershipCost float64             `json:"averageMonthlyOwnershipCost"`
	TopUp                       float64             `json:"topUp"`
	BuyInvestment               PathInvestment      `json:"buyInvestment"`
	RentInvestment              PathInvestment      `json:"rentInvestment"`
	Buy                         BuyAllocation       `json:"buyAllocation"`
	Rent                        RentAllocation      `json:"rentAllocation"`
	ResidualDifference          float64             `json:"residualDifference"`
	DifferenceInvestment        *PathInvestment     `json:"differenceInvestment,omitempty"`
	PropertyValueAtLoanEnd      float64             `json:"propertyValueAtLoanEnd"`
	NetWorth                    NetWorth            `json:"netWorth"`
	Ratios                      Ratios              `json:"ratios"`
	Years                       []YearRow           `json:"years"`
	Warnings                    []string            `json:"warnings,omitempty"`
}

// Comparator runs buy-versus-rent comparisons.
type Comparator struct {
	logger    *zap.Logger
	loans     *loans.AmortizationScheduleGenerator
	investing *finance.InvestmentProcessor
}

// NewComparator creates a Comparator.
func NewComparator(logger *zap.Logger) *Comparator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparator{
		logger:    logger,
		loans:     loans.NewAmortizationScheduleGenerator(logger),
		investing: finance.NewInvestmentProcessor(logger),
	}
}

// PropertyValueAfter appreciates value by the fixed yearly rate for years.
func PropertyValueAfter(value float64, years int) float64 {
	return value * math.Pow(1+constants.PropertyAppreciationRate, float64(years))
}

// Compare runs the comparison. Invalid inputs abort without partial results.
func (c *Comparator) Compare(in Inputs) (*Summary, error) {
	passiveYears, err := in.Investment.PassiveYears()
	if err != nil {
		return nil, err
	}

	schedule, err := c.loans.GenerateSchedule(in.Loan)
	if err != nil {
		return nil, fmt.Errorf("failed to generate amortization schedule: %w", err)
	}

	base, err := c.investing.Project(in.Investment, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to project investments: %w", err)
	}

	summary := &Summary{
		Inputs:         in,
		PassiveYears:   passiveYears,
		MonthlyPayment: schedule.MonthlyPayment,
		AnnualTotals:   schedule.AnnualTotals(),
		BuyInvestment:  newPathInvestment(base),
	}

	summary.Totals = Totals{
		Interest:         schedule.TotalInterest(),
		Principal:        schedule.TotalPrincipal(),
		MortgagePayments: schedule.TotalPayments(),
		Maintenance:      in.Loan.TotalMaintenance(),
		Rent:             in.MonthlyRent * constants.MonthsPerYear * float64(in.Loan.TermYears),
	}
	summary.AverageMonthlyOwnershipCost = summary.Totals.OwnershipCosts() / float64(in.Loan.TermMonths())

	summary.TopUp = finance.TopUp(summary.AverageMonthlyOwnershipCost, in.MonthlyRent)
	rentSeries := base
	if summary.TopUp > 0 {
		rentSeries, err = c.investing.Project(in.Investment, summary.TopUp)
		if err != nil {
			return nil, fmt.Errorf("failed to project rent scenario investments: %w", err)
		}
	}
	summary.RentInvestment = newPathInvestment(rentSeries)

	if in.NetSalary <= 0 {
		summary.Warnings = append(summary.Warnings, NonPositiveSalaryWarning)
		c.logger.Warn(NonPositiveSalaryWarning,
			zap.String("op", "scenario.Compare"),
			zap.Float64("netSalary", in.NetSalary),
		)
	}
	summary.Buy = buyAllocation(in, schedule.FirstPayment(), schedule.MonthlyPayment)
	summary.Rent = rentAllocation(in, summary.TopUp, summary.RentInvestment.Total)

	summary.ResidualDifference = summary.Rent.Residual.Amount - summary.Buy.Residual.Amount
	summary.NetWorth.Rent = base.Final()
	if summary.ResidualDifference > 0 {
		differenceSeries, err := c.investing.Project(in.Investment, summary.ResidualDifference)
		if err != nil {
			return nil, fmt.Errorf("failed to project residual difference investments: %w", err)
		}
		difference := newPathInvestment(differenceSeries)
		summary.DifferenceInvestment = &difference
		summary.NetWorth.Rent = difference.Total
	}

	summary.PropertyValueAtLoanEnd = PropertyValueAfter(in.PropertyValue, in.Loan.TermYears)
	summary.NetWorth.Buy = base.Final() + summary.PropertyValueAtLoanEnd
	summary.NetWorth.Difference = summary.NetWorth.Buy - summary.NetWorth.Rent

	summary.Ratios = computeRatios(in, schedule.MonthlyPayment, summary.PropertyValueAtLoanEnd)
	summary.Years = yearRows(schedule, base, in.MonthlyRent)

	c.logger.Debug("scenario comparison computed",
		zap.String("op", "scenario.Compare"),
		zap.Float64("monthlyPayment", summary.MonthlyPayment),
		zap.Float64("topUp", summary.TopUp),
		zap.Float64("netWorthDifference", summary.NetWorth.Difference),
	)

	return summary, nil
}

func yearRows(schedule loans.Schedule, base finance.Series, monthlyRent float64) []YearRow {
	annual := schedule.AnnualTotals()
	investment := base.AlignTo(len(annual))

	rows := make([]YearRow, 0, len(annual))
	for i, total := range annual {
		rows = append(rows, YearRow{
			Year:                   total.Year,
			CumulativeMortgageCost: total.CumulativeCost,
			CumulativeInterest:     total.CumulativeInterest,
			CumulativePrincipal:    total.CumulativePrincipal,
			Investment:             investment[i],
			CumulativeRent:         monthlyRent * constants.MonthsPerYear * float64(total.Year),
		})
	}
	return rows
}

// percentOfSalary returns zero when the salary cannot carry a percentage.
func percentOfSalary(amount, salary float64) float64 {
	if salary <= 0 {
		return 0
	}
	return mathutil.CalculatePercentage(amount, salary)
}
