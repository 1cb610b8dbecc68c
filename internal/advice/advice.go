// Package advice turns a scenario summary into ordered, rule-based advice.
package advice

import (
	"fmt"
	"math"

	"github.com/iwvelando/housing-advisor/internal/scenario"
	"github.com/iwvelando/housing-advisor/pkg/constants"
	"github.com/iwvelando/housing-advisor/pkg/format"
	"github.com/iwvelando/housing-advisor/pkg/mathutil"
)

// Code identifies an advice rule.
type Code string

// Advice codes in the order they are emitted.
const (
	CodeBuyingCheaper         Code = "buying-cheaper"
	CodeRentingCheaper        Code = "renting-cheaper"
	CodeCostDifferenceSmall   Code = "cost-difference-small"
	CodeCostDifferenceLarge   Code = "cost-difference-large"
	CodeMonthlyBudget         Code = "monthly-budget"
	CodeInvestmentGrowth      Code = "investment-growth"
	CodeExtraInvestment       Code = "extra-investment"
	CodePropertyValue         Code = "property-value"
	CodeNetWorthBuy           Code = "net-worth-buy"
	CodeNetWorthRent          Code = "net-worth-rent"
	CodeNetWorthEqual         Code = "net-worth-equal"
	CodeComfortableMortgage   Code = "comfortable-mortgage"
	CodeModerateMortgage      Code = "moderate-mortgage"
	CodeNearEqualCosts        Code = "near-equal-costs"
	CodeLongTermOwnership     Code = "long-term-ownership"
	CodeInvestmentOpportunity Code = "investment-opportunity"
	CodeRentContinuity        Code = "rent-continuity"
	CodeOwnershipSecurity     Code = "ownership-security"
)

// Advice is a single piece of advice.
type Advice struct {
	Code    Code   `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Generate evaluates every rule against the summary. Analysis entries come
// first, followed by recommendations. Ownership security is always included.
func Generate(summary *scenario.Summary) []Advice {
	if summary == nil {
		return nil
	}

	var out []Advice
	out = append(out, costComparison(summary)...)
	out = append(out, monthlyBudget(summary))
	out = append(out, investmentGrowth(summary))
	if a, ok := extraInvestment(summary); ok {
		out = append(out, a)
	}
	out = append(out, Advice{
		Code:    CodePropertyValue,
		Title:   "Property value at loan end",
		Message: fmt.Sprintf("The property is worth %s when the loan is repaid.", format.Currency(summary.PropertyValueAtLoanEnd)),
	})
	out = append(out, netWorth(summary))
	out = append(out, recommendations(summary)...)
	return out
}

func ownershipCosts(s *scenario.Summary) float64 {
	return s.Totals.OwnershipCosts()
}

// costsNearlyEqual reports whether total rent is within ten percent of the
// total ownership costs.
func costsNearlyEqual(s *scenario.Summary) bool {
	return mathutil.WithinRelativeTolerance(s.Totals.Rent, ownershipCosts(s), constants.NearEqualCostRatio)
}

// mortgageBudgetShare is the share of net salary spent on the mortgage,
// maintenance and investments. Ok is false without a positive salary.
func mortgageBudgetShare(s *scenario.Summary) (float64, bool) {
	if s.Inputs.NetSalary <= 0 {
		return 0, false
	}
	return mathutil.CalculatePercentage(s.Buy.Expenses, s.Inputs.NetSalary), true
}

func costComparison(s *scenario.Summary) []Advice {
	var out []Advice
	if ownershipCosts(s) < s.Totals.Rent {
		out = append(out, Advice{
			Code:    CodeBuyingCheaper,
			Title:   "Buying costs less than renting",
			Message: "Mortgage payments and maintenance fees over the loan term are lower than the rent paid in the same time. Buying can be financially better in the long run.",
		})
	} else {
		out = append(out, Advice{
			Code:    CodeRentingCheaper,
			Title:   "Renting costs less than buying",
			Message: "Rent paid over the loan term is lower than mortgage payments and maintenance fees. Renting may be cheaper during this period.",
		})
	}

	totals := fmt.Sprintf("Total rent over the loan term is %s while mortgage payments and maintenance fees total %s.",
		format.Currency(s.Totals.Rent), format.Currency(ownershipCosts(s)))
	if costsNearlyEqual(s) {
		out = append(out, Advice{
			Code:    CodeCostDifferenceSmall,
			Title:   "Small cost difference",
			Message: totals + " The difference is small, so taking a mortgage and buying can be sensible.",
		})
	} else {
		out = append(out, Advice{
			Code:    CodeCostDifferenceLarge,
			Title:   "Significant cost difference",
			Message: totals + " The difference is significant, so consider the mortgage carefully.",
		})
	}
	return out
}

func monthlyBudget(s *scenario.Summary) Advice {
	msg := fmt.Sprintf("Buying costs %s a month in loan, maintenance and investments. Renting costs %s a month in rent and investments.",
		format.Currency(s.Buy.Expenses), format.Currency(s.Rent.Expenses))
	if share, ok := mortgageBudgetShare(s); ok {
		rentShare := mathutil.CalculatePercentage(s.Rent.Expenses, s.Inputs.NetSalary)
		msg = fmt.Sprintf("Buying costs %s a month in loan, maintenance and investments, %s of your net salary. Renting costs %s a month in rent and investments, %s of your net salary.",
			format.Currency(s.Buy.Expenses), format.Percent(share),
			format.Currency(s.Rent.Expenses), format.Percent(rentShare))
	}
	return Advice{Code: CodeMonthlyBudget, Title: "Monthly budget", Message: msg}
}

func investmentGrowth(s *scenario.Summary) Advice {
	in := s.Inputs.Investment
	return Advice{
		Code:  CodeInvestmentGrowth,
		Title: "Investment growth",
		Message: fmt.Sprintf("Your investments reach %s during the active period of %d years and grow by %s during the passive period of %d years, for a total of %s.",
			format.Currency(s.BuyInvestment.Active), in.ActiveYears,
			format.Currency(s.BuyInvestment.Passive), s.PassiveYears,
			format.Currency(s.BuyInvestment.Total)),
	}
}

func extraInvestment(s *scenario.Summary) (Advice, bool) {
	if s.DifferenceInvestment == nil {
		return Advice{}, false
	}
	base := s.BuyInvestment.Total
	extra := s.DifferenceInvestment.Total
	msg := fmt.Sprintf("Renting leaves %s more to invest every month until retirement. With it your investments reach %s",
		format.Currency(s.ResidualDifference), format.Currency(extra))
	if base > 0 {
		increase := (extra - base) / base * constants.PercentageMultiplier
		msg += fmt.Sprintf(", %s more than without it.", format.Percent(increase))
	} else {
		msg += "."
	}
	return Advice{Code: CodeExtraInvestment, Title: "Extra investment when renting", Message: msg}, true
}

func netWorth(s *scenario.Summary) Advice {
	diff := format.Currency(math.Abs(s.NetWorth.Difference))
	switch {
	case s.NetWorth.Buy > s.NetWorth.Rent:
		return Advice{
			Code:    CodeNetWorthBuy,
			Title:   "Net worth favours buying",
			Message: fmt.Sprintf("Your net worth at retirement is higher when buying and investing than when renting and investing. The difference is %s.", diff),
		}
	case s.NetWorth.Buy < s.NetWorth.Rent:
		return Advice{
			Code:    CodeNetWorthRent,
			Title:   "Net worth favours renting",
			Message: fmt.Sprintf("Your net worth at retirement is higher when renting and investing than when buying and investing. The difference is %s.", diff),
		}
	default:
		return Advice{
			Code:    CodeNetWorthEqual,
			Title:   "Equal net worth",
			Message: "Your net worth at retirement is the same whether you buy or rent.",
		}
	}
}

func recommendations(s *scenario.Summary) []Advice {
	var out []Advice

	if share, ok := mortgageBudgetShare(s); ok {
		switch {
		case share < constants.ComfortableIncomeShare:
			out = append(out, Advice{
				Code:    CodeComfortableMortgage,
				Title:   "Good position to take a mortgage",
				Message: fmt.Sprintf("Housing and investments take %s of your net salary, under 30 %%. Your income covers the loan, maintenance and other costs with room left for investing, and you own the home once the loan is repaid.", format.Percent(share)),
			})
		case share < constants.ModerateIncomeShare:
			out = append(out, Advice{
				Code:    CodeModerateMortgage,
				Title:   "Moderate position to take a mortgage",
				Message: fmt.Sprintf("Housing and investments take %s of your net salary, between 30 and 40 %%. This is acceptable but leaves less for investing, so avoid overcommitting.", format.Percent(share)),
			})
		}
	}

	if costsNearlyEqual(s) {
		out = append(out, Advice{
			Code:    CodeNearEqualCosts,
			Title:   "Rent and ownership costs are close",
			Message: "Rent and ownership costs are close, which makes buying attractive since an owned home builds long-term wealth.",
		})
	}

	if s.Inputs.Loan.TermYears > constants.LongTermLoanYears {
		out = append(out, Advice{
			Code:    CodeLongTermOwnership,
			Title:   "Long-term ownership",
			Message: "Once the loan is repaid you own the home without monthly loan costs, which can substantially lower your expenses in retirement.",
		})
	}

	if s.DifferenceInvestment != nil && s.DifferenceInvestment.Total > s.BuyInvestment.Total {
		out = append(out, Advice{
			Code:    CodeInvestmentOpportunity,
			Title:   "Investment opportunity",
			Message: "Investing the monthly difference grows your investments significantly and improves your net worth at retirement.",
		})
	}

	if s.NetWorth.Buy > s.NetWorth.Rent {
		out = append(out, Advice{
			Code:    CodeRentContinuity,
			Title:   "Renting for life",
			Message: "If you keep renting, rent costs continue for life, while an owner only pays maintenance after the loan term.",
		})
	}

	out = append(out, Advice{
		Code:    CodeOwnershipSecurity,
		Title:   "Financial stability and security of ownership",
		Message: "An owned home gives financial stability since it does not depend on a landlord's decisions such as rent increases or selling the home.",
	})
	return out
}
