// Package report renders projection summaries and CT outcomes for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/housing-advisor/internal/advice"
	"github.com/iwvelando/housing-advisor/internal/ctdecision"
	"github.com/iwvelando/housing-advisor/internal/scenario"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Pretty writes a human-readable rather than machine-readable report.
func Pretty(w io.Writer, s *scenario.Summary, tips []advice.Advice) error {
	if s == nil {
		return fmt.Errorf("no summary to report")
	}
	p := message.NewPrinter(language.English)
	b := &strings.Builder{}
	in := s.Inputs

	fmt.Fprintf(b, "--- Mortgage ---\n")
	_, _ = p.Fprintf(b, "Loan amount             | €%.2f\n", in.Loan.Principal)
	_, _ = p.Fprintf(b, "Interest rate           | %.2f %%\n", in.Loan.AnnualRatePercent)
	_, _ = p.Fprintf(b, "Loan term               | %d years\n", in.Loan.TermYears)
	_, _ = p.Fprintf(b, "Monthly payment         | €%.2f\n", s.MonthlyPayment)
	_, _ = p.Fprintf(b, "Total interest          | €%.2f\n", s.Totals.Interest)
	_, _ = p.Fprintf(b, "Total principal         | €%.2f\n", s.Totals.Principal)
	_, _ = p.Fprintf(b, "Total mortgage payments | €%.2f\n", s.Totals.MortgagePayments)
	_, _ = p.Fprintf(b, "Total maintenance fees  | €%.2f\n", s.Totals.Maintenance)
	_, _ = p.Fprintf(b, "Total rent              | €%.2f\n", s.Totals.Rent)
	_, _ = p.Fprintf(b, "Average ownership cost  | €%.2f / month\n\n", s.AverageMonthlyOwnershipCost)

	fmt.Fprintf(b, "--- Salary allocation when buying ---\n")
	buy := s.Buy
	writeShare(p, b, "Principal", buy.Principal)
	writeShare(p, b, "Interest", buy.Interest)
	writeShare(p, b, "Maintenance fee", buy.MaintenanceFee)
	writeShare(p, b, "Housing total", buy.Housing)
	writeShare(p, b, "Investment", buy.Investment)
	writeShare(p, b, "Left over", buy.Residual)
	fmt.Fprintln(b)

	fmt.Fprintf(b, "--- Salary allocation when renting ---\n")
	rent := s.Rent
	writeShare(p, b, "Rent", rent.Rent)
	writeShare(p, b, "Investment", rent.Investment)
	if rent.TopUp != nil {
		writeShare(p, b, "Extra investment", *rent.TopUp)
		writeShare(p, b, "Investment total", *rent.InvestmentTotal)
	}
	writeShare(p, b, "Left over", rent.Residual)
	fmt.Fprintln(b)

	fmt.Fprintf(b, "--- Investments ---\n")
	_, _ = p.Fprintf(b, "Active period           | %d years\n", in.Investment.ActiveYears)
	_, _ = p.Fprintf(b, "Passive period          | %d years\n", s.PassiveYears)
	writePath(p, b, "Buying", s.BuyInvestment)
	writePath(p, b, "Renting", s.RentInvestment)
	if s.DifferenceInvestment != nil {
		writePath(p, b, "Renting, difference", *s.DifferenceInvestment)
	}
	fmt.Fprintln(b)

	fmt.Fprintf(b, "--- Net worth ---\n")
	_, _ = p.Fprintf(b, "Property at loan end    | €%.2f\n", s.PropertyValueAtLoanEnd)
	_, _ = p.Fprintf(b, "Buying                  | €%.2f\n", s.NetWorth.Buy)
	_, _ = p.Fprintf(b, "Renting                 | €%.2f\n", s.NetWorth.Rent)
	_, _ = p.Fprintf(b, "Difference              | €%.2f\n\n", s.NetWorth.Difference)

	fmt.Fprintf(b, "--- Lending ratios ---\n")
	writeRatio(p, b, "Debt-to-income", s.Ratios.DebtToIncome, "%.2f %%")
	writeRatio(p, b, "Loan-to-value", s.Ratios.LoanToValue, "%.2f %%")
	writeRatio(p, b, "Housing cost share", s.Ratios.HousingCostShare, "%.2f %%")
	writeRatio(p, b, "Affordability index", s.Ratios.AffordabilityIndex, "%.2f")
	fmt.Fprintln(b)

	fmt.Fprintf(b, "--- Yearly comparison ---\n")
	fmt.Fprintf(b, "Year | Mortgage cost | Interest | Principal | Investments | Rent\n")
	fmt.Fprintf(b, "____ | _____________ | ________ | _________ | ___________ | ____\n")
	for _, row := range s.Years {
		_, _ = p.Fprintf(b, "%4d | €%.2f | €%.2f | €%.2f | €%.2f | €%.2f\n",
			row.Year, row.CumulativeMortgageCost, row.CumulativeInterest,
			row.CumulativePrincipal, row.Investment, row.CumulativeRent)
	}

	if len(s.Warnings) > 0 {
		fmt.Fprintf(b, "\n--- Warnings ---\n")
		for _, warning := range s.Warnings {
			fmt.Fprintf(b, "- %s\n", warning)
		}
	}

	if len(tips) > 0 {
		fmt.Fprintf(b, "\n--- Advice ---\n")
		for _, tip := range tips {
			fmt.Fprintf(b, "* %s\n  %s\n", tip.Title, tip.Message)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeShare(p *message.Printer, b *strings.Builder, label string, share scenario.Share) {
	_, _ = p.Fprintf(b, "%-23s | €%.2f | %.2f %%\n", label, share.Amount, share.Percent)
}

func writePath(p *message.Printer, b *strings.Builder, label string, path scenario.PathInvestment) {
	_, _ = p.Fprintf(b, "%-23s | €%.2f / month | active €%.2f | passive growth €%.2f | total €%.2f\n",
		label, path.MonthlyContribution, path.Active, path.Passive, path.Total)
}

func writeRatio(p *message.Printer, b *strings.Builder, label string, value *float64, layout string) {
	if value == nil {
		_, _ = p.Fprintf(b, "%-23s | n/a\n", label)
		return
	}
	_, _ = p.Fprintf(b, "%-23s | "+layout+"\n", label, *value)
}

// CSV writes the yearly comparison in comma-separated value format.
func CSV(w io.Writer, s *scenario.Summary) error {
	if s == nil {
		return fmt.Errorf("no summary to report")
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, `"year","cumulative mortgage cost","cumulative interest","cumulative principal","investments","cumulative rent"`)
	fmt.Fprintf(b, "\n")
	for _, row := range s.Years {
		fmt.Fprintf(b, `"%d","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			row.Year, row.CumulativeMortgageCost, row.CumulativeInterest,
			row.CumulativePrincipal, row.Investment, row.CumulativeRent)
		fmt.Fprintf(b, "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CTResult writes the walked path and the recommendation, or the next
// question when more answers are needed.
func CTResult(w io.Writer, tree *ctdecision.Tree, result ctdecision.Result) error {
	b := &strings.Builder{}
	for _, visit := range result.Path {
		q, err := tree.Question(visit.Node)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%2d. %s: %s\n", q.ID, q.Prompt, visit.Answer)
	}

	if result.Done() {
		fmt.Fprintf(b, "\nRecommendation [%s]: %s\n", result.Outcome.Color(), result.Outcome.Recommendation())
	} else {
		q, err := tree.Question(result.Next)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\nNext question %d: %s\n", q.ID, q.Prompt)
		if q.Help != "" {
			fmt.Fprintf(b, "    %s\n", q.Help)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
