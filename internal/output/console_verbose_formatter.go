package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED PROPERTY INVESTMENT ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, scenario := range results.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, scenario.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeScenarioDetail(&buf, &scenario)
		fmt.Fprintln(&buf)
	}

	if len(results.Scenarios) > 1 {
		writeRanking(&buf, results)
	}

	// Recommendation section using existing AnalyzeScenarios logic
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best scenario: %s\n", rec.ScenarioName)
		fmt.Fprintf(&buf, "IRR: %s (advantage %s pts)\n", FormatPercentage(rec.IRR), rec.IRRAdvantage.StringFixed(2))
		fmt.Fprintf(&buf, "Total return: %s\n", FormatPercentage(rec.TotalReturn))
		for _, k := range rec.KeyConsiderations {
			fmt.Fprintf(&buf, "• %s\n", k)
		}
	}

	return buf.Bytes(), nil
}

func writeScenarioDetail(buf *bytes.Buffer, sc *domain.ScenarioSummary) {
	in := sc.Inputs
	r := sc.Results

	fmt.Fprintln(buf, "PURCHASE:")
	fmt.Fprintf(buf, "  Purchase Price:          %s\n", FormatCurrency(in.PurchasePrice))
	fmt.Fprintf(buf, "  Purchase Costs:          %s (%s)\n", FormatCurrency(r.TotalPurchaseCosts), FormatPercentage(in.PurchaseCostRate()))
	fmt.Fprintf(buf, "  Initial Investment:      %s\n", FormatCurrency(r.TotalInvestment))
	fmt.Fprintln(buf)

	m := r.MortgageIndicators
	fmt.Fprintln(buf, "FINANCING:")
	fmt.Fprintf(buf, "  Total Loan Amount:       %s\n", FormatCurrency(m.TotalLoanAmount))
	fmt.Fprintf(buf, "  Monthly Payment:         %s\n", FormatCurrency(m.MonthlyPayment))
	fmt.Fprintf(buf, "  Interest (10 years):     %s\n", FormatCurrency(m.InterestPaid10Years))
	fmt.Fprintf(buf, "  Total Interest Paid:     %s\n", FormatCurrency(m.TotalInterestPaid))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "RETURNS:")
	fmt.Fprintf(buf, "  IRR:                     %s\n", FormatPercentage(r.IRR))
	fmt.Fprintf(buf, "  Total Return:            %s\n", FormatPercentage(r.TotalReturn))
	fmt.Fprintf(buf, "  Cumulative Cash Flow:    %s\n", FormatCurrency(r.TotalCashFlow))
	fmt.Fprintf(buf, "  Total Tax Benefits:      %s\n", FormatCurrency(r.TotalTaxBenefits))
	fmt.Fprintf(buf, "  Final Property Value:    %s\n", FormatCurrency(r.FinalPropertyValue))
	fmt.Fprintf(buf, "  Payback:                 %s\n", paybackLabel(sc.BreakEven))
	fmt.Fprintln(buf)

	k := sc.KeyMetrics
	fmt.Fprintln(buf, "KEY METRICS:")
	fmt.Fprintf(buf, "%-24s %15s %15s %15s %15s\n", "METRIC", "YEAR 1", "10Y SUM", "10Y AVERAGE", "TOTAL TERM")
	fmt.Fprintln(buf, strings.Repeat("-", 88))
	metricLine(buf, "Cash Flow", k.CashFlow, FormatCurrency)
	metricLine(buf, "Tax Effect", k.TaxEffect, FormatCurrency)
	metricLine(buf, "Cash Flow incl. Tax", k.CashFlowWithTax, FormatCurrency)
	metricLine(buf, "Return on Equity", k.ROE, FormatPercentage)
	fmt.Fprintln(buf)

	if len(r.ReturnOnEquity) > 0 {
		fmt.Fprintln(buf, "RETURN ON EQUITY:")
		fmt.Fprintf(buf, "%6s %10s %16s %16s %16s\n", "YEAR", "ROE", "EQUITY", "TOTAL RETURN", "APPRECIATION")
		for _, roe := range r.ReturnOnEquity {
			fmt.Fprintf(buf, "%6d %10s %16s %16s %16s\n", roe.Year, FormatPercentage(roe.ROE),
				FormatCurrencyWhole(roe.Equity), FormatCurrencyWhole(roe.TotalReturn), FormatCurrencyWhole(roe.PropertyAppreciation))
		}
		fmt.Fprintln(buf)
	}

	if len(r.YearlyResults) > 0 {
		fmt.Fprintln(buf, "YEARLY PROJECTION:")
		fmt.Fprintf(buf, "%4s %12s %12s %12s %12s %12s %12s %14s %14s %14s\n",
			"YEAR", "RENT", "EXPENSES", "INTEREST", "PRINCIPAL", "TAX", "CASH FLOW", "CUMULATIVE", "REMAINING", "EQUITY")
		for _, yr := range r.YearlyResults {
			fmt.Fprintf(buf, "%4d %12s %12s %12s %12s %12s %12s %14s %14s %14s\n",
				yr.Year,
				FormatCurrencyWhole(yr.RentalIncome),
				FormatCurrencyWhole(yr.OperatingExpenses),
				FormatCurrencyWhole(yr.InterestPayment),
				FormatCurrencyWhole(yr.RepaymentAmount),
				FormatCurrencyWhole(yr.TaxBenefit),
				FormatCurrencyWhole(yr.CashFlow),
				FormatCurrencyWhole(yr.CumulativeCashFlow),
				FormatCurrencyWhole(yr.RemainingLoan),
				FormatCurrencyWhole(yr.Equity),
			)
		}
	}
}

func metricLine(buf *bytes.Buffer, label string, m domain.MetricData, format func(decimal.Decimal) string) {
	fmt.Fprintf(buf, "%-24s %15s %15s %15s %15s\n", label, format(m.Year1), format(m.Sum10Years), format(m.Average10Year), format(m.TotalTerm))
}

func writeRanking(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	fmt.Fprintln(buf, "SCENARIO RANKING (by IRR)")
	fmt.Fprintln(buf, strings.Repeat("-", 60))
	for _, r := range RankScenarios(results) {
		fmt.Fprintf(buf, "%2d. %-30s %10s %10s\n", r.Rank, r.Name, FormatPercentage(r.IRR), "-"+r.GapToBest.StringFixed(2))
	}
	fmt.Fprintln(buf)
}
