package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/immocalc/property-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PROPERTY SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Results
		fmt.Fprintf(&buf, "%s: IRR=%s TotalReturn=%s Investment=%s Years=%d\n",
			sc.Name,
			FormatPercentage(r.IRR),
			FormatPercentage(r.TotalReturn),
			FormatCurrency(r.TotalInvestment),
			len(r.YearlyResults),
		)
		fmt.Fprintf(&buf, "  Year1CashFlow=%s MonthlyPayment=%s FinalValue=%s Payback=%s\n",
			FormatCurrency(sc.KeyMetrics.CashFlowWithTax.Year1),
			FormatCurrency(r.MortgageIndicators.MonthlyPayment),
			FormatCurrency(r.FinalPropertyValue),
			paybackLabel(sc.BreakEven),
		)
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (IRR %s, +%s pts)\n", rec.ScenarioName, FormatPercentage(rec.IRR), rec.IRRAdvantage.StringFixed(2))
	}
	return buf.Bytes(), nil
}

// paybackLabel renders a payback point as "year 12, month 4"
func paybackLabel(be *domain.BreakEvenResult) string {
	if be == nil {
		return "not reached"
	}
	return fmt.Sprintf("year %d, month %d", be.YearIndex, be.BreakEvenMonth)
}
