package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/immocalc/property-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Years", "PurchasePrice", "PurchaseCosts", "InitialInvestment", "TotalLoanAmount", "MonthlyPayment", "IRR", "TotalReturn", "TotalCashFlow", "TotalTaxBenefits", "TotalInterestPaid", "InterestPaid10Years", "FinalPropertyValue", "PaybackYear", "PaybackMonth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Results
		paybackYear, paybackMonth := "", ""
		if sc.BreakEven != nil {
			paybackYear = intToString(sc.BreakEven.YearIndex)
			paybackMonth = intToString(sc.BreakEven.BreakEvenMonth)
		}
		row := []string{
			sc.Name,
			intToString(len(r.YearlyResults)),
			sc.Inputs.PurchasePrice.StringFixed(2),
			r.TotalPurchaseCosts.StringFixed(2),
			r.TotalInvestment.StringFixed(2),
			r.MortgageIndicators.TotalLoanAmount.StringFixed(2),
			r.MortgageIndicators.MonthlyPayment.StringFixed(2),
			r.IRR.StringFixed(4),
			r.TotalReturn.StringFixed(4),
			r.TotalCashFlow.StringFixed(2),
			r.TotalTaxBenefits.StringFixed(2),
			r.TotalInterestPaid.StringFixed(2),
			r.MortgageIndicators.InterestPaid10Years.StringFixed(2),
			r.FinalPropertyValue.StringFixed(2),
			paybackYear,
			paybackMonth,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
