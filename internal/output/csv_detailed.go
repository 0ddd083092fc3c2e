package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/immocalc/property-calculator/internal/domain"
)

// CSVDetailedExporter provides raw annual projection detail per scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "MonthlyPayment", "RemainingLoan", "InterestPayment", "RepaymentAmount", "RentalIncome", "OperatingExpenses", "NetIncomeBeforeDebt", "Amortization", "SpecialAmortization", "TaxBenefit", "TaxableIncome", "TaxOnRentalIncome", "CashFlow", "CumulativeCashFlow", "PropertyValue", "Equity", "ROI", "DebtFree"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		for _, yr := range sc.Results.YearlyResults {
			row := []string{
				sc.Name,
				intToString(yr.Year),
				yr.MonthlyPayment.StringFixed(2),
				yr.RemainingLoan.StringFixed(2),
				yr.InterestPayment.StringFixed(2),
				yr.RepaymentAmount.StringFixed(2),
				yr.RentalIncome.StringFixed(2),
				yr.OperatingExpenses.StringFixed(2),
				yr.NetIncomeBeforeDebt.StringFixed(2),
				yr.Amortization.StringFixed(2),
				yr.CurrentSpecialAmortization.StringFixed(2),
				yr.TaxBenefit.StringFixed(2),
				yr.TaxableIncome.StringFixed(2),
				yr.TaxOnRentalIncome.StringFixed(2),
				yr.CashFlow.StringFixed(2),
				yr.CumulativeCashFlow.StringFixed(2),
				yr.PropertyValue.StringFixed(2),
				yr.Equity.StringFixed(2),
				yr.ROI.StringFixed(4),
				boolToString(yr.IsDebtFree()),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
