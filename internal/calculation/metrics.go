package calculation

import (
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateKeyMetrics derives the detailed metric breakdown from a projection:
// cash flow before tax (actual debt service), tax effect, cash flow after tax and
// the after-tax return on the initial investment.
func CalculateKeyMetrics(results domain.ResultsData) domain.KeyMetrics {
	yearly := results.YearlyResults
	window := len(yearly)
	if window > interestWindowYears {
		window = interestWindowYears
	}

	var cf1, tax1 decimal.Decimal
	if len(yearly) > 0 {
		cf1 = yearly[0].CashFlowBeforeTax()
		tax1 = yearly[0].TaxBenefit
	}

	cf10, tax10 := decimal.Zero, decimal.Zero
	cfAll := decimal.Zero
	for i := range yearly {
		cf := yearly[i].CashFlowBeforeTax()
		if i < window {
			cf10 = cf10.Add(cf)
			tax10 = tax10.Add(yearly[i].TaxBenefit)
		}
		cfAll = cfAll.Add(cf)
	}
	taxAll := results.TotalTaxBenefits

	cashFlow := domain.MetricData{Year1: cf1, Sum10Years: cf10, Average10Year: average(cf10, window), TotalTerm: cfAll}
	taxEffect := domain.MetricData{Year1: tax1, Sum10Years: tax10, Average10Year: average(tax10, window), TotalTerm: taxAll}
	withTax := domain.MetricData{
		Year1:         cf1.Add(tax1),
		Sum10Years:    cf10.Add(tax10),
		Average10Year: average(cf10.Add(tax10), window),
		TotalTerm:     cfAll.Add(taxAll),
	}

	roe := domain.MetricData{}
	if investment := results.TotalInvestment; investment.IsPositive() {
		roe.Year1 = withTax.Year1.Div(investment).Mul(hundred)
		roe.Sum10Years = withTax.Sum10Years.Div(investment).Mul(hundred)
		roe.Average10Year = average(roe.Sum10Years, window)
		roe.TotalTerm = withTax.TotalTerm.Div(investment).Mul(hundred)
	}

	return domain.KeyMetrics{
		CashFlow:        cashFlow,
		TaxEffect:       taxEffect,
		CashFlowWithTax: withTax,
		ROE:             roe,
	}
}

func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}
