package calculation

import (
	"testing"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateKeyMetrics(t *testing.T) {
	results := CalculateResults(createTestInputs())
	metrics := CalculateKeyMetrics(results)
	first := results.YearlyResults[0]

	cf1 := first.RentalIncome.Sub(first.InterestPayment).Sub(first.RepaymentAmount).Sub(first.OperatingExpenses)
	assert.True(t, cf1.Equal(metrics.CashFlow.Year1))
	assert.True(t, first.TaxBenefit.Equal(metrics.TaxEffect.Year1))
	assert.True(t, cf1.Add(first.TaxBenefit).Equal(metrics.CashFlowWithTax.Year1))
	assert.True(t, results.TotalTaxBenefits.Equal(metrics.TaxEffect.TotalTerm))

	sum10 := decimal.Zero
	for _, yr := range results.YearlyResults[:10] {
		sum10 = sum10.Add(yr.TaxBenefit)
	}
	assert.True(t, sum10.Equal(metrics.TaxEffect.Sum10Years))
	assert.True(t, sum10.Div(decimal.NewFromInt(10)).Equal(metrics.TaxEffect.Average10Year))

	expectedROE := metrics.CashFlowWithTax.Year1.Div(results.TotalInvestment).Mul(hundred)
	assert.True(t, expectedROE.Equal(metrics.ROE.Year1))
}

func TestCalculateKeyMetrics_ShortAndEmpty(t *testing.T) {
	inputs := createTestInputs()
	inputs.Loan.TermYears = 4
	metrics := CalculateKeyMetrics(CalculateResults(inputs))
	assert.True(t, metrics.CashFlow.Sum10Years.Equal(metrics.CashFlow.TotalTerm), "a 4-year term fits in the 10-year window")

	empty := CalculateKeyMetrics(domain.ResultsData{})
	assert.True(t, empty.CashFlow.Year1.IsZero())
	assert.True(t, empty.CashFlow.Average10Year.IsZero())
	assert.True(t, empty.ROE.TotalTerm.IsZero())
}
