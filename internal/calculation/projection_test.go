package calculation

import (
	"testing"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestInputs returns a 300k Berlin apartment financed with a single 240k loan
func createTestInputs() domain.PropertyInputs {
	return domain.PropertyInputs{
		PurchasePrice:               d(300000),
		Area:                        d(80),
		Region:                      "Berlin",
		TransferTaxRate:             d(6.0),
		NotaryRate:                  d(1.5),
		CourtRate:                   d(0.5),
		BrokerRate:                  d(3.57),
		ColdRent:                    d(1200),
		ParkingRent:                 d(50),
		AncillaryRedistributable:    d(150),
		AncillaryNonRedistributable: d(50),
		ManagementFee:               d(50),
		AdditionalExpenses:          d(200),
		Loan: domain.LoanTerms{
			Amount:        d(240000),
			InterestRate:  d(3.5),
			RepaymentRate: d(2.0),
			TermYears:     30,
		},
		SubsidizedLoan: domain.SubsidizedLoan{
			LoanTerms: domain.LoanTerms{Amount: d(50000), InterestRate: d(1.5), RepaymentRate: d(2.0), TermYears: 20},
		},
		DepreciationType:   "neubau-afa-lin",
		DepreciationRate:   d(2.0),
		MarginalTaxRate:    d(42),
		RentGrowthRate:     d(2.0),
		PropertyGrowthRate: d(2.5),
	}
}

func TestRentalIncome(t *testing.T) {
	inputs := createTestInputs()

	// (1200 + 150) * 12 + 50 * 12
	assert.InDelta(t, 16800.0, RentalIncome(inputs, 1).InexactFloat64(), 1e-9)
	// growing part compounds, parking stays flat
	assert.InDelta(t, 16200.0*1.02+600.0, RentalIncome(inputs, 2).InexactFloat64(), 1e-6)
	assert.InDelta(t, 16200.0*1.02*1.02*1.02+600.0, RentalIncome(inputs, 4).InexactFloat64(), 1e-6)
}

func TestPropertyValueAndExpenses(t *testing.T) {
	inputs := createTestInputs()

	assert.True(t, inputs.PurchasePrice.Equal(PropertyValue(inputs, 1)))
	assert.InDelta(t, 300000.0*1.025, PropertyValue(inputs, 2).InexactFloat64(), 1e-6)
	assert.True(t, d(3600).Equal(OperatingExpenses(inputs)))
}

func TestDepreciation_SpecialWindow(t *testing.T) {
	inputs := createTestInputs()
	inputs.SpecialDepreciationRate = d(5.0)
	inputs.SpecialDepreciationYears = 4

	for year := 1; year <= 6; year++ {
		flat, special := Depreciation(inputs, year)
		assert.True(t, d(6000).Equal(flat), "year %d flat %s", year, flat)
		if year <= 4 {
			assert.True(t, d(15000).Equal(special), "year %d special %s", year, special)
		} else {
			assert.True(t, special.IsZero(), "year %d special %s", year, special)
		}
	}
}

func TestGenerateYearlyResults_ReferenceScenario(t *testing.T) {
	inputs := createTestInputs()
	results := CalculateResults(inputs)

	require.Len(t, results.YearlyResults, 30)
	first := results.YearlyResults[0]

	assert.Equal(t, 1, first.Year)
	assert.True(t, first.InterestPayment.LessThan(d(8400)))
	assert.True(t, first.InterestPayment.GreaterThan(d(8000)))
	assert.True(t, first.RemainingLoan.LessThan(d(240000)))
	assert.True(t, first.RemainingLoan.GreaterThan(d(230000)))
	assert.True(t, d(1100).Equal(first.MonthlyPayment))
}

func TestGenerateYearlyResults_YearOneBreakdown(t *testing.T) {
	inputs := createTestInputs()
	results := CalculateResults(inputs)
	first := results.YearlyResults[0]

	interest := first.InterestPayment.InexactFloat64()
	tax := (6000.0 + 3600.0 + interest) * 0.42

	assert.InDelta(t, 16800.0, first.RentalIncome.InexactFloat64(), 1e-9)
	assert.InDelta(t, 3600.0, first.OperatingExpenses.InexactFloat64(), 1e-9)
	assert.InDelta(t, 13200.0, first.NetIncomeBeforeDebt.InexactFloat64(), 1e-9)
	assert.InDelta(t, 6000.0, first.Amortization.InexactFloat64(), 1e-9)
	assert.True(t, first.CurrentSpecialAmortization.IsZero())
	assert.InDelta(t, tax, first.TaxBenefit.InexactFloat64(), 1e-6)
	assert.InDelta(t, 16800.0-13200.0-3600.0+tax, first.CashFlow.InexactFloat64(), 1e-6)
	assert.InDelta(t, -94710.0+first.CashFlow.InexactFloat64(), first.CumulativeCashFlow.InexactFloat64(), 1e-6)
	assert.InDelta(t, 13200.0-interest-6000.0, first.TaxableIncome.InexactFloat64(), 1e-6)
	assert.InDelta(t, (13200.0-interest-6000.0)*0.42, first.TaxOnRentalIncome.InexactFloat64(), 1e-6)
	assert.True(t, first.Equity.Equal(first.PropertyValue.Sub(first.RemainingLoan)))
	assert.InDelta(t, first.Equity.InexactFloat64()/94710.0*100, first.ROI.InexactFloat64(), 1e-6)
}

func TestGenerateYearlyResults_Invariants(t *testing.T) {
	inputs := createTestInputs()
	inputs.SubsidizedLoan.Enabled = true
	results := CalculateResults(inputs)

	cumulative := inputs.InitialInvestment().Neg()
	prevRemaining := inputs.TotalBorrowed()
	for i, yr := range results.YearlyResults {
		assert.Equal(t, i+1, yr.Year, "years must be contiguous")
		cumulative = cumulative.Add(yr.CashFlow)
		assert.True(t, cumulative.Equal(yr.CumulativeCashFlow), "year %d cumulative mismatch", yr.Year)
		assert.True(t, yr.RemainingLoan.LessThanOrEqual(prevRemaining), "year %d remaining increased", yr.Year)
		assert.False(t, yr.RemainingLoan.IsNegative())
		prevRemaining = yr.RemainingLoan
	}
}

func TestGenerateYearlyResults_NoSpecialDepreciation(t *testing.T) {
	inputs := createTestInputs()
	inputs.SpecialDepreciationRate = d(5.0)
	inputs.SpecialDepreciationYears = 0

	for _, yr := range CalculateResults(inputs).YearlyResults {
		assert.True(t, yr.CurrentSpecialAmortization.IsZero(), "year %d", yr.Year)
	}
}

func TestGenerateYearlyResults_SubsidizedTermLonger(t *testing.T) {
	inputs := createTestInputs()
	inputs.Loan.TermYears = 10
	inputs.SubsidizedLoan.Enabled = true
	inputs.SubsidizedLoan.TermYears = 25

	primary, subsidized := BuildSchedules(inputs)
	yearly := GenerateYearlyResults(inputs, primary, subsidized)
	require.Len(t, yearly, 25)

	for _, yr := range yearly[10:] {
		primaryInterest, primaryPrincipal := primary.YearTotals(yr.Year)
		assert.True(t, primaryInterest.IsZero(), "year %d", yr.Year)
		assert.True(t, primaryPrincipal.IsZero(), "year %d", yr.Year)

		kfwInterest, kfwPrincipal := subsidized.YearTotals(yr.Year)
		assert.True(t, kfwInterest.Equal(yr.InterestPayment), "year %d interest should come from the subsidized tranche only", yr.Year)
		assert.True(t, kfwPrincipal.Equal(yr.RepaymentAmount), "year %d", yr.Year)
		assert.True(t, subsidized.MonthlyPayment.Equal(yr.MonthlyPayment), "year %d", yr.Year)
	}
	// The primary balance left at year 10 drops out of the remaining loan afterwards
	assert.True(t, yearly[10].RemainingLoan.Equal(subsidized.BalanceAfter(11*12)))
}

func TestGenerateYearlyResults_DisabledSubsidizedLoanIgnored(t *testing.T) {
	inputs := createTestInputs()
	inputs.SubsidizedLoan.TermYears = 40

	results := CalculateResults(inputs)
	assert.Len(t, results.YearlyResults, 30)
	assert.True(t, d(1100).Equal(results.MortgageIndicators.MonthlyPayment))
}

func TestGenerateYearlyResults_ZeroTerm(t *testing.T) {
	inputs := createTestInputs()
	inputs.Loan.TermYears = 0

	results := CalculateResults(inputs)
	assert.Empty(t, results.YearlyResults)
	assert.True(t, inputs.PurchasePrice.Equal(results.FinalPropertyValue))
	assert.True(t, results.IRR.IsZero())
	assert.True(t, results.TotalInterestPaid.IsZero())
}

func TestGenerateYearlyResults_NonPositiveInvestment(t *testing.T) {
	inputs := createTestInputs()
	// financing covers price and purchase costs
	inputs.Loan.Amount = d(400000)

	results := CalculateResults(inputs)
	require.NotEmpty(t, results.YearlyResults)
	for _, yr := range results.YearlyResults {
		assert.True(t, yr.ROI.IsZero(), "year %d", yr.Year)
	}
	for _, roe := range results.ReturnOnEquity {
		assert.True(t, roe.ROE.IsZero(), "horizon %d", roe.Year)
	}
	assert.True(t, results.TotalReturn.IsZero())
}

func TestGrowthFactor(t *testing.T) {
	assert.True(t, decimal.NewFromInt(1).Equal(growthFactor(d(2), 0)))
	assert.True(t, decimal.NewFromInt(1).Equal(growthFactor(d(2), -1)))
	assert.True(t, d(1.0404).Equal(growthFactor(d(2), 2)))
	assert.True(t, decimal.NewFromInt(1).Equal(growthFactor(decimal.Zero, 25)))
}
