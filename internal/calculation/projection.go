package calculation

import (
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// growthPrecision bounds compounded growth factors
const growthPrecision = 16

// growthFactor returns (1 + ratePct/100)^periods
func growthFactor(ratePct decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.NewFromInt(1)
	}
	base := decimal.NewFromInt(1).Add(ratePct.Div(hundred))
	factor := decimal.NewFromInt(1)
	for i := 0; i < periods; i++ {
		factor = factor.Mul(base).Round(growthPrecision)
	}
	return factor
}

// RentalIncome returns the annual rent of year (1-based). Cold rent and redistributable
// ancillary costs grow with the rent growth rate; parking rent stays flat.
func RentalIncome(inputs domain.PropertyInputs, year int) decimal.Decimal {
	growing := inputs.ColdRent.Add(inputs.AncillaryRedistributable).Mul(twelve)
	flat := inputs.ParkingRent.Mul(twelve)
	return growing.Mul(growthFactor(inputs.RentGrowthRate, year-1)).Add(flat)
}

// PropertyValue returns the market value in year (1-based)
func PropertyValue(inputs domain.PropertyInputs, year int) decimal.Decimal {
	return inputs.PurchasePrice.Mul(growthFactor(inputs.PropertyGrowthRate, year-1))
}

// OperatingExpenses returns the annual non-recoverable running costs, not indexed
func OperatingExpenses(inputs domain.PropertyInputs) decimal.Decimal {
	return inputs.AncillaryNonRedistributable.Add(inputs.ManagementFee).Add(inputs.AdditionalExpenses).Mul(twelve)
}

// Depreciation returns the flat and special depreciation for year (1-based)
func Depreciation(inputs domain.PropertyInputs, year int) (flat, special decimal.Decimal) {
	flat = inputs.PurchasePrice.Mul(inputs.DepreciationRate).Div(hundred)
	special = decimal.Zero
	if year <= inputs.SpecialDepreciationYears {
		special = inputs.PurchasePrice.Mul(inputs.SpecialDepreciationRate).Div(hundred)
	}
	return flat, special
}

// GenerateYearlyResults builds the year-by-year projection from 1 to the longer loan term
func GenerateYearlyResults(inputs domain.PropertyInputs, primary, subsidized *AmortizationSchedule) []domain.YearlyResult {
	years := inputs.ProjectionYears()
	results := make([]domain.YearlyResult, 0, years)

	investment := inputs.InitialInvestment()
	cumulative := investment.Neg()
	opex := OperatingExpenses(inputs)

	for year := 1; year <= years; year++ {
		rent := RentalIncome(inputs, year)

		// Debt service
		primaryInterest, primaryPrincipal := primary.YearTotals(year)
		kfwInterest, kfwPrincipal := subsidized.YearTotals(year)
		interest := primaryInterest.Add(kfwInterest)
		principal := primaryPrincipal.Add(kfwPrincipal)
		monthlyPayment := primary.ScheduledPayment(year).Add(subsidized.ScheduledPayment(year))
		remaining := primary.BalanceAfter(year * monthsPerYr).Add(subsidized.BalanceAfter(year * monthsPerYr))

		// Tax
		afa, special := Depreciation(inputs, year)
		taxBenefit := TaxEffect(afa, special, opex, interest, inputs.MarginalTaxRate)
		totalDepreciation := afa.Add(special)
		netIncomeBeforeDebt := rent.Sub(opex)
		taxableIncome := netIncomeBeforeDebt.Sub(interest).Sub(totalDepreciation)

		// Cash flow
		cashFlow := rent.Sub(monthlyPayment.Mul(twelve)).Sub(opex).Add(taxBenefit)
		cumulative = cumulative.Add(cashFlow)

		// Value
		value := PropertyValue(inputs, year)
		equity := value.Sub(remaining)
		roi := decimal.Zero
		if investment.IsPositive() {
			roi = equity.Div(investment).Mul(hundred)
		}

		results = append(results, domain.YearlyResult{
			Year:                       year,
			MonthlyPayment:             monthlyPayment,
			RemainingLoan:              remaining,
			InterestPayment:            interest,
			RepaymentAmount:            principal,
			RentalIncome:               rent,
			OperatingExpenses:          opex,
			NetIncomeBeforeDebt:        netIncomeBeforeDebt,
			Amortization:               totalDepreciation,
			CurrentSpecialAmortization: special,
			TaxDepreciation:            totalDepreciation,
			TaxBenefit:                 taxBenefit,
			TaxableIncome:              taxableIncome,
			TaxOnRentalIncome:          TaxOnIncome(taxableIncome, inputs.MarginalTaxRate),
			CashFlow:                   cashFlow,
			CumulativeCashFlow:         cumulative,
			PropertyValue:              value,
			Equity:                     equity,
			ROI:                        roi,
		})
	}

	return results
}
