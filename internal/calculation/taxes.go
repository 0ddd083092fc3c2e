package calculation

import (
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Rental tax effect: a flat marginal rate is applied to all deductions
//    (depreciation, special depreciation, operating costs, interest).
//    No handling of the zero crossing of taxable income.
//
// 2. Marginal rate estimate: simplified 2024 income tax zones, no progression formula
//    - Basic allowance: 11,604 (23,208 married)
//    - Child allowance: 6,024 per child
//    - Church tax: +8% of the marginal rate
//    - Solidarity surcharge: +5.5% of the marginal rate above 17,543 taxable income

// TaxEffect scales the year's deductions by the marginal rate (percent).
// The result is added to cash flow as a tax refund.
func TaxEffect(depreciation, specialDepreciation, operatingExpenses, interest, marginalRatePct decimal.Decimal) decimal.Decimal {
	deductions := depreciation.Add(specialDepreciation).Add(operatingExpenses).Add(interest)
	return deductions.Mul(marginalRatePct).Div(hundred)
}

// TaxOnIncome is the tax owed on taxable rental income at the marginal rate.
// It is signed: a negative taxable income yields a negative amount.
func TaxOnIncome(taxableIncome, marginalRatePct decimal.Decimal) decimal.Decimal {
	return taxableIncome.Mul(marginalRatePct).Div(hundred)
}

// TaxBracket represents one zone of the income tax tariff.
// Brackets are ordered by Min; a zero Max marks the open-ended top zone.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal // percent
}

// MarginalTaxRateCalculator estimates a personal marginal tax rate from a tax profile
type MarginalTaxRateCalculator struct {
	Year                  int
	BasicAllowance        decimal.Decimal
	BasicAllowanceMarried decimal.Decimal
	ChildAllowance        decimal.Decimal
	ChurchTaxFactor       decimal.Decimal
	SolidarityFactor      decimal.Decimal
	SolidarityThreshold   decimal.Decimal
	Brackets              []TaxBracket
}

// NewMarginalTaxRateCalculator2024 creates a calculator with the 2024 simplified tariff
func NewMarginalTaxRateCalculator2024() *MarginalTaxRateCalculator {
	return &MarginalTaxRateCalculator{
		Year:                  2024,
		BasicAllowance:        decimal.NewFromInt(11604),
		BasicAllowanceMarried: decimal.NewFromInt(23208),
		ChildAllowance:        decimal.NewFromInt(6024),
		ChurchTaxFactor:       decimal.NewFromFloat(0.08),
		SolidarityFactor:      decimal.NewFromFloat(0.055),
		SolidarityThreshold:   decimal.NewFromInt(17543),
		Brackets: []TaxBracket{
			{decimal.Zero, decimal.NewFromInt(11604), decimal.Zero},
			{decimal.NewFromInt(11605), decimal.NewFromInt(17005), decimal.NewFromInt(14)},
			{decimal.NewFromInt(17006), decimal.NewFromInt(66760), decimal.NewFromInt(24)},
			{decimal.NewFromInt(66761), decimal.NewFromInt(277825), decimal.NewFromInt(42)},
			{decimal.NewFromInt(277826), decimal.Zero, decimal.NewFromInt(45)},
		},
	}
}

// TaxableIncome applies the basic and child allowances, floored at zero after each
func (c *MarginalTaxRateCalculator) TaxableIncome(profile domain.TaxProfile) decimal.Decimal {
	allowance := c.BasicAllowance
	if profile.IsMarried() {
		allowance = c.BasicAllowanceMarried
	}
	taxable := decimal.Max(decimal.Zero, profile.AnnualIncome.Sub(allowance))

	children := profile.Children
	if children < 0 {
		children = 0
	}
	childAllowance := c.ChildAllowance.Mul(decimal.NewFromInt(int64(children)))
	return decimal.Max(decimal.Zero, taxable.Sub(childAllowance))
}

// Calculate returns the marginal rate in percent, rounded to 2 decimals
func (c *MarginalTaxRateCalculator) Calculate(profile domain.TaxProfile) decimal.Decimal {
	taxable := c.TaxableIncome(profile)

	// highest bracket whose lower bound is reached; fractional incomes between
	// two integer bounds stay in the lower zone
	rate := decimal.Zero
	for _, bracket := range c.Brackets {
		if taxable.LessThan(bracket.Min) {
			break
		}
		rate = bracket.Rate
	}

	if profile.ChurchTax && rate.IsPositive() {
		rate = rate.Add(rate.Mul(c.ChurchTaxFactor))
	}
	if profile.SolidarityTax && rate.IsPositive() && taxable.GreaterThan(c.SolidarityThreshold) {
		rate = rate.Add(rate.Mul(c.SolidarityFactor))
	}

	return rate.Round(2)
}

// EstimateMarginalTaxRate is a convenience wrapper using the 2024 tariff
func EstimateMarginalTaxRate(profile domain.TaxProfile) decimal.Decimal {
	return NewMarginalTaxRateCalculator2024().Calculate(profile)
}
