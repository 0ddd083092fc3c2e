package calculation

import (
	"context"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Rating bands for a sensitivity cell
const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingModerate  = "moderate"
	RatingPoor      = "poor"
)

// DefaultSensitivityRentGrowth are the rent growth rates (percent) of the sensitivity grid rows
func DefaultSensitivityRentGrowth() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(0), decimal.NewFromInt(1), decimal.NewFromInt(2),
		decimal.NewFromInt(3), decimal.NewFromInt(4), decimal.NewFromInt(5),
	}
}

// DefaultSensitivityInterestRates are the primary loan interest rates (percent) of the grid columns
func DefaultSensitivityInterestRates() []decimal.Decimal {
	rates := make([]decimal.Decimal, 0, 7)
	for r := decimal.NewFromFloat(2.0); r.LessThanOrEqual(decimal.NewFromFloat(5.0)); r = r.Add(decimal.NewFromFloat(0.5)) {
		rates = append(rates, r)
	}
	return rates
}

// RateIRR classifies an IRR (percent) into a rating band
func RateIRR(irr decimal.Decimal) string {
	switch {
	case irr.GreaterThan(decimal.NewFromInt(8)):
		return RatingExcellent
	case irr.GreaterThan(decimal.NewFromInt(6)):
		return RatingGood
	case irr.GreaterThan(decimal.NewFromInt(4)):
		return RatingModerate
	default:
		return RatingPoor
	}
}

// RunSensitivity recomputes the IRR for every combination of rent growth and primary
// loan interest rate. Empty axes fall back to the default grid.
func (ce *CalculationEngine) RunSensitivity(ctx context.Context, inputs domain.PropertyInputs, rentGrowth, interestRates []decimal.Decimal) (*domain.SensitivityGrid, error) {
	if len(rentGrowth) == 0 {
		rentGrowth = DefaultSensitivityRentGrowth()
	}
	if len(interestRates) == 0 {
		interestRates = DefaultSensitivityInterestRates()
	}

	grid := &domain.SensitivityGrid{
		RentGrowthRates: rentGrowth,
		InterestRates:   interestRates,
		Cells:           make([][]domain.SensitivityCell, len(rentGrowth)),
	}

	for i, g := range rentGrowth {
		row := make([]domain.SensitivityCell, len(interestRates))
		for j, rate := range interestRates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			variant := inputs
			variant.RentGrowthRate = g
			variant.Loan.InterestRate = rate

			irr := CalculateResults(variant).IRR
			row[j] = domain.SensitivityCell{
				RentGrowthRate: g,
				InterestRate:   rate,
				IRR:            irr,
				Rating:         RateIRR(irr),
			}
		}
		grid.Cells[i] = row
	}

	ce.Logger.Debugf("sensitivity grid computed: %d x %d", len(rentGrowth), len(interestRates))
	return grid, nil
}
