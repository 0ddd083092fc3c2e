package calculation

import (
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculatePaybackPoint finds the first point where cumulative operating cash flow,
// seeded with the negative initial investment, turns non-negative. The position
// within the crossover year is linearly interpolated. If the series never
// recovers the investment (or starts non-negative), returns nil, nil.
func CalculatePaybackPoint(investment decimal.Decimal, yearly []domain.YearlyResult) (*domain.BreakEvenResult, error) {
	if len(yearly) == 0 {
		return nil, fmt.Errorf("projection is empty")
	}

	prev := investment.Neg()
	if !prev.IsNegative() {
		return nil, nil
	}

	for _, yr := range yearly {
		curr := yr.CumulativeCashFlow

		if prev.IsNegative() && !curr.IsNegative() {
			denom := curr.Sub(prev)
			t := decimal.NewFromInt(1)
			if !denom.IsZero() {
				// cum(t) = prev + t*(curr - prev), solve cum(t) = 0
				t = prev.Neg().Div(denom)
			}
			// Clamp t to [0,1]
			if t.LessThan(decimal.Zero) {
				t = decimal.Zero
			} else if t.GreaterThan(decimal.NewFromInt(1)) {
				t = decimal.NewFromInt(1)
			}

			// compute month from fraction (1..12)
			month := int(t.InexactFloat64() * 12)
			if month < 1 {
				month = 1
			}
			if month > 12 {
				month = 12
			}

			return &domain.BreakEvenResult{
				YearIndex:      yr.Year,
				Fraction:       t,
				HoldingYears:   decimal.NewFromInt(int64(yr.Year - 1)).Add(t),
				BreakEvenMonth: month,
			}, nil
		}
		prev = curr
	}

	// Investment not recovered within the projection
	return nil, nil
}

// CalculateCumulativeBreakEven finds the first year in which the cumulative cash flow of
// projection A catches up with projection B, interpolated within the year. Projections
// are aligned by year index. If A never catches up, returns nil, nil.
func CalculateCumulativeBreakEven(projA, projB []domain.YearlyResult) (*domain.BreakEvenResult, error) {
	if len(projA) == 0 || len(projB) == 0 {
		return nil, fmt.Errorf("one or both projections are empty")
	}

	// Align to the minimum length
	n := len(projA)
	if len(projB) < n {
		n = len(projB)
	}

	for i := 1; i < n; i++ {
		prevDiff := projA[i-1].CumulativeCashFlow.Sub(projB[i-1].CumulativeCashFlow)
		currDiff := projA[i].CumulativeCashFlow.Sub(projB[i].CumulativeCashFlow)
		if !prevDiff.IsNegative() || currDiff.IsNegative() {
			continue
		}

		t := prevDiff.Neg().Div(currDiff.Sub(prevDiff))
		month := int(t.InexactFloat64() * 12)
		if month < 1 {
			month = 1
		}
		if month > 12 {
			month = 12
		}
		return &domain.BreakEvenResult{
			YearIndex:      projA[i].Year,
			Fraction:       t,
			HoldingYears:   decimal.NewFromInt(int64(projA[i].Year - 1)).Add(t),
			BreakEvenMonth: month,
		}, nil
	}

	return nil, nil
}
